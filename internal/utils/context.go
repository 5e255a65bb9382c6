// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes type-safe context keys for the resolved session and user,
// hashing, JSON request/response helpers, HTTP client initialization
// and session token signing and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/miniforum/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserCtxKey is the key under which the authenticated user, freshly
	// loaded for the current request, is stored.
	UserCtxKey = contextKey("user")

	// SessionCtxKey is the key under which the resolved session is stored.
	SessionCtxKey = contextKey("session")

	// SessionTokenCtxKey is the key under which the signed token of the
	// current session is stored.
	SessionTokenCtxKey = contextKey("session_token")
)

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns ok == false when the request is anonymous.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext retrieves the session resolved for the current request.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.Session)
	return session, ok
}

// WithSessionToken returns a copy of ctx carrying the signed session token.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionTokenCtxKey, token)
}

// GetSessionTokenFromContext retrieves the signed token of the current session.
// An empty string means no session was established for the request.
func GetSessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(SessionTokenCtxKey).(string)
	return token
}
