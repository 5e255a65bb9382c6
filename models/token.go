package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the signed session token handed to the client in the session
// cookie.
//
// The token carries no user binding: its "jti" claim is the raw session ID and
// the binding itself lives only in the server-side session record. The
// signature lets the server reject forged or corrupted cookies before any
// storage lookup.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set (jti, exp, iat, iss).
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// SessionID is the raw session identifier extracted from the "jti" claim.
	SessionID string `json:"-"`
}

// GetSessionID returns the session identifier carried in the "jti" claim.
func (t *Token) GetSessionID() (string, error) {
	if t.ID == "" {
		return "", errors.New("token carries no session id")
	}

	return t.ID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
