package service

import (
	"context"
	"time"

	"github.com/MKhiriev/miniforum/models"
)

// AuthService owns accounts and credentials: registration, the password
// check behind login, and password change and reset.
type AuthService interface {
	// RegisterUser creates an account with a freshly hashed password.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Authenticate checks a username and password pair. Unknown users and
	// wrong passwords both yield [ErrInvalidCredentials].
	Authenticate(ctx context.Context, req models.LoginRequest) (models.User, error)

	FindUserByName(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// ComparePassword reports whether candidate is the current password of
	// userID. A mismatch is false with a nil error.
	ComparePassword(ctx context.Context, userID int64, candidate string) (bool, error)

	// ChangePassword stores a new hash for userID and revokes every session
	// of that user.
	ChangePassword(ctx context.Context, userID int64, newPassword string) error

	// UpdatePassword is the user-facing change: confirmation must match and
	// the current password must verify before ChangePassword runs.
	UpdatePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error

	// ResetPassword replaces the password of the account matching both
	// username and email with a random one and mails it to the owner.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// SessionService manages server-side sessions and the signed tokens that
// reference them.
type SessionService interface {
	// Start creates an anonymous session.
	Start(ctx context.Context) (models.Session, models.Token, error)

	// Login discards the session behind currentToken, if any, and starts a
	// fresh session bound to user.
	Login(ctx context.Context, currentToken string, user models.User) (models.Session, models.Token, error)

	// Resolve verifies token and loads its session. Bound sessions come with
	// a freshly loaded user; a nil user means the session is anonymous.
	Resolve(ctx context.Context, token string) (models.Session, *models.User, error)

	// Logout deletes the session behind token. Unknown tokens are ignored.
	Logout(ctx context.Context, token string) error

	// PurgeExpired deletes sessions that expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// PostService manages forum posts. Mutations are allowed for the owner only.
type PostService interface {
	MakePost(ctx context.Context, user models.User, req models.MakePostRequest) (models.Post, error)
	EditPost(ctx context.Context, user models.User, req models.EditPostRequest) (models.Post, error)
	DeletePost(ctx context.Context, user models.User, req models.DeletePostRequest) error
	GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// PostServiceWrapper defines middleware composition for PostService.
type PostServiceWrapper interface {
	Wrap(PostService) PostService
}
