package store

import (
	"context"
	"time"

	"github.com/MKhiriev/miniforum/models"
)

// UserRepository is the credential store. It persists users together with
// an already computed password hash and never sees plaintext passwords.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	// A taken username yields [ErrLoginAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByName looks a user up by exact, case-sensitive username.
	FindUserByName(ctx context.Context, username string) (models.User, error)

	// FindUserByID looks a user up by primary key.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdatePasswordHash replaces the stored hash of userID.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// PostRepository persists forum posts. Mutations are always scoped by the
// owner's user ID.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	FindPostByID(ctx context.Context, postID int64) (models.Post, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, postID, userID int64) error
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
}

// SessionStorage keeps server-side session records addressed by
// [models.Session.Key]. Implementations never see the raw session ID.
type SessionStorage interface {
	// Create stores a new session record.
	Create(ctx context.Context, session models.Session) error

	// Get returns the record stored under key. Missing and expired records
	// yield [ErrSessionNotFound].
	Get(ctx context.Context, key string) (models.Session, error)

	// Delete removes the record stored under key. Deleting a missing record
	// is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteUserSessions removes every session bound to userID.
	DeleteUserSessions(ctx context.Context, userID int64) error

	// DeleteExpired purges records that expired before now and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// Close releases backend resources.
	Close() error
}

// ErrorClassificator decides whether a failed storage operation is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
