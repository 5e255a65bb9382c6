package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/models"
)

// postgresSessionStorage keeps sessions in the "sessions" table. Anonymous
// sessions store a NULL user_id.
type postgresSessionStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewPostgresSessionStorage constructs a [SessionStorage] on top of db.
func NewPostgresSessionStorage(db *DB, logger *logger.Logger) SessionStorage {
	return &postgresSessionStorage{
		db:     db,
		logger: logger,
	}
}

func (s *postgresSessionStorage) Create(ctx context.Context, session models.Session) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, createSession,
		session.Key, nullUserID(session.UserID), session.CreatedAt, session.ExpiresAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Bool("retryable", s.db.isRetryable(err)).Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *postgresSessionStorage) Get(ctx context.Context, key string) (models.Session, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, findSession, key, time.Now().UTC())
	if err := row.Err(); err != nil {
		logger.FromContext(ctx).Err(err).Bool("retryable", s.db.isRetryable(err)).Msg("error querying session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var (
		session models.Session
		userID  sql.NullInt64
	)
	err := row.Scan(&session.Key, &userID, &session.CreatedAt, &session.ExpiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrSessionNotFound
	case err != nil:
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	session.UserID = userID.Int64

	return session, nil
}

func (s *postgresSessionStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, deleteSession, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *postgresSessionStorage) DeleteUserSessions(ctx context.Context, userID int64) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, deleteUserSessions, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *postgresSessionStorage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, deleteExpiredSessions, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Close is a no-op: the connection pool is owned by [Storages].
func (s *postgresSessionStorage) Close() error {
	return nil
}

func nullUserID(userID int64) sql.NullInt64 {
	return sql.NullInt64{Int64: userID, Valid: userID != 0}
}
