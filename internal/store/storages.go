package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
)

// Storages groups every persistence dependency of the service layer.
type Storages struct {
	UserRepository UserRepository
	PostRepository PostRepository
	SessionStorage SessionStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and builds the
// repositories together with the configured session backend.
func NewStorages(ctx context.Context, cfg config.Storage, sessionTTL time.Duration, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	sessions, err := NewSessionStorage(ctx, cfg.Sessions, db, sessionTTL, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		PostRepository: NewPostRepository(db, log),
		SessionStorage: sessions,
		db:             db,
	}, nil
}

// NewSessionStorage builds the session backend named by cfg.Backend. The
// postgres backend shares db.
func NewSessionStorage(ctx context.Context, cfg config.Sessions, db *DB, ttl time.Duration, log *logger.Logger) (SessionStorage, error) {
	log = log.Component("sessions")

	switch cfg.Backend {
	case config.SessionBackendPostgres, "":
		log.Info().Msg("using postgres session backend")
		return NewPostgresSessionStorage(db, log), nil
	case config.SessionBackendRedis:
		log.Info().Msg("using redis session backend")
		return NewRedisSessionStorage(ctx, cfg.RedisURL, cfg.RedisPoolSize, log)
	case config.SessionBackendMemory:
		log.Info().Msg("using in-memory session backend")
		return NewMemorySessionStorage(ctx, ttl, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionBackend, cfg.Backend)
	}
}

// Close releases the session backend and the database pool.
func (s *Storages) Close() error {
	var errs []error
	if s.SessionStorage != nil {
		errs = append(errs, s.SessionStorage.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

// SQLDB exposes the underlying connection pool for pool statistics.
func (s *Storages) SQLDB() *sql.DB {
	if s.db == nil {
		return nil
	}
	return s.db.DB
}
