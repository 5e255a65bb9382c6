package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/models"
	"github.com/allegro/bigcache/v3"
)

// memorySessionStorage keeps sessions in process memory. It is meant for
// single-instance deployments and tests: records do not survive a restart.
type memorySessionStorage struct {
	cache  *bigcache.BigCache
	logger *logger.Logger
}

// NewMemorySessionStorage creates an in-memory [SessionStorage]. ttl is the
// eviction window of the underlying cache and should match the session TTL.
func NewMemorySessionStorage(ctx context.Context, ttl time.Duration, logger *logger.Logger) (SessionStorage, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	return &memorySessionStorage{cache: cache, logger: logger}, nil
}

func (s *memorySessionStorage) Create(_ context.Context, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: marshal session: %w", ErrSessionBackend, err)
	}

	if err = s.cache.Set(session.Key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	return nil
}

func (s *memorySessionStorage) Get(_ context.Context, key string) (models.Session, error) {
	data, err := s.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	var session models.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: unmarshal session: %w", ErrSessionBackend, err)
	}
	session.Key = key
	if session.IsExpired(time.Now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *memorySessionStorage) Delete(_ context.Context, key string) error {
	err := s.cache.Delete(key)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}
	return nil
}

func (s *memorySessionStorage) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := s.deleteWhere(func(session models.Session) bool {
		return session.UserID == userID
	})
	return err
}

func (s *memorySessionStorage) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return s.deleteWhere(func(session models.Session) bool {
		return session.IsExpired(now)
	})
}

// deleteWhere removes every record matching pred. Keys are collected first
// since the iterator must not race with deletions.
func (s *memorySessionStorage) deleteWhere(pred func(models.Session) bool) (int64, error) {
	var keys []string

	it := s.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrSessionBackend, err)
		}

		var session models.Session
		if err = json.Unmarshal(entry.Value(), &session); err != nil {
			s.logger.Warn().Err(err).Str("key", entry.Key()).Msg("skipping corrupt session record")
			continue
		}
		if pred(session) {
			keys = append(keys, entry.Key())
		}
	}

	var deleted int64
	for _, key := range keys {
		err := s.cache.Delete(key)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, bigcache.ErrEntryNotFound):
			s.logger.Debug().Str("key", key).Msg("session record already evicted")
		default:
			s.logger.Err(err).Str("key", key).Msg("error deleting session record")
		}
	}

	return deleted, nil
}

func (s *memorySessionStorage) Close() error {
	return s.cache.Close()
}
