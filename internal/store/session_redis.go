package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/models"
	"github.com/go-redis/redis/v8"
)

const (
	redisSessionPrefix     = "miniforum:session:"
	redisUserSessionPrefix = "miniforum:user-sessions:"
)

// redisSessionStorage keeps each session as a JSON value with a native TTL.
// A per-user set indexes the keys bound to that user so they can be revoked
// together.
type redisSessionStorage struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisSessionStorage connects to the redis instance at redisURL.
func NewRedisSessionStorage(ctx context.Context, redisURL string, poolSize int, logger *logger.Logger) (SessionStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid redis url: %w", ErrSessionBackend, err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrSessionBackend, err)
	}
	logger.Info().Str("addr", opts.Addr).Msg("connected to redis session backend")

	return &redisSessionStorage{client: client, logger: logger}, nil
}

func (s *redisSessionStorage) sessionKey(key string) string {
	return redisSessionPrefix + key
}

func (s *redisSessionStorage) userKey(userID int64) string {
	return redisUserSessionPrefix + strconv.FormatInt(userID, 10)
}

func (s *redisSessionStorage) Create(ctx context.Context, session models.Session) error {
	ttl := session.TTL(time.Now())
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", ErrSessionBackend)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: marshal session: %w", ErrSessionBackend, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(session.Key), data, ttl)
		if !session.IsAnonymous() {
			userKey := s.userKey(session.UserID)
			pipe.SAdd(ctx, userKey, session.Key)
			pipe.Expire(ctx, userKey, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	return nil
}

func (s *redisSessionStorage) Get(ctx context.Context, key string) (models.Session, error) {
	val, err := s.client.Get(ctx, s.sessionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	var session models.Session
	if err = json.Unmarshal(val, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: unmarshal session: %w", ErrSessionBackend, err)
	}
	session.Key = key
	if session.IsExpired(time.Now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *redisSessionStorage) Delete(ctx context.Context, key string) error {
	session, err := s.Get(ctx, key)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(key))
		if !session.IsAnonymous() {
			pipe.SRem(ctx, s.userKey(session.UserID), key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	return nil
}

func (s *redisSessionStorage) DeleteUserSessions(ctx context.Context, userID int64) error {
	userKey := s.userKey(userID)
	keys, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	toDelete := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		toDelete = append(toDelete, s.sessionKey(key))
	}
	toDelete = append(toDelete, userKey)

	if err = s.client.Del(ctx, toDelete...).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionBackend, err)
	}

	return nil
}

// DeleteExpired always reports zero: redis evicts expired keys itself.
func (s *redisSessionStorage) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (s *redisSessionStorage) Close() error {
	return s.client.Close()
}
