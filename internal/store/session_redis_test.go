package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStorage(t *testing.T) (SessionStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	storage, err := NewRedisSessionStorage(context.Background(), "redis://"+mr.Addr(), 2, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage, mr
}

func TestRedisSessionStorage_RoundTrip(t *testing.T) {
	storage, mr := newTestRedisStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	session := models.Session{Key: "k1", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, storage.Create(ctx, session))

	assert.True(t, mr.Exists(redisSessionPrefix+"k1"))
	assert.True(t, mr.TTL(redisSessionPrefix+"k1") > 0)

	got, err := storage.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "k1", got.Key)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	require.NoError(t, storage.Delete(ctx, "k1"))
	_, err = storage.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// deleting twice is fine
	assert.NoError(t, storage.Delete(ctx, "k1"))
}

func TestRedisSessionStorage_ExpiresWithTTL(t *testing.T) {
	storage, mr := newTestRedisStorage(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, storage.Create(ctx, models.Session{Key: "k1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := storage.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStorage_DeleteUserSessions(t *testing.T) {
	storage, _ := newTestRedisStorage(t)
	ctx := context.Background()
	now := time.Now()

	for _, s := range []models.Session{
		{Key: "a1", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{Key: "a2", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{Key: "b1", UserID: 2, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	} {
		require.NoError(t, storage.Create(ctx, s))
	}

	require.NoError(t, storage.DeleteUserSessions(ctx, 1))

	_, err := storage.Get(ctx, "a1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = storage.Get(ctx, "a2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	other, err := storage.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), other.UserID)
}

func TestRedisSessionStorage_RejectsExpired(t *testing.T) {
	storage, _ := newTestRedisStorage(t)
	now := time.Now()

	err := storage.Create(context.Background(), models.Session{Key: "k", CreatedAt: now, ExpiresAt: now.Add(-time.Second)})
	assert.ErrorIs(t, err, ErrSessionBackend)
}

func TestNewRedisSessionStorage_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisSessionStorage(context.Background(), "redis://"+addr, 1, logger.Nop())
	assert.ErrorIs(t, err, ErrSessionBackend)
}
