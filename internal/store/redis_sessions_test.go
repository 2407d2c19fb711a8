package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisSessions instance
func setupTestRedis(t *testing.T) (*RedisSessions, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisSessions(client), mr
}

func TestRedisSessions_SaveAndGet(t *testing.T) {
	sessions, mr := setupTestRedis(t)
	ctx := context.Background()

	err := sessions.Save(ctx, domain.Session{Token: "tok123", UserID: 7, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	assert.True(t, mr.Exists(sessionKey("tok123")))
	assert.Equal(t, time.Duration(0), mr.TTL(sessionKey("tok123")), "sessions without expiry have no TTL")

	got, err := sessions.Get(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestRedisSessions_UnknownToken(t *testing.T) {
	sessions, _ := setupTestRedis(t)

	_, err := sessions.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessions_TTLFollowsExpiry(t *testing.T) {
	sessions, mr := setupTestRedis(t)
	ctx := context.Background()

	err := sessions.Save(ctx, domain.Session{Token: "short", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	ttl := mr.TTL(sessionKey("short"))
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "unexpected ttl %v", ttl)

	mr.FastForward(2 * time.Hour)
	_, err = sessions.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessions_AlreadyExpiredIsNotStored(t *testing.T) {
	sessions, mr := setupTestRedis(t)

	err := sessions.Save(context.Background(), domain.Session{Token: "stale", ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(sessionKey("stale")))
}

func TestRedisSessions_Delete(t *testing.T) {
	sessions, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "bye", UserID: 2}))

	require.NoError(t, sessions.Delete(ctx, "bye"))
	assert.False(t, mr.Exists(sessionKey("bye")))

	assert.NoError(t, sessions.Delete(ctx, "never-existed"))
}

func TestRedisSessions_CorruptValue(t *testing.T) {
	sessions, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(sessionKey("bad"), "{not json"))

	_, err := sessions.Get(context.Background(), "bad")
	require.ErrorContains(t, err, "unmarshal session failed")
}

func TestSessionKey_Format(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}
