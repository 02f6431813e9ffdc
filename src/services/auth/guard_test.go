package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisGuard(t *testing.T, maxAttempts int, lockout time.Duration) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGuard(client, maxAttempts, lockout), mr
}

func TestRedisGuardLocksAfterMaxAttempts(t *testing.T) {
	guard, mr := newRedisGuard(t, 3, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, guard.RecordFailedLogin(ctx, "a@b.com"))
	}
	limited, _, err := guard.IsRateLimited(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, limited)

	// TTL ถูกตั้งแค่ครั้งแรก ครั้งหลังๆ ต้องไม่ต่ออายุ
	mr.FastForward(5 * time.Minute)
	require.NoError(t, guard.RecordFailedLogin(ctx, "a@b.com"))
	assert.Equal(t, 10*time.Minute, mr.TTL("login_attempts:a@b.com"))

	limited, remaining, err := guard.IsRateLimited(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, limited)
	assert.Equal(t, 10*time.Minute, remaining)

	mr.FastForward(10 * time.Minute)
	limited, _, err = guard.IsRateLimited(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, limited)
	assert.False(t, mr.Exists("login_attempts:a@b.com"))
}

func TestRedisGuardResetLogin(t *testing.T) {
	guard, mr := newRedisGuard(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, guard.RecordFailedLogin(ctx, "a@b.com"))
	limited, _, err := guard.IsRateLimited(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, limited)

	require.NoError(t, guard.ResetLogin(ctx, "a@b.com"))
	assert.False(t, mr.Exists("login_attempts:a@b.com"))

	limited, _, err = guard.IsRateLimited(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, limited)
}

func TestRedisGuardBlacklist(t *testing.T) {
	guard, mr := newRedisGuard(t, 5, time.Minute)
	ctx := context.Background()

	require.NoError(t, guard.BlacklistToken(ctx, "tok", 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL("blacklist:tok"))

	blacklisted, err := guard.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	mr.FastForward(30 * time.Minute)
	blacklisted, err = guard.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestRedisGuardBlacklistExpiredToken(t *testing.T) {
	guard, mr := newRedisGuard(t, 5, time.Minute)

	require.NoError(t, guard.BlacklistToken(context.Background(), "old", 0))
	assert.False(t, mr.Exists("blacklist:old"))
}
