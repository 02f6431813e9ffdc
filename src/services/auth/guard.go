package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionGuard จำกัดจำนวนครั้งที่ login ผิด และเก็บ blacklist ของ token ที่ logout แล้ว
type SessionGuard interface {
	IsRateLimited(ctx context.Context, email string) (bool, time.Duration, error)
	RecordFailedLogin(ctx context.Context, email string) error
	ResetLogin(ctx context.Context, email string) error
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type RedisGuard struct {
	client      *redis.Client
	maxAttempts int64
	lockout     time.Duration
}

func NewRedisGuard(client *redis.Client, maxAttempts int, lockout time.Duration) *RedisGuard {
	return &RedisGuard{client: client, maxAttempts: int64(maxAttempts), lockout: lockout}
}

func attemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (g *RedisGuard) IsRateLimited(ctx context.Context, email string) (bool, time.Duration, error) {
	count, err := g.client.Get(ctx, attemptsKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to get login attempts: %w", err)
	}
	if count < g.maxAttempts {
		return false, 0, nil
	}

	remaining, err := g.client.TTL(ctx, attemptsKey(email)).Result()
	if err != nil {
		return true, g.lockout, nil
	}
	return true, remaining, nil
}

func (g *RedisGuard) RecordFailedLogin(ctx context.Context, email string) error {
	key := attemptsKey(email)
	count, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	// หน้าต่างเริ่มนับจากครั้งแรกที่ผิด
	if count == 1 {
		return g.client.Expire(ctx, key, g.lockout).Err()
	}
	return nil
}

func (g *RedisGuard) ResetLogin(ctx context.Context, email string) error {
	return g.client.Del(ctx, attemptsKey(email)).Err()
}

func (g *RedisGuard) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := g.client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (g *RedisGuard) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := g.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// NoopGuard ใช้ตอนไม่มี Redis (dev mode) ไม่จำกัดอะไรเลย
type NoopGuard struct{}

func (NoopGuard) IsRateLimited(context.Context, string) (bool, time.Duration, error) {
	return false, 0, nil
}
func (NoopGuard) RecordFailedLogin(context.Context, string) error { return nil }
func (NoopGuard) ResetLogin(context.Context, string) error { return nil }
func (NoopGuard) BlacklistToken(context.Context, string, time.Duration) error { return nil }
func (NoopGuard) IsTokenBlacklisted(context.Context, string) (bool, error) { return false, nil }
