package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionGuardTTL = 30 * time.Second

// NoopGuard always grants the lock. The unique idempotency key on bookings
// remains the only protection.
type NoopGuard struct{}

func (NoopGuard) Acquire(context.Context, string) (bool, error) { return true, nil }
func (NoopGuard) Release(context.Context, string) error         { return nil }

// RedisSubmissionGuard holds a short SETNX lock per idempotency key.
type RedisSubmissionGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSubmissionGuard(rdb *redis.Client) *RedisSubmissionGuard {
	return &RedisSubmissionGuard{rdb: rdb, ttl: submissionGuardTTL}
}

func submissionKey(key string) string {
	return "booking:submit:" + key
}

func (g *RedisSubmissionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.rdb.SetNX(ctx, submissionKey(key), 1, g.ttl).Result()
}

func (g *RedisSubmissionGuard) Release(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, submissionKey(key)).Err()
}
