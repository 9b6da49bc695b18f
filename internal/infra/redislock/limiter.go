package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter counts attempts per key inside a fixed window.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type RedisAttemptLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewAttemptLimiter(client *redis.Client, max int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, max: max, window: window}
}

func attemptKey(key string) string {
	return "attempts:" + key
}

func (l *RedisAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := attemptKey(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("count attempt: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire attempts: %w", err)
		}
	}
	return n <= int64(l.max), nil
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, attemptKey(key)).Err()
}

// NopLimiter allows every attempt.
type NopLimiter struct{}

func (NopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

func (NopLimiter) Reset(context.Context, string) error { return nil }

var (
	_ AttemptLimiter = (*RedisAttemptLimiter)(nil)
	_ AttemptLimiter = NopLimiter{}
)
