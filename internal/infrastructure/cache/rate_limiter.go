package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimiter is a fixed-window counter shared by every API replica.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

var _ RateLimiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter allows up to limit hits per key in each window.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter for key and reports whether the hit fits the window.
// The expiry is only set on the first hit so the window does not slide.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitKeyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}
