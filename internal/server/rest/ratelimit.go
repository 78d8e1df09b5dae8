package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts requests per key in Redis, shared by all server
// instances. Every request refreshes the window, so a client must stay
// quiet for a whole window to be let back in.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) (*RedisLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if max <= 0 || window <= 0 {
		return nil, fmt.Errorf("rate limit needs positive max and window, got %d per %s", max, window)
	}
	return &RedisLimiter{client: client, prefix: "postboard:ratelimit:", max: max, window: window}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline: %w", err)
	}

	return incr.Val() <= int64(l.max), nil
}
