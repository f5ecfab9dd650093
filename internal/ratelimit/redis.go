package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:" // ratelimit:{client_key}

// RedisLimiter shares fixed-window counters between gateway replicas.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	period time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		period: period,
		now:    time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := keyPrefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	left := ttl.Val()

	// first hit in the window, or a key that lost its expiry
	if count == 1 || left < 0 {
		if err := r.client.PExpire(ctx, redisKey, r.period).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		left = r.period
	}

	return Decision{
		Allowed:   count <= r.limit,
		Limit:     r.limit,
		Remaining: remaining(r.limit, count),
		ResetAt:   r.now().Add(left),
	}, nil
}

func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
