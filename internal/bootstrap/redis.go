package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hedamo/hedamo-backend/config"
	"github.com/hedamo/hedamo-backend/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

// OpenRedis returns nil when no REDIS_ADDR is configured.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewLimiter builds the configured rate limiter. The memory limiter is also
// returned separately so the scheduler can sweep it; it is nil for redis.
func NewLimiter(cfg config.RateLimitConfig, client *redis.Client, lg *slog.Logger) (ratelimit.Limiter, *ratelimit.MemoryLimiter) {
	if cfg.Backend == config.RateLimitBackendRedis && client != nil {
		lg.Info("rate limiting backed by redis", slog.Int("max", cfg.MaxRequests), slog.Duration("window", cfg.Window))
		return ratelimit.NewRedisLimiter(client, cfg.MaxRequests, cfg.Window), nil
	}

	mem := ratelimit.NewMemoryLimiter(cfg.MaxRequests, cfg.Window)
	lg.Info("rate limiting in memory", slog.Int("max", cfg.MaxRequests), slog.Duration("window", cfg.Window))
	return mem, mem
}
