package config

import (
	"context"
	"time"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis for rate limiting. It returns nil when rate
// limiting is off, no address is configured or the server does not answer;
// callers then run without rate limiting.
func NewRedisClient(ctx context.Context, cfg *Config, logger logging.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled || cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "redis unavailable, rate limiting disabled", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info(ctx, "connected to Redis", "addr", cfg.Redis.Addr)
	return client
}
