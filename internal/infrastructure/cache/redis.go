package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maida-inc/maida/internal/shared/config"
	appLogger "github.com/maida-inc/maida/internal/shared/logger"
)

// NewRedisClient connects to Redis. Returns nil when Redis is disabled;
// callers treat a nil client as cache-off.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	appLogger.Info("redis connection established", "addr", cfg.GetAddr())
	return client, nil
}
