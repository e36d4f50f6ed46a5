// Package cache provides the Redis client used for read-through caching of
// localized content. When Redis is disabled or unreachable the service
// degrades gracefully: callers receive a nil client and skip caching.
package cache

import (
	"context"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from configuration. The
// returned client may be nil if caching is disabled or the server cannot
// be reached during startup.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping the server with a short timeout. Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
