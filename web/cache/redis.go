// Package cache connects the panel to redis, which backs the redis session
// store. It supports both embedded Redis (miniredis) and an external server.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/logger"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	isEmbedded = true
)

// InitRedis initializes the Redis client. An empty address starts an embedded
// instance; otherwise the configured server must answer a ping.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{
			Addr: mr.Addr(),
		})
		isEmbedded = true
		logger.Info("Embedded Redis started on", mr.Addr())
		return client, nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	isEmbedded = false

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		client = nil
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	logger.Info("Connected to external Redis at", cfg.Addr)
	return client, nil
}

// GetClient returns the Redis client instance, nil before InitRedis.
func GetClient() *redis.Client {
	return client
}

// IsEmbedded returns true if using embedded Redis.
func IsEmbedded() bool {
	return isEmbedded
}

// Close closes the Redis connection and stops embedded Redis if running.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}
