package redis

import (
	"context"
	"fmt"
	"time"

	"wisefido-monitor/pkg/config"

	"github.com/go-redis/redis/v8"
)

// Client alias so callers don't import go-redis directly
type Client = redis.Client

// DefaultDialTimeout bounds the connection check in Connect
const DefaultDialTimeout = 5 * time.Second

// Connect opens a client for cfg and checks the server answers within timeout.
// The client is closed again if the check fails.
func Connect(ctx context.Context, cfg *config.RedisConfig, timeout time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
