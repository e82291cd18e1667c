package config

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// NewRedis returns nil when REDIS_ADDR is unset.
func NewRedis(cfg *Config) (*goredis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
