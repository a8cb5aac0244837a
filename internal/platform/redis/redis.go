package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Connect dials Redis at addr and verifies connectivity.
func Connect(ctx context.Context, addr, password string) (*goredis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ConnectOptional dials addr and returns the client plus a cleanup function. An
// empty addr or a failed connection is logged and yields a nil client, which
// turns the catalog cache into a pass-through.
func ConnectOptional(ctx context.Context, addr, password string, logger *slog.Logger) (*goredis.Client, func()) {
	if strings.TrimSpace(addr) == "" {
		logger.Warn("REDIS_ADDR not set, catalog cache disabled")
		return nil, func() {}
	}
	client, err := Connect(ctx, addr, password)
	if err != nil {
		logger.Warn("failed to connect to redis, catalog cache disabled", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("redis connection established", slog.String("addr", addr))
	return client, func() { _ = client.Close() }
}
