// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the session bag store.

Each browser session is one small hash whose TTL is renewed on every request,
so the workload is many tiny round-trips: short timeouts, a modest pool, and a
client name that makes Enredo's connections easy to spot in CLIENT LIST.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/enredo/internal/platform/constants"
)

const (
	defaultPoolSize = 10
	dialTimeout     = 3 * time.Second
	readTimeout     = 2 * time.Second
	writeTimeout    = 2 * time.Second
	pingTimeout     = 2 * time.Second
)

// Options tunes the client. Zero values fall back to the defaults above.
type Options struct {
	// PoolSize caps open connections (REDIS_POOL_SIZE).
	PoolSize int
}

/*
NewClient connects to Redis and checks that it answers.

Parameters:
  - context: Bounds the initial ping
  - redisURL: redis:// or rediss:// URL, optionally with a database index
  - opts: Pool tuning, see [Options]

Returns:
  - *redis.Client: Connected client, released with [Close]
  - error: Invalid URL or unreachable server
*/
func NewClient(context stdctx.Context, redisURL string, opts Options, logger *slog.Logger) (*redis.Client, error) {
	options, err := ParseOptions(redisURL, opts)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// ParseOptions turns a URL into client options without connecting.
func ParseOptions(redisURL string, opts Options) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = opts.PoolSize
	if options.PoolSize <= 0 {
		options.PoolSize = defaultPoolSize
	}
	options.MinIdleConns = min(2, options.PoolSize)
	options.MaxIdleConns = max(options.MinIdleConns, options.PoolSize/2)

	options.ClientName = constants.AppName + "-sessions"
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	return options, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}

// Close releases the client's connections, logging instead of returning the error.
func Close(client *redis.Client, logger *slog.Logger) {
	logger.Info("closing_redis_client")
	if err := client.Close(); err != nil {
		logger.Error("redis_close_error", slog.Any("error", err))
	}
}
