// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgxpool behind the relational storage driver.
//
// # Architecture
//
// The pool is created once in cmd/server (or cmd/enredoctl) and handed to the
// store_postgres.go constructors of each domain package. Every connection is
// tagged with the application name and carries a statement timeout no longer
// than one HTTP request, so a stuck query never outlives the page that issued it.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/enredo/internal/platform/constants"
)

// # Pool Settings

// Defaults used when [Options] leaves a field zero.
const (
	defaultMaxConns = 10
	// minConns keeps the catalog page warm after a quiet period.
	minConns          = 2
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Options tunes the pool. Zero values fall back to the defaults above.
type Options struct {
	// MaxConns caps open connections (DATABASE_MAX_CONNS).
	MaxConns int32
	// StatementTimeout is applied server-side to every statement.
	StatementTimeout time.Duration
}

func (opts Options) withDefaults() Options {
	if opts.MaxConns <= 0 {
		opts.MaxConns = defaultMaxConns
	}
	if opts.StatementTimeout <= 0 {
		opts.StatementTimeout = constants.GlobalRequestTimeout
	}
	return opts
}

/*
NewPool creates the pool and checks that the database answers.

Parameters:
  - ctx: Bounds the initial connection attempt
  - dsn: libpq connection string or postgres:// URL
  - opts: Pool tuning, see [Options]

Returns:
  - *pgxpool.Pool: Connected pool, closed by the caller
  - error: Invalid DSN or unreachable database
*/
func NewPool(ctx context.Context, dsn string, opts Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := ParseConfig(dsn, opts)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Duration("statement_timeout", opts.withDefaults().StatementTimeout),
	)

	return pool, nil
}

// ParseConfig builds the pool configuration without connecting.
func ParseConfig(dsn string, opts Options) (*pgxpool.Config, error) {
	opts = opts.withDefaults()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = opts.MaxConns
	poolConfig.MinConns = min(minConns, opts.MaxConns)
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// Sent in the startup packet, so no extra round-trip per connection
	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = constants.AppName
	params["statement_timeout"] = strconv.FormatInt(opts.StatementTimeout.Milliseconds(), 10)

	return poolConfig, nil
}

// Ping verifies that the pool can reach the database.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
