// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command server is the entry point for the Enredo web application.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Open the story store selected by STORE_DRIVER (PostgreSQL, MongoDB or memory).
//  4. Connect to Redis for session bags.
//  5. Run database migrations / ensure indexes (idempotent).
//  6. Wire services and handlers; seed the administrator.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/enredo/internal/api"
	"github.com/taibuivan/enredo/internal/app"
	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/migration"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
	pgstore "github.com/taibuivan/enredo/internal/platform/postgres"
	redisstore "github.com/taibuivan/enredo/internal/platform/redis"
	"github.com/taibuivan/enredo/internal/platform/session"
	"github.com/taibuivan/enredo/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("[Enredo] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Story store ────────────────────────────────────────────────────
	var (
		repos  app.Repositories
		checks []api.Check
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{MaxConns: cfg.DatabaseMaxConns}, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		repos = app.Repositories{
			Stories:  story.NewPostgresRepository(pool),
			Chapters: chapter.NewChapterRepository(pool),
			Choices:  chapter.NewChoiceRepository(pool),
			Progress: reading.NewPostgresRepository(pool),
			Users:    auth.NewUserRepository(pool),
		}
		checks = append(checks, api.Check{Name: "postgres", Ping: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})

	case config.DriverMongo:
		db, err := mongodb.Connect(startupCtx, cfg.MongoURI, cfg.MongoDatabase, log)
		must(log, err, "connect to mongodb")
		defer disconnectMongo(log, db)

		must(log, mongodb.EnsureIndexes(startupCtx, db), "ensure mongodb indexes")

		repos = app.Repositories{
			Stories:  story.NewMongoRepository(db),
			Chapters: chapter.NewMongoChapterRepository(db),
			Choices:  chapter.NewMongoChoiceRepository(db),
			Progress: reading.NewMongoRepository(db),
			Users:    auth.NewMongoUserRepository(db),
		}
		checks = append(checks, api.Check{Name: "mongodb", Ping: func(ctx context.Context) error {
			return mongodb.Ping(ctx, db)
		}})

	default:
		log.Warn("memory_store_selected", slog.String("note", "data is lost on restart"))
		repos = app.MemoryRepositories()
	}

	// ── 4. Redis (session bags) ───────────────────────────────────────────
	sessions := session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, redisstore.Options{PoolSize: cfg.RedisPoolSize}, log)
		must(log, err, "connect to redis")
		defer redisstore.Close(rdb, log)
		sessions = session.NewRedisStore(rdb)
	}

	// ── 5. Metrics registry ───────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	application, err := app.New(rootCtx, cfg, log, app.Dependencies{
		Repositories: repos,
		Sessions:     sessions,
		Registry:     registry,
		Checks:       checks,
	})
	must(log, err, "wire application")

	created, err := application.Auth.EnsureAdmin(startupCtx, cfg.AdminUsername, cfg.AdminPassword)
	must(log, err, "seed administrator")
	if created {
		log.Info("admin_seeded", slog.String("username", cfg.AdminUsername))
	}

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	server := application.Server

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON root logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

func disconnectMongo(log *slog.Logger, db *mongo.Database) {
	log.Info("closing_mongodb_client")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongodb.Disconnect(ctx, db); err != nil {
		log.Error("mongodb_disconnect_error", slog.Any("error", err))
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
