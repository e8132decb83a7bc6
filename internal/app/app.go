// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app assembles services and handlers on top of a chosen set of repositories.

The store driver only decides which [Repositories] are built; everything above
the storage layer is wired identically for PostgreSQL, MongoDB and memory.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/taibuivan/enredo/internal/api"
	"github.com/taibuivan/enredo/internal/core/authoring"
	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/metrics"
	"github.com/taibuivan/enredo/internal/platform/middleware"
	"github.com/taibuivan/enredo/internal/platform/sec"
	"github.com/taibuivan/enredo/internal/platform/session"
	"github.com/taibuivan/enredo/internal/platform/view"
	"github.com/taibuivan/enredo/internal/storage/memory"
	"github.com/taibuivan/enredo/internal/users/auth"
)

// Repositories is one storage backend.
type Repositories struct {
	Stories  story.StoryRepository
	Chapters chapter.ChapterRepository
	Choices  chapter.ChoiceRepository
	Progress reading.ProgressRepository
	Users    auth.UserRepository
}

// MemoryRepositories returns every repository backed by a fresh in-process store.
func MemoryRepositories() Repositories {
	store := memory.New()
	return Repositories{
		Stories:  store.Stories(),
		Chapters: store.Chapters(),
		Choices:  store.Choices(),
		Progress: store.Progress(),
		Users:    store.Users(),
	}
}

// Dependencies are the collaborators that vary between deployments and tests.
type Dependencies struct {
	Repositories Repositories
	Sessions     session.Store

	// Registry receives the application metrics; nil creates a private registry.
	Registry *prometheus.Registry

	// Checks are pinged by /ready in addition to the session store.
	Checks []api.Check
}

// Application is the fully wired program.
type Application struct {
	Server    *api.Server
	Stories   *story.Service
	Chapters  *chapter.Service
	Authoring *authoring.Service
	Reading   *reading.Service
	Auth      *auth.Service
}

/*
New wires services, handlers and the HTTP server.

Parameters:
  - context: Lifetime of background workers (rate limiter eviction)
  - cfg: Loaded configuration
  - logger: Root logger
  - deps: Storage, session store and probes
*/
func New(context context.Context, cfg *config.Config, logger *slog.Logger, deps Dependencies) (*Application, error) {
	pages, err := view.New(cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.SessionIssuer)
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	appMetrics := metrics.New(registry)

	repos := deps.Repositories
	sessions := session.NewManager(deps.Sessions, tokens, cfg.SessionTTL, cfg.IsProduction())

	// # Domain Wiring
	chapterService := chapter.NewService(repos.Chapters, repos.Choices, repos.Stories, repos.Progress, appMetrics, logger)
	storyService := story.NewService(repos.Stories, chapterService, logger)
	authoringService := authoring.NewService(chapterService, logger)
	readingService := reading.NewService(repos.Progress, chapterService, appMetrics, logger)
	authService := auth.NewService(repos.Users, appMetrics, logger)

	loginLimiter := middleware.NewRateLimiter(context,
		rate.Limit(float64(cfg.LoginRatePerMinute)/60),
		constants.LoginRateLimitBurst,
		pages,
	)

	checks := append([]api.Check{{Name: "sessions", Ping: sessions.Ping}}, deps.Checks...)
	liveness, readiness := api.NewHealthHandlers(checks, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(registry),
		Sessions:  sessions.Middleware,
		Domains: []api.RouteRegistrar{
			story.NewHandler(storyService, pages),
			chapter.NewHandler(chapterService, pages),
			authoring.NewHandler(authoringService, pages),
			reading.NewHandler(readingService, pages),
			auth.NewHandler(authService, sessions, loginLimiter.Handler, pages),
		},
	}

	return &Application{
		Server:    api.NewServer(context, cfg, logger, pages, appMetrics, handlers),
		Stories:   storyService,
		Chapters:  chapterService,
		Authoring: authoringService,
		Reading:   readingService,
		Auth:      authService,
	}, nil
}
