// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/server are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/middleware"
	"github.com/taibuivan/enredo/internal/platform/view"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains are appended to Domains; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler: always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler: 200 when the stores answer.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry.
	Metrics http.Handler

	// Sessions resolves the browser session and principal.
	Sessions func(http.Handler) http.Handler

	// Domains are the page handlers (catalog, reader, authoring, auth).
	Domains []RouteRegistrar
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, pages *view.Renderer, observer middleware.RequestObserver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, observer))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(context, rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst, pages).Handler)
	r.Use(middleware.PanicRecovery(pages))
	r.Use(chimw.CleanPath)

	notFound := http.HandlerFunc(pages.RenderNotFound)
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// # Infrastructure Endpoints
	// Sessionless: probes, scraping and assets.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	r.Handle("/static/*", view.Static())

	// # Application Pages
	r.Group(func(app chi.Router) {
		app.Use(h.Sessions)
		for _, domain := range h.Domains {
			domain.RegisterRoutes(app)
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
