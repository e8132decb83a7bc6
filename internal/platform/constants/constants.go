// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, story defaults and cross-cutting keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie naming and the Redis key taxonomy.
  - Story Defaults: Values applied when an author leaves a field blank.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "enredo"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout bounds each dependency ping performed by /ready.
	ReadinessTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// LoginRateLimitBurst is the burst allowed for login attempts per IP.
	LoginRateLimitBurst = 5

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionIssuer is the 'iss' claim of the signed session cookie.
	SessionIssuer = "enredo"

	// SessionCookieName is the name of the cookie that carries the session token.
	SessionCookieName = "enredo_sid"

	// SessionFieldUserID and SessionFieldUsername are the keys of the session bag.
	SessionFieldUserID   = "userId"
	SessionFieldUsername = "username"
)

// # Story Defaults

const (
	DefaultCoverColor = "#2d2d2d"
	DefaultGenre      = "Drama Real"
	DefaultStatus     = "Em andamento"
)

// # Field Limits

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxContentLength     = 100000
	MaxChoiceTextLength  = 500
	MaxLabelLength       = 100

	// SpawnedTitleChoiceChars is how much of a choice label is kept in a spawned chapter title.
	SpawnedTitleChoiceChars = 30
)

// # Routes

const (
	RouteHome       = "/"
	RouteLogin      = "/secret-admin-login"
	RouteAdmin      = "/admin"
	RouteReadPrefix = "/read/"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "session:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)
