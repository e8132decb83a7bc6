// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
)

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per IP using the token bucket algorithm.
// Each instance keeps its own buckets, so the global guard and the login guard
// do not share quotas.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
	pages   ErrorPages
}

// NewRateLimiter creates a limiter allowing limit events per second with the given burst.
// A background goroutine evicts idle clients until ctx is cancelled.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, pages ErrorPages) *RateLimiter {
	limiter := &RateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   limit,
		burst:   burst,
		pages:   pages,
	}

	go limiter.cleanup(ctx)
	return limiter
}

// Allow reports whether the client at ip may proceed, consuming a token if so.
func (limiter *RateLimiter) Allow(ip string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	clientInfo, found := limiter.clients[ip]

	// Initialize a new limiter if this is a fresh IP
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[ip] = clientInfo
	}

	// Update the activity timestamp
	clientInfo.lastSeen = time.Now()
	return clientInfo.limiter.Allow()
}

// Handler rejects requests over quota with a 429 failure page.
func (limiter *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !limiter.Allow(RealIP(request)) {
			retryAfter := limiter.retryAfterSeconds()
			writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))

			failure := apperr.RateLimited(retryAfter)
			limiter.pages.RenderError(writer, failure.HTTPStatus, failure.Message, "")
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// retryAfterSeconds is the time for one token to refill, rounded up.
func (limiter *RateLimiter) retryAfterSeconds() int {
	if limiter.limit <= 0 {
		return 60
	}
	seconds := int(1/float64(limiter.limit) + 0.999)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func (limiter *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.mu.Lock()
			for ip, clientInfo := range limiter.clients {
				if time.Since(clientInfo.lastSeen) > constants.RateLimitClientTTL {
					delete(limiter.clients, ip)
				}
			}
			limiter.mu.Unlock()
		case <-ctx.Done():
			// Stop the goroutine when the application shuts down
			return
		}
	}
}
