// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus counters for HTTP traffic and narrative events.

Collectors are registered against an injected [prometheus.Registerer] rather than
the global default registry, so tests can build isolated instances.

A nil *Metrics is valid and records nothing; services accept one optionally.
*/
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// # Label Values

const (
	OriginForm   = "form"
	OriginInline = "inline"

	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Metrics groups every collector the server publishes.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	chaptersCreated *prometheus.CounterVec
	choicesCreated  prometheus.Counter
	readerAdvances  prometheus.Counter
	readerRestarts  prometheus.Counter
	loginAttempts   *prometheus.CounterVec
}

// New registers all collectors on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enredo_http_requests_total",
			Help: "Total number of HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		chaptersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enredo_chapters_created_total",
			Help: "Total number of chapters created, by origin (form or inline choice content).",
		}, []string{"origin"}),
		choicesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "enredo_choices_created_total",
			Help: "Total number of choices created.",
		}),
		readerAdvances: factory.NewCounter(prometheus.CounterOpts{
			Name: "enredo_reader_advances_total",
			Help: "Total number of reader choice clicks that advanced progress.",
		}),
		readerRestarts: factory.NewCounter(prometheus.CounterOpts{
			Name: "enredo_reader_restarts_total",
			Help: "Total number of story restarts.",
		}),
		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enredo_login_attempts_total",
			Help: "Total number of administrator login attempts by result.",
		}, []string{"result"}),
	}
}

// Handler serves the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest counts one finished HTTP request.
func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ChapterCreated counts a new chapter; origin is [OriginForm] or [OriginInline].
func (m *Metrics) ChapterCreated(origin string) {
	if m == nil {
		return
	}
	m.chaptersCreated.WithLabelValues(origin).Inc()
}

// ChoiceCreated counts a new choice.
func (m *Metrics) ChoiceCreated() {
	if m == nil {
		return
	}
	m.choicesCreated.Inc()
}

// ReaderAdvanced counts a progress advance.
func (m *Metrics) ReaderAdvanced() {
	if m == nil {
		return
	}
	m.readerAdvances.Inc()
}

// ReaderRestarted counts a progress reset.
func (m *Metrics) ReaderRestarted() {
	if m == nil {
		return
	}
	m.readerRestarts.Inc()
}

// LoginAttempt counts a login by result ([LoginSuccess] or [LoginFailure]).
func (m *Metrics) LoginAttempt(result string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}
