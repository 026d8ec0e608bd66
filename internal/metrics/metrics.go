// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package metrics holds the Prometheus collectors for Learnmate.
//
// Collectors are registered on the default registry at init via promauto and
// exposed by the /metrics endpoint.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// HTTP Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Model Metrics
	ModelRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_request_duration_seconds",
			Help:    "Duration of embedding and generation model calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"task"},
	)

	ModelRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_request_errors_total",
			Help: "Total number of failed model calls",
		},
		[]string{"task", "reason"}, // reason: "timeout", "unavailable", "bad_response"
	)

	ModelThrottleWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_throttle_wait_seconds",
			Help:    "Time spent waiting for the outbound model rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	EmbeddingTableSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_embedding_table_size",
			Help: "Number of content items with a precomputed embedding",
		},
	)

	EmbeddingTableBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_embedding_table_build_seconds",
			Help: "Time taken to build the content embedding table at startup",
		},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation rankings computed",
		},
		[]string{"result"}, // result: "ranked", "empty_interests", "error"
	)

	// Account and Chat Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // result: "success", "invalid_credentials", "error"
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"}, // result: "created", "duplicate", "invalid", "error"
	)

	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat requests by outcome",
		},
		[]string{"outcome"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// maxErrorLabelLength bounds error_type label cardinality.
const maxErrorLabelLength = 50

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > maxErrorLabelLength {
			errorType = errorType[:maxErrorLabelLength]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an HTTP request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordModelRequest records a model call. reason is ignored when err is nil.
func RecordModelRequest(task string, duration time.Duration, err error, reason string) {
	ModelRequestDuration.WithLabelValues(task).Observe(duration.Seconds())
	if err == nil {
		return
	}
	if reason == "" {
		reason = classifyModelError(err)
	}
	ModelRequestErrors.WithLabelValues(task, reason).Inc()
}

func classifyModelError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unavailable"
	}
}

// RecordEmbeddingTable records the outcome of the startup embedding build.
func RecordEmbeddingTable(size int, duration time.Duration) {
	EmbeddingTableSize.Set(float64(size))
	EmbeddingTableBuildDuration.Set(duration.Seconds())
}
