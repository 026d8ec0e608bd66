// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package middleware provides HTTP middleware components for the application.

All middleware here has the chi signature func(http.Handler) http.Handler and
is installed by the router in internal/api.

Key Components:

  - RequestID: X-Request-ID propagation and generation for log correlation
  - PrometheusMetrics: request count, duration and in-flight gauge, labeled by route pattern
  - AccessLog: one structured zerolog line per request

Middleware Stack:

The router installs the components in this order:

	r.Use(middleware.RequestID)         // Layer 1: request tracking
	r.Use(chimiddleware.RealIP)         // Layer 2: client address
	r.Use(middleware.AccessLog)         // Layer 3: access log
	r.Use(chimiddleware.Recoverer)      // Layer 4: panic recovery
	r.Use(middleware.PrometheusMetrics) // Layer 5: metrics

Metrics use the chi route pattern (for example "/dashboard") rather than the
raw path, so unknown URLs cannot inflate label cardinality.
*/
package middleware
