// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/learnmate/internal/metrics"
)

func newInstrumentedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/chat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Get("/content/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

//nolint:paralleltest // asserts on global counters
func TestPrometheusMetrics_Labels(t *testing.T) {
	router := newInstrumentedRouter()

	tests := []struct {
		method  string
		path    string
		pattern string
		status  string
	}{
		{http.MethodGet, "/dashboard", "/dashboard", "200"},
		{http.MethodPost, "/chat", "/chat", "503"},
		{http.MethodGet, "/content/content1", "/content/{id}", "204"},
		{http.MethodGet, "/no/such/page", unmatchedRoute, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			counter := metrics.APIRequestsTotal.WithLabelValues(tt.method, tt.pattern, tt.status)
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

//nolint:paralleltest // asserts on a global gauge
func TestPrometheusMetrics_ActiveRequests(t *testing.T) {
	var during float64
	before := testutil.ToFloat64(metrics.APIActiveRequests)

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if during < before+1 {
		t.Errorf("in-flight gauge during request = %v, want >= %v", during, before+1)
	}
	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("in-flight gauge after request = %v, want %v", after, before)
	}
}

func TestRoutePattern_NoRouter(t *testing.T) {
	t.Parallel()

	if got := routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)); got != unmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, unmatchedRoute)
	}
}
