// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count from a Prometheus histogram.
func histogramCount(t *testing.T, obs prometheus.Observer) uint64 {
	t.Helper()
	h, ok := obs.(prometheus.Histogram)
	if !ok {
		t.Fatalf("observer %T is not a histogram", obs)
	}
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErr   string
	}{
		{
			name:      "successful select",
			operation: "SELECT",
			table:     "users_test_ok",
		},
		{
			name:      "failed insert",
			operation: "INSERT",
			table:     "users_test_fail",
			err:       errors.New("connection refused"),
			wantErr:   "connection refused",
		},
		{
			name:      "long error truncated to 50 chars",
			operation: "SELECT",
			table:     "content_test_long",
			err:       errors.New(strings.Repeat("x", 120)),
			wantErr:   strings.Repeat("x", 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			if tt.err == nil {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantErr))
			if got != 1 {
				t.Errorf("error counter = %v, want 1", got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/chat-test", "200"))

	RecordAPIRequest("POST", "/chat-test", "200", 25*time.Millisecond)
	RecordAPIRequest("POST", "/chat-test", "200", 30*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/chat-test", "200"))
	if after-before != 2 {
		t.Errorf("request counter delta = %v, want 2", after-before)
	}
}

func TestRecordAPIRequestObservesDuration(t *testing.T) {
	before := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/duration-test"))

	RecordAPIRequest("GET", "/duration-test", "200", 20*time.Millisecond)
	RecordAPIRequest("GET", "/duration-test", "500", 5*time.Millisecond)

	if got := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/duration-test")) - before; got != 2 {
		t.Errorf("duration samples delta = %d, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 5; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 3; i++ {
		TrackActiveRequest(false)
	}

	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active requests delta = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
}

func TestRecordModelRequest(t *testing.T) {
	tests := []struct {
		name       string
		task       string
		err        error
		reason     string
		wantReason string
	}{
		{name: "success", task: "test-ok", err: nil},
		{name: "deadline", task: "test-deadline", err: fmt.Errorf("wrap: %w", context.DeadlineExceeded), wantReason: "timeout"},
		{name: "canceled", task: "test-canceled", err: context.Canceled, wantReason: "canceled"},
		{name: "other", task: "test-other", err: errors.New("503"), wantReason: "unavailable"},
		{name: "explicit reason", task: "test-explicit", err: errors.New("open"), reason: "breaker_open", wantReason: "breaker_open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordModelRequest(tt.task, 10*time.Millisecond, tt.err, tt.reason)

			if tt.err == nil {
				if got := testutil.ToFloat64(ModelRequestErrors.WithLabelValues(tt.task, "unavailable")); got != 0 {
					t.Errorf("success recorded an error: %v", got)
				}
				return
			}
			got := testutil.ToFloat64(ModelRequestErrors.WithLabelValues(tt.task, tt.wantReason))
			if got != 1 {
				t.Errorf("error counter for %s/%s = %v, want 1", tt.task, tt.wantReason, got)
			}
		})
	}
}

func TestRecordEmbeddingTable(t *testing.T) {
	RecordEmbeddingTable(4, 1500*time.Millisecond)

	if got := testutil.ToFloat64(EmbeddingTableSize); got != 4 {
		t.Errorf("EmbeddingTableSize = %v, want 4", got)
	}
	if got := testutil.ToFloat64(EmbeddingTableBuildDuration); got != 1.5 {
		t.Errorf("EmbeddingTableBuildDuration = %v, want 1.5", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	before := testutil.ToFloat64(ChatRequests.WithLabelValues("concurrent_test"))

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ChatRequests.WithLabelValues("concurrent_test").Inc()
			RecordDBQuery("SELECT", "concurrent_test", time.Millisecond, nil)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(ChatRequests.WithLabelValues("concurrent_test")) - before; got != 50 {
		t.Errorf("chat counter delta = %v, want 50", got)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		ModelRequestDuration,
		ModelRequestErrors,
		ModelThrottleWait,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		EmbeddingTableSize,
		EmbeddingTableBuildDuration,
		RecommendationsServed,
		LoginAttempts,
		Registrations,
		ChatRequests,
		AppInfo,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector has no descriptors")
		}
	}
}

func TestMetricGathering(t *testing.T) {
	RecordDBQuery("TEST", "lint_table", time.Millisecond, nil)
	RecordAPIRequest("GET", "/lint", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordDBQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordDBQuery("SELECT", "users", 10*time.Millisecond, nil)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/dashboard", "200", 25*time.Millisecond)
	}
}
