// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package chat

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/learnmate/internal/metrics"
	"github.com/tomtom215/learnmate/internal/modelclient"
)

type mockGenerator struct {
	reply   string
	err     error
	delay   time.Duration
	calls   atomic.Int32
	lastArg atomic.Value
}

func (m *mockGenerator) Generate(ctx context.Context, text string) (string, error) {
	m.calls.Add(1)
	m.lastArg.Store(text)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.reply, m.err
}

func TestRespond(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		gen       *mockGenerator
		want      string
		wantErr   error
		wantCalls int32
	}{
		{
			name:      "answer is trimmed",
			query:     "What is calculus?",
			gen:       &mockGenerator{reply: "  the study of change \n"},
			want:      "the study of change",
			wantCalls: 1,
		},
		{
			name:      "empty query",
			query:     "",
			gen:       &mockGenerator{reply: "unused"},
			want:      Apology,
			wantErr:   ErrEmptyQuery,
			wantCalls: 0,
		},
		{
			name:      "whitespace query",
			query:     " \t\n ",
			gen:       &mockGenerator{reply: "unused"},
			want:      Apology,
			wantErr:   ErrEmptyQuery,
			wantCalls: 0,
		},
		{
			name:      "model returns blank text",
			query:     "hello",
			gen:       &mockGenerator{reply: "   "},
			want:      Apology,
			wantCalls: 1,
		},
		{
			name:      "model unavailable",
			query:     "hello",
			gen:       &mockGenerator{err: modelclient.ErrModelUnavailable},
			wantErr:   ErrModelUnavailable,
			wantCalls: 1,
		},
		{
			name:      "model timeout",
			query:     "hello",
			gen:       &mockGenerator{err: modelclient.ErrModelTimeout},
			wantErr:   ErrModelTimeout,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(tt.gen, time.Second)
			got, err := svc.Respond(context.Background(), tt.query)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Respond() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Respond() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Respond() = %q, want %q", got, tt.want)
			}
			if calls := tt.gen.calls.Load(); calls != tt.wantCalls {
				t.Errorf("generator calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRespondPassesRawQuery(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{reply: "ok"}
	svc := NewService(gen, 0)

	if _, err := svc.Respond(context.Background(), "  What's Rome's history?  "); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if got := gen.lastArg.Load(); got != "  What's Rome's history?  " {
		t.Errorf("generator received %q, want the query unchanged", got)
	}
}

func TestRespondTimeout(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{reply: "late", delay: time.Second}
	svc := NewService(gen, 20*time.Millisecond)

	_, err := svc.Respond(context.Background(), "hello")
	if !errors.Is(err, ErrModelTimeout) {
		t.Errorf("Respond() error = %v, want ErrModelTimeout", err)
	}
}

func TestRespondOtherError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	svc := NewService(&mockGenerator{err: boom}, time.Second)

	_, err := svc.Respond(context.Background(), "hello")
	if !errors.Is(err, boom) {
		t.Fatalf("Respond() error = %v, want %v", err, boom)
	}
	if errors.Is(err, ErrModelTimeout) || errors.Is(err, ErrModelUnavailable) {
		t.Errorf("unexpected classification of %v", err)
	}
}

func TestRespondOfflineModel(t *testing.T) {
	t.Parallel()

	offline, err := modelclient.NewOffline(8)
	if err != nil {
		t.Fatalf("NewOffline() error = %v", err)
	}
	svc := NewService(offline, time.Second)

	if _, err := svc.Respond(context.Background(), "hello"); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Respond() error = %v, want ErrModelUnavailable", err)
	}
}

//nolint:paralleltest // reads a global counter
func TestRespondMetrics(t *testing.T) {
	answered := metrics.ChatRequests.WithLabelValues("answered")
	empty := metrics.ChatRequests.WithLabelValues("empty_query")
	beforeAnswered := testutil.ToFloat64(answered)
	beforeEmpty := testutil.ToFloat64(empty)

	svc := NewService(&mockGenerator{reply: "yes"}, time.Second)
	_, _ = svc.Respond(context.Background(), "hello")
	_, _ = svc.Respond(context.Background(), "")

	if got := testutil.ToFloat64(answered) - beforeAnswered; got < 1 {
		t.Errorf("answered delta = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(empty) - beforeEmpty; got < 1 {
		t.Errorf("empty_query delta = %v, want >= 1", got)
	}
}
