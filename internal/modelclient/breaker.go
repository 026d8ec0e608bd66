// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package modelclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/learnmate/internal/config"
	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/metrics"
)

// BreakerName is the circuit breaker label used in metrics.
const BreakerName = "model-api"

// BreakerClient wraps a Model with a circuit breaker. Once the breaker opens,
// calls fail fast with ErrModelUnavailable until the cool-down has passed.
//
// The breaker uses real time for its interval and timeout; tests that need a
// state change should configure a short BreakerTimeout.
type BreakerClient struct {
	model Model
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// NewBreakerClient wraps model with a breaker that opens after
// cfg.BreakerFailures consecutive failures and probes again after
// cfg.BreakerTimeout.
func NewBreakerClient(model Model, cfg *config.ModelsConfig) *BreakerClient {
	name := BreakerName
	threshold := uint32(cfg.BreakerFailures) //nolint:gosec // validated to be >= 1

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// A caller that gave up says nothing about the model's health.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerClient{model: model, cb: cb, name: name}
}

// execute runs fn through the breaker. Rejections are reported as ErrModelUnavailable.
func (b *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// Embed calls the wrapped model's Embed through the breaker.
func (b *BreakerClient) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.model.Embed(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	vec, ok := result.([]float32)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return vec, nil
}

// Generate calls the wrapped model's Generate through the breaker.
func (b *BreakerClient) Generate(ctx context.Context, text string) (string, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.model.Generate(ctx, text)
	})
	if err != nil {
		return "", err
	}
	out, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return out, nil
}

// State returns the breaker's current state as a string.
func (b *BreakerClient) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
