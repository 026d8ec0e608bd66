// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package chat answers free-text questions with an external generative model.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/metrics"
	"github.com/tomtom215/learnmate/internal/modelclient"
)

// Apology is returned for queries the assistant cannot answer.
const Apology = "I'm sorry, I couldn't understand that."

// Errors returned by Respond. Model failures wrap the modelclient sentinels,
// so errors.Is works against either name.
var (
	ErrEmptyQuery       = errors.New("empty query")
	ErrModelUnavailable = modelclient.ErrModelUnavailable
	ErrModelTimeout     = modelclient.ErrModelTimeout
)

// Generator produces text for a query.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Service is the chat assistant. Calls are independent; no conversation
// state is kept.
type Service struct {
	generator Generator
	timeout   time.Duration
}

// NewService creates a chat service. A positive timeout bounds each model call.
func NewService(generator Generator, timeout time.Duration) *Service {
	return &Service{generator: generator, timeout: timeout}
}

// Respond returns the model's answer to query.
//
// An empty or whitespace-only query returns Apology with ErrEmptyQuery and
// the model is not called. A model that produces no text yields Apology with
// a nil error.
func (s *Service) Respond(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		metrics.ChatRequests.WithLabelValues("empty_query").Inc()
		return Apology, ErrEmptyQuery
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, query)
	if err != nil {
		err = normalize(err)
		metrics.ChatRequests.WithLabelValues(outcome(err)).Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("Chat generation failed")
		return "", err
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		metrics.ChatRequests.WithLabelValues("no_text").Inc()
		return Apology, nil
	}

	metrics.ChatRequests.WithLabelValues("answered").Inc()
	return reply, nil
}

// normalize makes sure a deadline hit inside the generator is reported as
// ErrModelTimeout even when the generator returned the raw context error.
func normalize(err error) error {
	if errors.Is(err, ErrModelTimeout) || errors.Is(err, ErrModelUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrModelTimeout, err)
	}
	return err
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrModelTimeout):
		return "model_timeout"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
