// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package modelclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrModelUnavailable means the model could not be reached or refused the request.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelTimeout means the model did not answer before the deadline.
	ErrModelTimeout = errors.New("model timeout")
)

// classify wraps err with the matching sentinel. Caller cancellation is
// returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrModelTimeout) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrModelTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrModelTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
}

// reason returns the metrics label for a classified error.
func reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unavailable"
	}
}
