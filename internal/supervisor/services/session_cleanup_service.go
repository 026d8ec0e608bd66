// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnmate/internal/logging"
)

// DefaultCleanupInterval is used when no positive interval is given.
const DefaultCleanupInterval = 15 * time.Minute

// cleanupTimeout bounds a single sweep.
const cleanupTimeout = time.Minute

// SessionCleaner removes expired sessions. Satisfied by every auth.SessionStore.
type SessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// SessionCleanupService periodically sweeps expired sessions from the store.
// Sweep errors are logged and retried on the next tick; they never stop the service.
type SessionCleanupService struct {
	store    SessionCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSessionCleanupService creates a cleanup service.
func NewSessionCleanupService(store SessionCleaner, interval time.Duration) *SessionCleanupService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &SessionCleanupService{
		store:    store,
		interval: interval,
		logger:   logging.WithComponent("session-cleanup"),
		name:     "session-cleanup",
	}
}

// Serve implements suture.Service.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("Session cleanup started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionCleanupService) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	removed, err := s.store.CleanupExpired(sweepCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Session cleanup failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("Expired sessions removed")
	}
}

// String implements fmt.Stringer.
func (s *SessionCleanupService) String() string {
	return s.name
}
