// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/models"
)

// UserService registers, authenticates and looks up accounts.
type UserService interface {
	Register(ctx context.Context, username, password, interests string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// Recommender ranks catalog content against an interests string.
type Recommender interface {
	Recommend(ctx context.Context, interests string) ([]models.Recommendation, error)
	Ready() bool
}

// ChatResponder answers a chat query.
type ChatResponder interface {
	Respond(ctx context.Context, query string) (string, error)
}

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services a Handler is built from.
// SecurityLog is optional and defaults to the global logger.
type Dependencies struct {
	Users       UserService
	Recommender Recommender
	Chat        ChatResponder
	DB          Pinger
	Sessions    *auth.SessionMiddleware
	SecurityLog *logging.SecurityLogger
}

// Handler contains dependencies for HTTP handlers.
//
// Handler methods are split across files:
//   - handlers_auth.go: login, registration and logout
//   - handlers_dashboard.go: the recommendations page
//   - handlers_chat.go: the chat endpoint
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	users       UserService
	recommender Recommender
	chat        ChatResponder
	db          Pinger
	sessions    *auth.SessionMiddleware
	securityLog *logging.SecurityLogger
	pages       *pageRenderer
	startTime   time.Time
}

// NewHandler creates a handler and parses the page templates.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Users == nil:
		return nil, errors.New("api: user service is required")
	case deps.Recommender == nil:
		return nil, errors.New("api: recommender is required")
	case deps.Chat == nil:
		return nil, errors.New("api: chat responder is required")
	case deps.DB == nil:
		return nil, errors.New("api: database is required")
	case deps.Sessions == nil:
		return nil, errors.New("api: session middleware is required")
	}

	pages, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	securityLog := deps.SecurityLog
	if securityLog == nil {
		securityLog = logging.NewSecurityLogger()
	}

	return &Handler{
		users:       deps.Users,
		recommender: deps.Recommender,
		chat:        deps.Chat,
		db:          deps.DB,
		sessions:    deps.Sessions,
		securityLog: securityLog,
		pages:       pages,
		startTime:   time.Now(),
	}, nil
}

// Sessions returns the session middleware used for gated routes.
func (h *Handler) Sessions() *auth.SessionMiddleware {
	return h.sessions
}

// clientIP returns the host part of RemoteAddr. chimiddleware.RealIP has
// already replaced RemoteAddr with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
