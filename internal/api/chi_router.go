// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/learnmate/internal/middleware"
)

// compressLevel is the gzip level for text responses.
const compressLevel = 5

// Router wires handlers and middleware into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware config uses the defaults.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	sessions := router.handler.Sessions()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(SecurityHeaders())
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(compressLevel, "text/html", "text/css", "application/javascript", "application/json"))

	// ========================
	// Operational Endpoints
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", StaticHandler())

	// ========================
	// Pages and Chat
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		// Public pages see the session when there is one.
		r.Group(func(r chi.Router) {
			r.Use(sessions.Authenticate)

			r.Get("/", router.handler.LoginPage)
			r.Get("/register", router.handler.RegisterPage)
			r.Get("/logout", router.handler.Logout)

			r.With(router.chiMiddleware.RateLimitAuth()).Post("/", router.handler.Login)
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/register", router.handler.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessions.RequireAuth)

			r.Get("/dashboard", router.handler.Dashboard)
			r.Post("/chat", router.handler.Chat)
		})
	})

	return r
}
