// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package api provides the HTTP layer for Learnmate.

It serves a small set of server-rendered pages and one JSON endpoint:

	GET  /              login page (redirects to /dashboard when signed in)
	POST /              sign in
	GET  /register      registration page
	POST /register      create an account
	GET  /dashboard     ranked recommendations and the chat box (session required)
	POST /chat          {"query": "..."} -> {"response": "..."} (session required)
	GET  /logout        end the session

Operational endpoints:

	GET /health/live    process is up
	GET /health/ready   database reachable and embedding table built
	GET /metrics        Prometheus exposition

Key Components:

  - Router: chi route tree with the middleware stack
  - Handler: request handlers; every dependency is injected through Dependencies
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)
  - Templates: html/template pages embedded in the binary

Chat errors are mapped to HTTP statuses:

	invalid payload       400 invalid_request
	empty query           400 empty_query
	model unavailable     503 model_unavailable
	model timeout         504 model_timeout
	anything else         500 internal

Handlers never touch package-level state other than the logger and the
Prometheus registry, so tests build a Handler from fakes and drive it through
httptest.
*/
package api
