// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"context"
	"net/http"
	"time"
)

// readyTimeout bounds the database ping in the readiness probe.
const readyTimeout = 2 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondEnvelope(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only when the database answers and the embedding table is built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	dbConnected := h.db.Ping(ctx) == nil
	recommenderReady := h.recommender.Ready()

	status := map[string]interface{}{
		"database_connected": dbConnected,
		"recommender_ready":  recommenderReady,
		"uptime":             time.Since(h.startTime).Seconds(),
	}

	if !dbConnected || !recommenderReady {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Success: false,
			Data:    status,
			Error:   &APIError{Code: ErrCodeServiceUnavailable, Message: "Service is not ready"},
			Meta:    newMeta(r),
		})
		return
	}

	respondEnvelope(w, r, http.StatusOK, status)
}
