// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnmate/internal/logging"
)

// APIResponse is the envelope used by the operational endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (null on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success)
	Error *APIError `json:"error,omitempty"`

	// Meta contains optional metadata about the response
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrCodeServiceUnavailable is reported by the readiness probe.
const ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"

// ChatResponse is the body of every /chat reply. Error is set only on failures.
type ChatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Chat error codes.
const (
	ChatErrInvalidRequest   = "invalid_request"
	ChatErrEmptyQuery       = "empty_query"
	ChatErrModelUnavailable = "model_unavailable"
	ChatErrModelTimeout     = "model_timeout"
	ChatErrInternal         = "internal"
	ChatErrRateLimited      = "rate_limited"
)

// User-facing chat messages.
const (
	msgInvalidRequest   = "Invalid request. Please try again."
	msgModelUnavailable = "The assistant is unavailable right now. Please try again later."
	msgModelTimeout     = "The assistant took too long to answer. Please try again."
	msgInternal         = "An error occurred. Please try again."
	msgRateLimited      = "Too many requests. Please slow down."
)

// respondJSON writes data as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondEnvelope writes an APIResponse carrying data.
func respondEnvelope(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &APIResponse{
		Success: status < http.StatusBadRequest,
		Data:    data,
		Meta:    newMeta(r),
	})
}

func newMeta(r *http.Request) *APIMeta {
	return &APIMeta{
		RequestID: logging.RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC(),
	}
}
