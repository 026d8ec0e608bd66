// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/learnmate/internal/chat"
	"github.com/tomtom215/learnmate/internal/logging"
)

// Chat answers {"query": "..."} with {"response": "..."}.
// Failures keep the same shape and add an "error" code; see chatFailure.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChatRequest(w, r)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected chat payload")
		respondJSON(w, http.StatusBadRequest, &ChatResponse{
			Response: msgInvalidRequest,
			Error:    ChatErrInvalidRequest,
		})
		return
	}

	reply, err := h.chat.Respond(r.Context(), *req.Query)
	if err != nil {
		status, body := chatFailure(err, reply)
		event := logging.Ctx(r.Context()).Warn()
		if status == http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).Int("status", status).Str("code", body.Error).Msg("Chat request failed")
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, &ChatResponse{Response: reply})
}

// chatFailure maps a Respond error to a status and body.
func chatFailure(err error, reply string) (int, *ChatResponse) {
	switch {
	case errors.Is(err, chat.ErrEmptyQuery):
		if reply == "" {
			reply = chat.Apology
		}
		return http.StatusBadRequest, &ChatResponse{Response: reply, Error: ChatErrEmptyQuery}
	case errors.Is(err, chat.ErrModelTimeout):
		return http.StatusGatewayTimeout, &ChatResponse{Response: msgModelTimeout, Error: ChatErrModelTimeout}
	case errors.Is(err, chat.ErrModelUnavailable):
		return http.StatusServiceUnavailable, &ChatResponse{Response: msgModelUnavailable, Error: ChatErrModelUnavailable}
	default:
		return http.StatusInternalServerError, &ChatResponse{Response: msgInternal, Error: ChatErrInternal}
	}
}
