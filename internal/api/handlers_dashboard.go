// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/database"
	"github.com/tomtom215/learnmate/internal/logging"
)

const msgRecommendationsUnavailable = "Recommendations are unavailable right now."

// Dashboard shows the signed-in user's interests and ranked recommendations.
//
// A session whose user no longer exists is ended. A failing recommender
// still renders the page, with a notice in place of the list.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := auth.UsernameFromContext(ctx)

	user, err := h.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			logging.Ctx(ctx).Warn().Str("username", logging.SanitizeUsername(username)).Msg("Session user no longer exists")
			if _, derr := h.sessions.DestroySession(ctx, w, r); derr != nil {
				logging.Ctx(ctx).Warn().Err(derr).Msg("Failed to delete session")
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load user")
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	data := &pageData{
		Username:  user.Username,
		Interests: user.Interests,
	}

	recs, err := h.recommender.Recommend(ctx, user.Interests)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to compute recommendations")
		data.Notice = msgRecommendationsUnavailable
	} else {
		data.Recommendations = recs
	}

	h.pages.render(w, r, http.StatusOK, pageDashboard, data)
}
