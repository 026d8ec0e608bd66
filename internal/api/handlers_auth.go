// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/users"
	"github.com/tomtom215/learnmate/internal/validation"
)

// Page messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgUsernameTaken      = "Username already exists. Please choose a different one."
)

// LoginPage renders the sign-in form, or sends a signed-in user to the dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.UsernameFromContext(r.Context()) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.pages.render(w, r, http.StatusOK, pageLogin, &pageData{})
}

// Login checks the submitted credentials and starts a session.
//
// A failed check re-renders the form with 401 and the same message whether
// the username is unknown or the password is wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	form, err := parseLoginForm(w, r)
	if err != nil {
		data := &pageData{Error: formErrorMessage(err)}
		if form != nil {
			data.FormUsername = form.Username
		}
		h.securityLog.LogLogin(data.FormUsername, ip, r.UserAgent(), false, "invalid_form")
		h.pages.render(w, r, http.StatusBadRequest, pageLogin, data)
		return
	}

	user, err := h.users.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.securityLog.LogLogin(form.Username, ip, r.UserAgent(), false, "invalid_credentials")
			h.pages.render(w, r, http.StatusUnauthorized, pageLogin, &pageData{
				Error:        msgInvalidCredentials,
				FormUsername: form.Username,
			})
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
		h.securityLog.LogLogin(form.Username, ip, r.UserAgent(), false, "error")
		h.pages.render(w, r, http.StatusInternalServerError, pageLogin, &pageData{
			Error:        msgInternal,
			FormUsername: form.Username,
		})
		return
	}

	if _, err := h.sessions.CreateSession(r.Context(), w, r, user.Username); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		h.securityLog.LogLogin(user.Username, ip, r.UserAgent(), false, "session_error")
		h.pages.render(w, r, http.StatusInternalServerError, pageLogin, &pageData{Error: msgInternal})
		return
	}

	h.securityLog.LogLogin(user.Username, ip, r.UserAgent(), true, "")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, pageRegister, &pageData{})
}

// Register creates an account and sends the user to sign in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	form, err := parseRegisterForm(w, r)
	if err != nil {
		data := &pageData{Error: formErrorMessage(err)}
		if form != nil {
			data.FormUsername = form.Username
			data.Interests = form.Interests
		}
		h.securityLog.LogRegister(data.FormUsername, ip, false, "invalid_form")
		h.pages.render(w, r, http.StatusBadRequest, pageRegister, data)
		return
	}

	if _, err := h.users.Register(r.Context(), form.Username, form.Password, form.Interests); err != nil {
		data := &pageData{FormUsername: form.Username, Interests: form.Interests}
		if errors.Is(err, users.ErrUsernameTaken) {
			h.securityLog.LogRegister(form.Username, ip, false, "duplicate")
			data.Error = msgUsernameTaken
			h.pages.render(w, r, http.StatusConflict, pageRegister, data)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Registration failed")
		h.securityLog.LogRegister(form.Username, ip, false, "error")
		data.Error = msgInternal
		h.pages.render(w, r, http.StatusInternalServerError, pageRegister, data)
		return
	}

	h.securityLog.LogRegister(form.Username, ip, true, "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session, if any, and returns to the sign-in page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	sessionID, err := h.sessions.DestroySession(r.Context(), w, r)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete session")
	}
	if sessionID != "" {
		h.securityLog.LogLogout(username, sessionID, clientIP(r))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formErrorMessage turns a form error into a message for the page.
func formErrorMessage(err error) string {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		if first := verr.First(); first != nil {
			return first.Error()
		}
	}
	return msgInvalidRequest
}
