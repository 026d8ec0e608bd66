// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package auth

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnmate/internal/config"
	"github.com/tomtom215/learnmate/internal/logging"
)

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the authenticated session, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// UsernameFromContext returns the logged-in username, or "" when anonymous.
func UsernameFromContext(ctx context.Context) string {
	if session := SessionFromContext(ctx); session != nil {
		return session.Username
	}
	return ""
}

// SessionMiddlewareConfig holds configuration for the session middleware.
type SessionMiddlewareConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string

	// SessionTTL is the session time-to-live.
	SessionTTL time.Duration

	// SlidingSession extends the expiry on every authenticated request.
	SlidingSession bool

	// LoginPath is where unauthenticated browsers are redirected.
	LoginPath string

	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultSessionMiddlewareConfig returns sensible defaults.
func DefaultSessionMiddlewareConfig() *SessionMiddlewareConfig {
	return &SessionMiddlewareConfig{
		CookieName:     "learnmate_session",
		SessionTTL:     24 * time.Hour,
		SlidingSession: true,
		LoginPath:      "/",
		CookiePath:     "/",
		CookieSecure:   false,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// SessionMiddlewareConfigFrom builds the middleware config from security settings.
func SessionMiddlewareConfigFrom(cfg *config.SecurityConfig) *SessionMiddlewareConfig {
	mc := DefaultSessionMiddlewareConfig()
	if cfg.CookieName != "" {
		mc.CookieName = cfg.CookieName
	}
	if cfg.SessionTimeout > 0 {
		mc.SessionTTL = cfg.SessionTimeout
	}
	mc.CookieSecure = cfg.CookieSecure
	// Signed cookies cannot be extended server-side.
	mc.SlidingSession = cfg.SessionStore != string(SessionStoreCookie)
	return mc
}

// SessionMiddleware provides session-based authentication middleware.
type SessionMiddleware struct {
	store  SessionStore
	config *SessionMiddlewareConfig
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(store SessionStore, config *SessionMiddlewareConfig) *SessionMiddleware {
	if config == nil {
		config = DefaultSessionMiddlewareConfig()
	}
	return &SessionMiddleware{
		store:  store,
		config: config,
	}
}

// Store returns the underlying session store.
func (m *SessionMiddleware) Store() SessionStore {
	return m.store
}

// Authenticate resolves the session cookie and, when valid, stores the
// Session in the request context. Requests without a valid session continue
// anonymously; use RequireAuth for protected routes.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := m.sessionID(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup error")
			}
			next.ServeHTTP(w, r)
			return
		}

		if m.config.SlidingSession {
			newExpiry := time.Now().Add(m.config.SessionTTL)
			if touchErr := m.store.Touch(r.Context(), sessionID, newExpiry); touchErr != nil {
				logging.Ctx(r.Context()).Warn().Err(touchErr).Msg("Failed to touch session")
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAuth requires a valid session. Browsers are redirected to the login
// page with 303 See Other; JSON clients get 401 with a JSON body.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			if wantsJSON(r) {
				writeUnauthorized(w)
				return
			}
			http.Redirect(w, r, m.config.LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// wantsJSON reports whether the client sent or asked for JSON.
func wantsJSON(r *http.Request) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil && mediaType == "application/json" {
			return true
		}
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(map[string]string{
		"response": "Please log in to continue.",
		"error":    "unauthorized",
	})
}

// sessionID extracts the session ID from the request cookie.
func (m *SessionMiddleware) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.config.CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// SetSessionCookie sets the session cookie on the response.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    sessionID,
		Path:     m.config.CookiePath,
		MaxAge:   int(m.config.SessionTTL.Seconds()),
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}

// ClearSessionCookie clears the session cookie.
func (m *SessionMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     m.config.CookiePath,
		MaxAge:   -1,
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}

// CreateSession issues a fresh session for username and sets the cookie.
// Any session the request already carried is deleted first so a planted
// session ID never becomes authenticated.
func (m *SessionMiddleware) CreateSession(ctx context.Context, w http.ResponseWriter, r *http.Request, username string) (*Session, error) {
	if oldID := m.sessionID(r); oldID != "" {
		if err := m.store.Delete(ctx, oldID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to delete previous session")
		}
	}

	session := NewSession(username, m.config.SessionTTL)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	m.SetSessionCookie(w, session.ID)
	return session, nil
}

// DestroySession deletes the request's session, if any, and clears the cookie.
// It returns the session ID that was removed, or "".
func (m *SessionMiddleware) DestroySession(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	m.ClearSessionCookie(w)

	sessionID := m.sessionID(r)
	if sessionID == "" {
		return "", nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return sessionID, err
	}
	return sessionID, nil
}

// CookieName returns the configured session cookie name.
func (m *SessionMiddleware) CookieName() string {
	return m.config.CookieName
}
