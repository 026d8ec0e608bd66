// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestLoginPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(get("/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`action="/"`, `name="username"`, `name="password"`, `href="/register"`} {
		if !strings.Contains(body, want) {
			t.Errorf("login page missing %q", want)
		}
	}
}

func TestLoginPage_RedirectsWhenSignedIn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "alice", "password123")

	rec := env.do(get("/", cookie))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		username   string
		password   string
		storeErr   error
		wantStatus int
		wantBody   string
		wantCookie bool
	}{
		{name: "valid credentials", username: "alice", password: "password123", wantStatus: http.StatusSeeOther, wantCookie: true},
		{name: "username is trimmed", username: "  bob ", password: "securepass", wantStatus: http.StatusSeeOther, wantCookie: true},
		{name: "wrong password", username: "alice", password: "wrongpassword", wantStatus: http.StatusUnauthorized, wantBody: msgInvalidCredentials},
		{name: "unknown user", username: "mallory", password: "password123", wantStatus: http.StatusUnauthorized, wantBody: msgInvalidCredentials},
		{name: "password case matters", username: "alice", password: "PASSWORD123", wantStatus: http.StatusUnauthorized, wantBody: msgInvalidCredentials},
		{name: "missing password", username: "alice", password: "", wantStatus: http.StatusBadRequest, wantBody: "Password is required"},
		{name: "missing username", username: "", password: "password123", wantStatus: http.StatusBadRequest, wantBody: "Username is required"},
		{name: "store failure", username: "alice", password: "password123", storeErr: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantBody: msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			env.users.setErr(tt.storeErr)

			rec := env.do(formRequest("/", url.Values{"username": {tt.username}, "password": {tt.password}}))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}

			cookie := sessionCookie(rec)
			if tt.wantCookie {
				if cookie == nil || cookie.Value == "" {
					t.Fatal("expected a session cookie")
				}
				if !cookie.HttpOnly {
					t.Error("session cookie should be HttpOnly")
				}
				if loc := rec.Header().Get("Location"); loc != "/dashboard" {
					t.Errorf("Location = %q, want /dashboard", loc)
				}
				if env.store.Len() != 1 {
					t.Errorf("sessions = %d, want 1", env.store.Len())
				}
			} else if cookie != nil && cookie.Value != "" {
				t.Errorf("unexpected session cookie %q", cookie.Value)
			}
		})
	}
}

func TestLogin_ReplacesExistingSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	first := env.signIn(t, "alice", "password123")

	req := formRequest("/", url.Values{"username": {"alice"}, "password": {"password123"}})
	req.AddCookie(first)
	rec := env.do(req)

	second := sessionCookie(rec)
	if second == nil || second.Value == first.Value {
		t.Fatal("login should issue a fresh session ID")
	}
	if env.store.Len() != 1 {
		t.Errorf("sessions = %d, want 1 after the old one is replaced", env.store.Len())
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "new account",
			form:       url.Values{"username": {"carol"}, "password": {"longenough"}, "interests": {"art music"}},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:       "empty interests allowed",
			form:       url.Values{"username": {"dave"}, "password": {"longenough"}},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:       "duplicate username",
			form:       url.Values{"username": {"alice"}, "password": {"differentpw"}, "interests": {"cooking"}},
			wantStatus: http.StatusConflict,
			wantBody:   "Username already exists. Please choose a different one.",
		},
		{
			name:       "short password",
			form:       url.Values{"username": {"erin"}, "password": {"short"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Password must be at least 8 characters",
		},
		{
			name:       "username with symbols",
			form:       url.Values{"username": {"bad name!"}, "password": {"longenough"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Username",
		},
		{
			name:       "password over bcrypt limit",
			form:       url.Values{"username": {"frank"}, "password": {strings.Repeat("p", 73)}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			rec := env.do(formRequest("/register", tt.form))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/" {
					t.Errorf("Location = %q, want /", loc)
				}
				return
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}
		})
	}
}

func TestRegister_DuplicateKeepsExistingAccount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(formRequest("/register", url.Values{
		"username": {"alice"}, "password": {"hijacked1"}, "interests": {"cooking"},
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if !strings.Contains(rec.Body.String(), `value="alice"`) {
		t.Error("duplicate form should keep the submitted username")
	}

	env.signIn(t, "alice", "password123")

	rec = env.do(formRequest("/", url.Values{"username": {"alice"}, "password": {"hijacked1"}}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("new password should not work, status = %d", rec.Code)
	}
}

func TestRegister_ThenSignIn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(formRequest("/register", url.Values{
		"username": {"grace"}, "password": {"correcthorse"}, "interests": {"  physics  "},
	}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d", rec.Code)
	}

	cookie := env.signIn(t, "grace", "correcthorse")
	rec = env.do(get("/dashboard", cookie))
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Your interests: physics") {
		t.Error("dashboard should show trimmed interests")
	}
}

func TestRegisterPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(get("/register", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `name="interests"`) {
		t.Error("register page missing interests field")
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "alice", "password123")

	rec := env.do(get("/logout", cookie))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
	if cleared := sessionCookie(rec); cleared == nil || cleared.MaxAge >= 0 {
		t.Error("logout should expire the session cookie")
	}
	if env.store.Len() != 0 {
		t.Errorf("sessions = %d, want 0", env.store.Len())
	}

	rec = env.do(get("/dashboard", cookie))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("dashboard after logout: status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(get("/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
