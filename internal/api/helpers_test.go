// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/chat"
	"github.com/tomtom215/learnmate/internal/database"
	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/models"
	"github.com/tomtom215/learnmate/internal/users"
)

// fakeUsers is an in-memory UserService. Passwords are stored in clear.
type fakeUsers struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount
	err      error // returned by every call when set
}

type fakeAccount struct {
	password  string
	interests string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{accounts: map[string]*fakeAccount{
		"alice": {password: "password123", interests: "mathematics science"},
		"bob":   {password: "securepass", interests: "history literature"},
	}}
}

func (f *fakeUsers) Register(_ context.Context, username, password, interests string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.accounts[username]; ok {
		return nil, users.ErrUsernameTaken
	}
	f.accounts[username] = &fakeAccount{password: password, interests: interests}
	return &models.User{Username: username, Interests: interests}, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	acct, ok := f.accounts[username]
	if !ok || acct.password != password {
		return nil, auth.ErrInvalidCredentials
	}
	return &models.User{Username: username, Interests: acct.interests}, nil
}

func (f *fakeUsers) Get(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	acct, ok := f.accounts[username]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	return &models.User{Username: username, Interests: acct.interests}, nil
}

func (f *fakeUsers) remove(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, username)
}

func (f *fakeUsers) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeRecommender struct {
	recs  []models.Recommendation
	err   error
	ready bool
	seen  []string
	mu    sync.Mutex
}

func (f *fakeRecommender) Recommend(_ context.Context, interests string) ([]models.Recommendation, error) {
	f.mu.Lock()
	f.seen = append(f.seen, interests)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(interests) == "" {
		return []models.Recommendation{}, nil
	}
	return f.recs, nil
}

func (f *fakeRecommender) Ready() bool { return f.ready }

// fakeGenerator backs a real chat.Service.
type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	last  string
}

func (f *fakeGenerator) Generate(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = text
	return f.text, f.err
}

func (f *fakeGenerator) snapshot() (calls int, last string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.last
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

// testEnv is a fully wired router over fakes.
type testEnv struct {
	users       *fakeUsers
	recommender *fakeRecommender
	generator   *fakeGenerator
	db          *fakePinger
	store       *auth.MemorySessionStore
	handler     http.Handler
}

type envOption func(*testEnv, *ChiMiddlewareConfig)

func withMiddlewareConfig(fn func(*ChiMiddlewareConfig)) envOption {
	return func(_ *testEnv, mc *ChiMiddlewareConfig) { fn(mc) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	env := &testEnv{
		users: newFakeUsers(),
		recommender: &fakeRecommender{
			ready: true,
			recs: []models.Recommendation{
				{Content: models.Content{ID: "content1", Description: "Introduction to Calculus"}, Score: 0.9},
				{Content: models.Content{ID: "content4", Description: "Biology Basics"}, Score: 0.4},
			},
		},
		generator: &fakeGenerator{text: "Photosynthesis turns light into chemical energy."},
		db:        &fakePinger{},
		store:     auth.NewMemorySessionStore(),
	}

	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitDisabled = true
	for _, opt := range opts {
		opt(env, mc)
	}

	h, err := NewHandler(Dependencies{
		Users:       env.users,
		Recommender: env.recommender,
		Chat:        chat.NewService(env.generator, time.Second),
		DB:          env.db,
		Sessions:    auth.NewSessionMiddleware(env.store, nil),
		SecurityLog: logging.NewSecurityLoggerWithLogger(zerolog.Nop()),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	env.handler = NewRouter(h, mc).SetupChi()
	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func chatRequest(body string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// signIn logs in through POST / and returns the session cookie.
func (env *testEnv) signIn(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	rec := env.do(formRequest("/", url.Values{"username": {username}, "password": {password}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("sign in %s: status = %d, want %d", username, rec.Code, http.StatusSeeOther)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("sign in %s: no session cookie set", username)
	}
	return cookie
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "learnmate_session" {
			return c
		}
	}
	return nil
}

func get(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}
