// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnmate/internal/chat"
	"github.com/tomtom215/learnmate/internal/modelclient"
)

func decodeChat(t *testing.T, body string) map[string]string {
	t.Helper()

	var out map[string]string
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, body)
	}
	return out
}

func TestChat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		genText       string
		genErr        error
		wantStatus    int
		wantResponse  string
		wantError     string
		wantGenerated bool
	}{
		{
			name:          "answered",
			body:          `{"query": "What is photosynthesis?"}`,
			genText:       "  Plants make sugar from light.  ",
			wantStatus:    http.StatusOK,
			wantResponse:  "Plants make sugar from light.",
			wantGenerated: true,
		},
		{
			name:          "model returns nothing",
			body:          `{"query": "???"}`,
			genText:       "",
			wantStatus:    http.StatusOK,
			wantResponse:  chat.Apology,
			wantGenerated: true,
		},
		{
			name:         "empty query",
			body:         `{"query": ""}`,
			wantStatus:   http.StatusBadRequest,
			wantResponse: chat.Apology,
			wantError:    ChatErrEmptyQuery,
		},
		{
			name:         "whitespace query",
			body:         `{"query": "  \t "}`,
			wantStatus:   http.StatusBadRequest,
			wantResponse: chat.Apology,
			wantError:    ChatErrEmptyQuery,
		},
		{
			name:         "missing query",
			body:         `{"question": "hi"}`,
			wantStatus:   http.StatusBadRequest,
			wantResponse: msgInvalidRequest,
			wantError:    ChatErrInvalidRequest,
		},
		{
			name:         "malformed JSON",
			body:         `{"query": `,
			wantStatus:   http.StatusBadRequest,
			wantResponse: msgInvalidRequest,
			wantError:    ChatErrInvalidRequest,
		},
		{
			name:         "query too long",
			body:         fmt.Sprintf(`{"query": %q}`, strings.Repeat("a", 2001)),
			wantStatus:   http.StatusBadRequest,
			wantResponse: msgInvalidRequest,
			wantError:    ChatErrInvalidRequest,
		},
		{
			name:          "model unavailable",
			body:          `{"query": "hello"}`,
			genErr:        fmt.Errorf("%w: status 503", modelclient.ErrModelUnavailable),
			wantStatus:    http.StatusServiceUnavailable,
			wantResponse:  msgModelUnavailable,
			wantError:     ChatErrModelUnavailable,
			wantGenerated: true,
		},
		{
			name:          "model timeout",
			body:          `{"query": "hello"}`,
			genErr:        fmt.Errorf("%w: %w", modelclient.ErrModelTimeout, context.DeadlineExceeded),
			wantStatus:    http.StatusGatewayTimeout,
			wantResponse:  msgModelTimeout,
			wantError:     ChatErrModelTimeout,
			wantGenerated: true,
		},
		{
			name:          "raw deadline from generator",
			body:          `{"query": "hello"}`,
			genErr:        context.DeadlineExceeded,
			wantStatus:    http.StatusGatewayTimeout,
			wantResponse:  msgModelTimeout,
			wantError:     ChatErrModelTimeout,
			wantGenerated: true,
		},
		{
			name:          "unexpected error",
			body:          `{"query": "hello"}`,
			genErr:        errors.New("boom"),
			wantStatus:    http.StatusInternalServerError,
			wantResponse:  msgInternal,
			wantError:     ChatErrInternal,
			wantGenerated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			env.generator.text = tt.genText
			env.generator.err = tt.genErr
			cookie := env.signIn(t, "alice", "password123")

			rec := env.do(chatRequest(tt.body, cookie))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			out := decodeChat(t, rec.Body.String())
			if out["response"] != tt.wantResponse {
				t.Errorf("response = %q, want %q", out["response"], tt.wantResponse)
			}
			errCode, hasErr := out["error"]
			if tt.wantError == "" && hasErr {
				t.Errorf("successful reply should not carry an error, got %q", errCode)
			}
			if tt.wantError != "" && errCode != tt.wantError {
				t.Errorf("error = %q, want %q", errCode, tt.wantError)
			}

			calls, _ := env.generator.snapshot()
			if tt.wantGenerated != (calls > 0) {
				t.Errorf("generator calls = %d, want called = %v", calls, tt.wantGenerated)
			}
		})
	}
}

func TestChat_PassesQueryVerbatim(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.signIn(t, "alice", "password123")

	rec := env.do(chatRequest(`{"query": "  Explain   Newton's laws  "}`, cookie))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, last := env.generator.snapshot(); last != "  Explain   Newton's laws  " {
		t.Errorf("generator got %q, want the raw query", last)
	}
}

func TestChat_RequiresSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(chatRequest(`{"query": "hello"}`, nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	out := decodeChat(t, rec.Body.String())
	if out["error"] != "unauthorized" {
		t.Errorf("error = %q, want unauthorized", out["error"])
	}
	if calls, _ := env.generator.snapshot(); calls != 0 {
		t.Errorf("generator called %d times without a session", calls)
	}
}

func TestChatFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		reply      string
		wantStatus int
		wantCode   string
		wantReply  string
	}{
		{"empty query keeps reply", chat.ErrEmptyQuery, "custom apology", http.StatusBadRequest, ChatErrEmptyQuery, "custom apology"},
		{"empty query default reply", chat.ErrEmptyQuery, "", http.StatusBadRequest, ChatErrEmptyQuery, chat.Apology},
		{"unavailable", modelclient.ErrModelUnavailable, "", http.StatusServiceUnavailable, ChatErrModelUnavailable, msgModelUnavailable},
		{"timeout", modelclient.ErrModelTimeout, "", http.StatusGatewayTimeout, ChatErrModelTimeout, msgModelTimeout},
		{"canceled", context.Canceled, "", http.StatusInternalServerError, ChatErrInternal, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := chatFailure(tt.err, tt.reply)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error, tt.wantCode)
			}
			if body.Response != tt.wantReply {
				t.Errorf("response = %q, want %q", body.Response, tt.wantReply)
			}
		})
	}
}
