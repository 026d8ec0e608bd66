// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnmate/internal/validation"
)

// Request body limits.
const (
	maxFormBytes = 16 << 10
	maxChatBytes = 16 << 10
)

// LoginForm is the sign-in form. Policy rules are not applied at sign-in so
// accounts created under older rules keep working.
type LoginForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required,maxbytes=72"`
}

// RegisterForm is the registration form.
type RegisterForm struct {
	Username  string `form:"username" validate:"required,alphanum,min=3,max=32"`
	Password  string `form:"password" validate:"required,min=8,maxbytes=72"`
	Interests string `form:"interests" validate:"max=500"`
}

// ChatRequest is the /chat payload. Query is a pointer so a missing field can
// be told apart from an empty one.
type ChatRequest struct {
	Query *string `json:"query" validate:"required,max=2000"`
}

// parseLoginForm reads and validates the sign-in form.
func parseLoginForm(w http.ResponseWriter, r *http.Request) (*LoginForm, error) {
	if err := parseForm(w, r); err != nil {
		return nil, err
	}
	form := &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if verr := validation.ValidateStruct(form); verr != nil {
		return form, verr
	}
	return form, nil
}

// parseRegisterForm reads and validates the registration form.
func parseRegisterForm(w http.ResponseWriter, r *http.Request) (*RegisterForm, error) {
	if err := parseForm(w, r); err != nil {
		return nil, err
	}
	form := &RegisterForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
		Interests: strings.TrimSpace(r.PostFormValue("interests")),
	}
	if verr := validation.ValidateStruct(form); verr != nil {
		return form, verr
	}
	return form, nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// errInvalidChatPayload covers malformed JSON and a missing query.
var errInvalidChatPayload = errors.New("invalid chat payload")

// decodeChatRequest reads a ChatRequest from the body.
func decodeChatRequest(w http.ResponseWriter, r *http.Request) (*ChatRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxChatBytes)
	dec := json.NewDecoder(body)

	var req ChatRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidChatPayload, err)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidChatPayload, verr)
	}
	return &req, nil
}
