// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package users implements registration and credential checks on top of the
// user store.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/learnmate/internal/auth"
	"github.com/tomtom215/learnmate/internal/database"
	"github.com/tomtom215/learnmate/internal/metrics"
	"github.com/tomtom215/learnmate/internal/models"
)

// ErrUsernameTaken is returned when registering an existing username.
var ErrUsernameTaken = errors.New("username already exists")

// Store is the subset of the database used by the service.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
	DummyCompare(password string)
}

// Service registers and authenticates users.
type Service struct {
	store  Store
	hasher PasswordHasher
}

// NewService creates a user service.
func NewService(store Store, hasher PasswordHasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// Register creates an account. The password is stored as a bcrypt hash.
// Returns ErrUsernameTaken when the username exists; the existing account is not modified.
func (s *Service) Register(ctx context.Context, username, password, interests string) (*models.User, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("register %s: %w", username, err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Interests:    strings.TrimSpace(interests),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrUserExists) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			return nil, ErrUsernameTaken
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register %s: %w", username, err)
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	return user, nil
}

// Authenticate returns the user when username exists and password matches
// its stored hash, and auth.ErrInvalidCredentials otherwise. Unknown
// usernames still cost one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			s.hasher.DummyCompare(password)
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, auth.ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("authenticate %s: %w", username, err)
	}

	if !s.hasher.CheckPassword(user.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, auth.ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// Get returns a user by username.
func (s *Service) Get(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUser(ctx, username)
}
