// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/models"
)

// PasswordHasher hashes a clear-text password for storage.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type seedUser struct {
	username  string
	password  string
	interests string
}

// SeedUsers are the demo accounts created on first run.
var seedUsers = []seedUser{
	{username: "alice", password: "password123", interests: "mathematics science"},
	{username: "bob", password: "password456", interests: "history literature"},
}

// SeedContent is the demo catalog created on first run.
var SeedContent = []models.Content{
	{ID: "content1", Description: "Introduction to Calculus"},
	{ID: "content2", Description: "The History of Ancient Rome"},
	{ID: "content3", Description: "Understanding Shakespeare"},
	{ID: "content4", Description: "Biology Basics"},
}

// Seed inserts the demo users and content catalog. It is idempotent:
// existing users keep their password and interests, and existing content
// rows are left alone.
func (db *DB) Seed(ctx context.Context, hasher PasswordHasher) error {
	usersAdded := 0
	for _, su := range seedUsers {
		exists, err := db.UserExists(ctx, su.username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := hasher.HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", su.username, err)
		}

		err = db.CreateUser(ctx, &models.User{
			Username:     su.username,
			PasswordHash: hash,
			Interests:    su.interests,
		})
		if err != nil && !errors.Is(err, ErrUserExists) {
			return fmt.Errorf("failed to seed user %s: %w", su.username, err)
		}
		if err == nil {
			usersAdded++
		}
	}

	contentAdded := 0
	for _, item := range SeedContent {
		_, err := db.GetContent(ctx, item.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrContentNotFound) {
			return err
		}
		if err := db.UpsertContent(ctx, item); err != nil {
			return err
		}
		contentAdded++
	}

	logging.Info().
		Int("users_added", usersAdded).
		Int("content_added", contentAdded).
		Msg("Seed data applied")

	return nil
}
