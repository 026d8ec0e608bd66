// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/learnmate/internal/models"
)

// CreateUser inserts a new user. The password must already be hashed.
// Returns ErrUserExists if the username is taken; the existing row is left untouched.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "users", start, err) }(time.Now())

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, interests, created_at) VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.Interests, user.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by exact username.
// Returns ErrUserNotFound if no such user exists.
func (db *DB) GetUser(ctx context.Context, username string) (user *models.User, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "users", start, err) }(time.Now())

	var u models.User
	err = db.conn.QueryRowContext(ctx,
		`SELECT username, password_hash, interests, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.Interests, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UserExists reports whether a username is already registered.
func (db *DB) UserExists(ctx context.Context, username string) (exists bool, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("EXISTS", "users", start, err) }(time.Now())

	var count int
	if err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}

// CountUsers returns the number of registered users.
func (db *DB) CountUsers(ctx context.Context) (count int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("COUNT", "users", start, err) }(time.Now())

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
