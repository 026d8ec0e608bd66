// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package database provides the DuckDB-backed user and content stores.
//
// # Overview
//
// The package owns the single DuckDB file used by Learnmate. It creates the
// schema on open, inserts the demo users and content catalog when seeding is
// enabled, and exposes typed accessors for the rest of the application.
//
// # Files
//
//   - database.go: connection lifecycle (open, pool tuning, checkpoint, close)
//   - database_schema.go: table creation
//   - users.go: user store (create, lookup, exists)
//   - content.go: content catalog (list, lookup, count)
//   - seed.go: idempotent demo data
//   - errors.go: sentinel errors and close helpers
//
// # Schema
//
//	users(username VARCHAR PRIMARY KEY, password_hash VARCHAR, interests VARCHAR, created_at TIMESTAMP)
//	content(id VARCHAR PRIMARY KEY, description VARCHAR)
//
// Passwords are never stored in clear text; callers pass a bcrypt hash.
//
// # Concurrency
//
// DB is safe for concurrent use. database/sql pools connections and DuckDB
// serializes conflicting writes, so a duplicate registration fails with
// ErrUserExists instead of overwriting the existing row.
package database
