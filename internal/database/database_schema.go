// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []struct {
	name string
	ddl  string
}{
	{
		name: "users",
		ddl: `CREATE TABLE IF NOT EXISTS users (
			username VARCHAR PRIMARY KEY,
			password_hash VARCHAR NOT NULL,
			interests VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		name: "content",
		ddl: `CREATE TABLE IF NOT EXISTS content (
			id VARCHAR PRIMARY KEY,
			description VARCHAR NOT NULL
		)`,
	},
}

// createTables creates every table that does not exist yet.
func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}
	return nil
}
