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

// ListContent returns the full catalog ordered by id.
// The order is stable so that ranking ties resolve the same way on every start.
func (db *DB) ListContent(ctx context.Context) (items []models.Content, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "content", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `SELECT id, description FROM content ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer closeWithLog(rows, "content rows")

	items = make([]models.Content, 0)
	for rows.Next() {
		var c models.Content
		if err = rows.Scan(&c.ID, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		items = append(items, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content: %w", err)
	}
	return items, nil
}

// GetContent retrieves a single content item.
func (db *DB) GetContent(ctx context.Context, id string) (item *models.Content, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("GET", "content", start, err) }(time.Now())

	var c models.Content
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, description FROM content WHERE id = ?`, id,
	).Scan(&c.ID, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &c, nil
}

// UpsertContent inserts a content item or replaces its description.
func (db *DB) UpsertContent(ctx context.Context, item models.Content) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("UPSERT", "content", start, err) }(time.Now())

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO content (id, description) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET description = excluded.description`,
		item.ID, item.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content %s: %w", item.ID, err)
	}
	return nil
}
