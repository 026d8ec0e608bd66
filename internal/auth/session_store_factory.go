// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package auth

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/learnmate/internal/config"
)

// SessionStoreType defines the type of session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory uses in-memory storage (default, not persistent).
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger uses BadgerDB for persistent session storage.
	SessionStoreBadger SessionStoreType = "badger"

	// SessionStoreCookie keeps sessions in signed cookies.
	SessionStoreCookie SessionStoreType = "cookie"
)

// SessionStoreFactory creates session stores based on configuration.
type SessionStoreFactory struct {
	storeType SessionStoreType
	secret    string
	db        *badger.DB
}

// NewSessionStoreFactory creates a new session store factory.
// For the badger store it opens (and creates) the database directory.
func NewSessionStoreFactory(cfg *config.SecurityConfig) (*SessionStoreFactory, error) {
	factory := &SessionStoreFactory{
		storeType: SessionStoreType(cfg.SessionStore),
		secret:    cfg.SessionSecret,
	}

	switch factory.storeType {
	case SessionStoreMemory, "":
		factory.storeType = SessionStoreMemory
	case SessionStoreBadger:
		if err := os.MkdirAll(cfg.SessionStorePath, 0o750); err != nil {
			return nil, fmt.Errorf("create session store directory: %w", err)
		}
		opts := badger.DefaultOptions(cfg.SessionStorePath)
		opts.Logger = nil // Suppress BadgerDB logs

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		factory.db = db
	case SessionStoreCookie:
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	return factory, nil
}

// Type returns the configured store type.
func (f *SessionStoreFactory) Type() SessionStoreType {
	return f.storeType
}

// CreateStore creates a SessionStore based on the factory's configuration.
func (f *SessionStoreFactory) CreateStore() (SessionStore, error) {
	switch f.storeType {
	case SessionStoreBadger:
		return NewBadgerSessionStore(f.db), nil
	case SessionStoreCookie:
		codec, err := NewCookieSessionCodec(f.secret)
		if err != nil {
			return nil, err
		}
		return NewCookieSessionStore(codec), nil
	default:
		return NewMemorySessionStore(), nil
	}
}

// Close closes the underlying BadgerDB if one was opened.
func (f *SessionStoreFactory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
