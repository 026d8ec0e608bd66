// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/learnmate/internal/config"
)

func TestSessionStoreFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		wantType string
		wantErr  bool
	}{
		{name: "memory", cfg: config.SecurityConfig{SessionStore: "memory"}, wantType: "*auth.MemorySessionStore"},
		{name: "empty defaults to memory", cfg: config.SecurityConfig{}, wantType: "*auth.MemorySessionStore"},
		{name: "cookie", cfg: config.SecurityConfig{SessionStore: "cookie", SessionSecret: testSecret}, wantType: "*auth.CookieSessionStore"},
		{name: "cookie short secret", cfg: config.SecurityConfig{SessionStore: "cookie", SessionSecret: "x"}, wantErr: true},
		{name: "badger", cfg: config.SecurityConfig{SessionStore: "badger"}, wantType: "*auth.BadgerSessionStore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			if cfg.SessionStore == "badger" {
				cfg.SessionStorePath = filepath.Join(t.TempDir(), "sessions")
			}

			factory, err := NewSessionStoreFactory(&cfg)
			if err != nil {
				t.Fatalf("NewSessionStoreFactory() error = %v", err)
			}
			defer func() {
				if err := factory.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}()

			store, err := factory.CreateStore()
			if tt.wantErr {
				if err == nil {
					t.Fatal("CreateStore() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateStore() error = %v", err)
			}

			if got := typeName(store); got != tt.wantType {
				t.Errorf("store type = %s, want %s", got, tt.wantType)
			}

			s := NewSession("alice", time.Hour)
			if err := store.Create(context.Background(), s); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if _, err := store.Get(context.Background(), s.ID); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		})
	}
}

func TestSessionStoreFactoryUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewSessionStoreFactory(&config.SecurityConfig{SessionStore: "redis"})
	if err == nil {
		t.Fatal("expected error for unknown store")
	}
}

func TestBadgerSessionsSurviveReopen(t *testing.T) {
	t.Parallel()

	cfg := &config.SecurityConfig{
		SessionStore:     "badger",
		SessionStorePath: filepath.Join(t.TempDir(), "sessions"),
	}
	ctx := context.Background()

	first, err := NewSessionStoreFactory(cfg)
	if err != nil {
		t.Fatalf("NewSessionStoreFactory() error = %v", err)
	}
	store, _ := first.CreateStore()
	s := NewSession("bob", time.Hour)
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewSessionStoreFactory(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()
	store, _ = second.CreateStore()

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Username != "bob" {
		t.Errorf("Username = %q, want bob", got.Username)
	}
	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(nope) error = %v", err)
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *MemorySessionStore:
		return "*auth.MemorySessionStore"
	case *BadgerSessionStore:
		return "*auth.BadgerSessionStore"
	case *CookieSessionStore:
		return "*auth.CookieSessionStore"
	default:
		return "unknown"
	}
}
