// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Credential errors
var (
	// ErrInvalidCredentials indicates the username or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword returns a salted bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// bcrypt.CompareHashAndPassword compares in constant time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Hasher hashes and verifies passwords at a fixed bcrypt cost.
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewHasher creates a Hasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt cost used for new hashes.
func (h *Hasher) Cost() int {
	return h.cost
}

// HashPassword hashes password at the hasher's cost.
func (h *Hasher) HashPassword(password string) (string, error) {
	return HashPassword(password, h.cost)
}

// CheckPassword reports whether password matches hash.
func (h *Hasher) CheckPassword(hash, password string) bool {
	return CheckPassword(hash, password)
}

// DummyCompare runs one bcrypt comparison against a throwaway hash of the same
// cost. Call it when the username is unknown so the response takes as long as
// a real password check.
func (h *Hasher) DummyCompare(password string) {
	h.dummyOnce.Do(func() {
		// Error is impossible for a fixed short password and a valid cost.
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("learnmate-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
