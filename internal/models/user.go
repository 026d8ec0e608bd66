// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package models

import (
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Interests    string    `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasInterests reports whether the user stated any interests.
func (u *User) HasInterests() bool {
	return strings.TrimSpace(u.Interests) != ""
}
