// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package models

// Content is a catalog item that can be recommended.
type Content struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Recommendation is a content item ranked against a user's interests.
type Recommendation struct {
	Content
	Score float32 `json:"score"`
}
