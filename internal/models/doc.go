// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package models defines the data structures shared between the database,
the services and the HTTP layer.

  - User: an account with a bcrypt password hash and a free-text interests string
  - Content: a catalog item identified by a short string ID
  - Recommendation: a content item paired with its cosine similarity score
*/
package models
