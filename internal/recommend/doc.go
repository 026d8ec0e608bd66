// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package recommend ranks catalog content against a user's stated interests.
//
// # How ranking works
//
// At startup the Engine embeds every content description once and keeps the
// vectors in an in-memory table. A recommendation request embeds the user's
// interests and sorts the table by cosine similarity, highest first. Ties keep
// catalog order (content id ascending) because the sort is stable.
//
// Texts are lower-cased and stripped of ASCII punctuation before embedding.
//
// # Embedders
//
// The Embedder interface is satisfied by modelclient.Client (hosted model) and
// by HashingEmbedder, a deterministic offline embedder used in development and
// tests.
//
// # Thread Safety
//
// The embedding table is replaced atomically by Build and never mutated
// afterwards, so Recommend is safe for concurrent use without locks.
//
// # Usage
//
//	engine := recommend.NewEngine(embedder, logging.WithComponent("recommend"))
//	if _, err := engine.BuildFromStore(ctx, db); err != nil {
//	    return err
//	}
//	recs, err := engine.Recommend(ctx, user.Interests)
package recommend
