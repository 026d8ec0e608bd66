// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnmate/internal/metrics"
	"github.com/tomtom215/learnmate/internal/models"
)

// ErrNotBuilt is returned by Recommend before Build has completed.
var ErrNotBuilt = errors.New("embedding table not built")

// Embedder turns text into a fixed-size vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ContentLister loads the content catalog.
type ContentLister interface {
	ListContent(ctx context.Context) ([]models.Content, error)
}

// entry is one row of the embedding table.
type entry struct {
	content models.Content
	vector  []float32
}

// table is the immutable embedding table. Entries are in catalog order.
type table struct {
	entries []entry
	builtAt time.Time
}

// BuildStats summarizes a table build.
type BuildStats struct {
	Catalog  int
	Embedded int
	Skipped  []string
	Duration time.Duration
}

// Engine ranks content by cosine similarity to a user's interests.
// It is safe for concurrent use.
type Engine struct {
	embedder Embedder
	logger   zerolog.Logger
	table    atomic.Pointer[table]
}

// NewEngine creates an engine. Call Build or BuildFromStore before Recommend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(embedder Embedder, logger zerolog.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// BuildFromStore loads the catalog from store and builds the embedding table.
// It fails only if the catalog cannot be read.
func (e *Engine) BuildFromStore(ctx context.Context, store ContentLister) (*BuildStats, error) {
	catalog, err := store.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content catalog: %w", err)
	}
	return e.Build(ctx, catalog)
}

// Build embeds every catalog item and atomically replaces the table.
// Items whose embedding fails are skipped with a warning. Build returns an
// error only when ctx is canceled, in which case the previous table is kept.
func (e *Engine) Build(ctx context.Context, catalog []models.Content) (*BuildStats, error) {
	start := time.Now()
	stats := &BuildStats{Catalog: len(catalog)}

	entries := make([]entry, 0, len(catalog))
	for _, item := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build embedding table: %w", err)
		}

		vec, err := e.embedder.Embed(ctx, Preprocess(item.Description))
		if err != nil {
			stats.Skipped = append(stats.Skipped, item.ID)
			e.logger.Warn().
				Err(err).
				Str("content_id", item.ID).
				Msg("Skipping content: embedding failed")
			continue
		}
		entries = append(entries, entry{content: item, vector: vec})
	}

	stats.Embedded = len(entries)
	stats.Duration = time.Since(start)
	e.table.Store(&table{entries: entries, builtAt: time.Now()})
	metrics.RecordEmbeddingTable(stats.Embedded, stats.Duration)

	e.logger.Info().
		Int("catalog", stats.Catalog).
		Int("embedded", stats.Embedded).
		Int("skipped", len(stats.Skipped)).
		Dur("duration", stats.Duration).
		Msg("Embedding table built")

	return stats, nil
}

// Ready reports whether the embedding table has been built.
func (e *Engine) Ready() bool {
	return e.table.Load() != nil
}

// Size returns the number of embedded content items.
func (e *Engine) Size() int {
	t := e.table.Load()
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Recommend ranks the catalog against interests, highest similarity first.
// Empty or whitespace-only interests return an empty list without calling
// the embedder.
func (e *Engine) Recommend(ctx context.Context, interests string) ([]models.Recommendation, error) {
	if strings.TrimSpace(interests) == "" {
		metrics.RecommendationsServed.WithLabelValues("empty_interests").Inc()
		return []models.Recommendation{}, nil
	}

	t := e.table.Load()
	if t == nil {
		metrics.RecommendationsServed.WithLabelValues("error").Inc()
		return nil, ErrNotBuilt
	}

	query, err := e.embedder.Embed(ctx, Preprocess(interests))
	if err != nil {
		metrics.RecommendationsServed.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("embed interests: %w", err)
	}

	recs := rank(query, t.entries)
	metrics.RecommendationsServed.WithLabelValues("ranked").Inc()
	return recs, nil
}

// rank scores entries against query and sorts them by descending similarity.
// The sort is stable, so equal scores keep the input order.
func rank(query []float32, entries []entry) []models.Recommendation {
	recs := make([]models.Recommendation, len(entries))
	for i, en := range entries {
		recs[i] = models.Recommendation{
			Content: en.content,
			Score:   CosineSimilarity(query, en.vector),
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return recs
}
