// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package modelclient

import (
	"context"
	"fmt"

	"github.com/tomtom215/learnmate/internal/config"
	"github.com/tomtom215/learnmate/internal/recommend"
)

// Offline serves embeddings locally and has no generation model.
type Offline struct {
	embedder *recommend.HashingEmbedder
}

// NewOffline creates an offline client producing dim-sized vectors.
func NewOffline(dim int) (*Offline, error) {
	e, err := recommend.NewHashingEmbedder(dim)
	if err != nil {
		return nil, fmt.Errorf("offline model: %w", err)
	}
	return &Offline{embedder: e}, nil
}

// Embed returns the hashed bag-of-words vector of text.
func (o *Offline) Embed(ctx context.Context, text string) ([]float32, error) {
	return o.embedder.Embed(ctx, text)
}

// Generate always fails with ErrModelUnavailable.
func (o *Offline) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no generation model in offline mode", ErrModelUnavailable)
}

// New builds the model client selected by cfg.Provider. The huggingface
// client is wrapped in a circuit breaker.
func New(cfg *config.ModelsConfig) (Model, error) {
	switch cfg.Provider {
	case ProviderOffline:
		o, err := NewOffline(cfg.EmbeddingDim)
		if err != nil {
			return nil, err
		}
		return o, nil
	case ProviderHuggingFace, "":
		return NewBreakerClient(NewClient(cfg), cfg), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

// Model providers accepted by New.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOffline     = "offline"
)
