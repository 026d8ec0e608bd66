// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
)

// HashingEmbedder is a deterministic bag-of-words embedder using the hashing
// trick: each token adds +1 or -1 to one of Dim buckets chosen by its FNV-1a
// hash. Texts sharing words score higher; it needs no network or model files.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates an offline embedder with dim dimensions.
func NewHashingEmbedder(dim int) (*HashingEmbedder, error) {
	if dim < 1 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	return &HashingEmbedder{dim: dim}, nil
}

// Dim returns the vector length.
func (h *HashingEmbedder) Dim() int {
	return h.dim
}

// Embed returns the unit-length hashed vector for text.
func (h *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, h.dim)
	for _, token := range Tokenize(text) {
		hasher := fnv.New64a()
		_, _ = hasher.Write([]byte(token))
		sum := hasher.Sum64()

		idx := sum % uint64(h.dim)
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	normalize(vec)
	return vec, nil
}
