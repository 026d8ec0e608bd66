// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package modelclient talks to the external text models used by Learnmate.

Two tasks are supported against a Hugging Face Inference API compatible
endpoint:

  - feature extraction (embeddings) for the recommendation engine
  - text-to-text generation for the chat assistant

Every call goes through an outbound token-bucket limiter (golang.org/x/time/rate)
and, when wrapped with NewBreakerClient, a circuit breaker (sony/gobreaker/v2).
Failures are reduced to two sentinel errors so callers can map them to
HTTP status codes without inspecting transport details:

	ErrModelUnavailable  connection refused, non-2xx response, open circuit
	ErrModelTimeout      context deadline or client timeout

The Offline client needs no network. It embeds with a deterministic hashing
embedder and reports generation as unavailable.

Usage:

	client := modelclient.NewClient(&cfg.Models)
	model := modelclient.NewBreakerClient(client, &cfg.Models)

	vec, err := model.Embed(ctx, "history literature")
	text, err := model.Generate(ctx, "What is calculus?")
*/
package modelclient
