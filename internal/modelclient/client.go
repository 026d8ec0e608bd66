// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package modelclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/learnmate/internal/config"
	"github.com/tomtom215/learnmate/internal/metrics"
)

// Task labels used in metrics and logs.
const (
	TaskEmbedding  = "embedding"
	TaskGeneration = "generation"
)

// maxErrorBodySize limits how much of an error response is read for diagnostics.
const maxErrorBodySize = 4 * 1024

// Model is the interface satisfied by every model client.
type Model interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, text string) (string, error)
}

// Client calls a Hugging Face Inference API compatible endpoint.
// It is safe for concurrent use.
type Client struct {
	baseURL         string
	token           string
	embeddingModel  string
	generationModel string
	maxLength       int
	httpClient      *http.Client
	limiter         *rate.Limiter
}

// NewClient creates a client from the models configuration.
func NewClient(cfg *config.ModelsConfig) *Client {
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		token:           cfg.APIToken,
		embeddingModel:  cfg.EmbeddingModel,
		generationModel: cfg.GenerationModel,
		maxLength:       cfg.MaxLength,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

type inferenceRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters *generationParameters `json:"parameters,omitempty"`
}

type generationParameters struct {
	MaxLength int `json:"max_length"`
}

type generationCandidate struct {
	GeneratedText string `json:"generated_text"`
}

// Embed returns the feature vector of the first token of text. The caller is
// expected to preprocess text.
func (c *Client) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordModelRequest(TaskEmbedding, time.Since(start), err, reason(err))
	}()

	var raw json.RawMessage
	if err = c.post(ctx, c.embeddingModel, inferenceRequest{Inputs: text}, &raw); err != nil {
		return nil, err
	}

	vec, err = firstTokenVector(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	return vec, nil
}

// Generate returns the first generated candidate for text, or "" when the
// model produced none. The text is returned as received.
func (c *Client) Generate(ctx context.Context, text string) (out string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordModelRequest(TaskGeneration, time.Since(start), err, reason(err))
	}()

	req := inferenceRequest{
		Inputs:     text,
		Parameters: &generationParameters{MaxLength: c.maxLength},
	}

	var candidates []generationCandidate
	if err = c.post(ctx, c.generationModel, req, &candidates); err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0].GeneratedText, nil
}

// post sends body to the model endpoint after waiting for the limiter and
// decodes a 2xx JSON response into result. Errors are classified.
func (c *Client) post(ctx context.Context, model string, body, result interface{}) error {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return classify(ctxErr)
		}
		// The limiter refuses waits that would outlast the deadline.
		return fmt.Errorf("%w: %w", ErrModelTimeout, err)
	}
	metrics.ModelThrottleWait.Observe(time.Since(waitStart).Seconds())

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.baseURL + "/models/" + escapeModel(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(fmt.Errorf("model %s request failed: %w", model, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readBodyForError(resp.Body)
		return fmt.Errorf("%w: model %s returned status %d: %s", ErrModelUnavailable, model, resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return classify(fmt.Errorf("failed to decode model %s response: %w", model, err))
	}
	return nil
}

// escapeModel escapes each path segment of a model id such as "google/flan-t5-large".
func escapeModel(model string) string {
	parts := strings.Split(model, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}

// firstTokenVector accepts the shapes returned by feature-extraction models:
// a pooled vector [dim], token vectors [token][dim] or a batch [1][token][dim].
func firstTokenVector(raw json.RawMessage) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		return nonEmpty(flat)
	}

	var tokens [][]float32
	if err := json.Unmarshal(raw, &tokens); err == nil {
		if len(tokens) == 0 {
			return nil, fmt.Errorf("embedding response has no tokens")
		}
		return nonEmpty(tokens[0])
	}

	var batch [][][]float32
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("unrecognized embedding response: %w", err)
	}
	if len(batch) == 0 || len(batch[0]) == 0 {
		return nil, fmt.Errorf("embedding response has no tokens")
	}
	return nonEmpty(batch[0][0])
}

func nonEmpty(v []float32) ([]float32, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("embedding response has an empty vector")
	}
	return v, nil
}
