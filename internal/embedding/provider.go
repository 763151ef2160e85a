// Package embedding converts text into vectors using OpenAI's embedding API.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// Model is the OpenAI model used for generating embeddings.
	Model = "text-embedding-3-small"

	// Dimension is the vector dimension for text-embedding-3-small.
	// This matches storage.VectorDimension (1536).
	Dimension = 1536

	// DefaultTimeout bounds a single Embed call including retries.
	// Expiry is treated by callers as an embedding failure, not a request failure.
	DefaultTimeout = 30 * time.Second
)

// Provider converts text to a fixed-dimensional vector. Implementations may
// fail; callers absorb the error into an empty vector and continue.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// OpenAIProvider generates embeddings via openai-go with exponential backoff
// on rate limit errors.
type OpenAIProvider struct {
	client  openai.Client
	timeout time.Duration
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider with the given per-call timeout.
// openai-go reads OPENAI_API_KEY from the environment; extra request options
// (base URL, HTTP client) are forwarded for tests and compatible gateways.
func NewOpenAIProvider(timeout time.Duration, opts ...option.RequestOption) *OpenAIProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		timeout: timeout,
	}
}

// Dimension returns the fixed vector size produced by the configured model.
func (p *OpenAIProvider) Dimension() int { return Dimension }

// Embed generates an embedding for a single text. Rate limit errors (HTTP 429)
// are retried with exponential backoff; other errors are permanent. The whole
// call is bounded by the provider timeout.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var vector []float32

	operation := func() error {
		resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: []string{text},
			},
			Model: Model,
		})
		if err != nil {
			if isRateLimitError(err) {
				return err // retried with backoff
			}
			return backoff.Permanent(err)
		}
		if len(resp.Data) == 0 {
			return backoff.Permanent(fmt.Errorf("embedding response contained no data"))
		}
		vector = toFloat32(resp.Data[0].Embedding)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = p.timeout

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	return vector, nil
}

// isRateLimitError checks if the error is a rate limit error (HTTP 429).
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// toFloat32 converts []float64 to []float32.
// OpenAI API returns float64, but storage uses float32 for memory efficiency.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
