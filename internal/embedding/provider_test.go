package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIProvider(
		5*time.Second,
		option.WithBaseURL(server.URL),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0), // retries are handled by our backoff loop
	)
}

func TestOpenAIProvider_Embed(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [{"object": "embedding", "index": 0, "embedding": [0.25, -0.5, 1.0]}],
			"model": "text-embedding-3-small",
			"usage": {"prompt_tokens": 3, "total_tokens": 3}
		}`))
	})

	vector, err := provider.Embed(context.Background(), "cats are great pets")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 1.0}, vector)
}

func TestOpenAIProvider_Embed_ServerErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	})

	_, err := provider.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "non-429 errors must not be retried")
}

func TestOpenAIProvider_Embed_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [{"object": "embedding", "index": 0, "embedding": [1, 0]}],
			"model": "text-embedding-3-small",
			"usage": {"prompt_tokens": 1, "total_tokens": 1}
		}`))
	})

	vector, err := provider.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vector)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestOpenAIProvider_Dimension(t *testing.T) {
	provider := NewOpenAIProvider(0, option.WithAPIKey("test-key"))
	assert.Equal(t, 1536, provider.Dimension())
}

func TestToFloat32(t *testing.T) {
	assert.Equal(t, []float32{0.5, -1.5}, toFloat32([]float64{0.5, -1.5}))
	assert.Empty(t, toFloat32(nil))
}
