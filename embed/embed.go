// Package embed converts text to vector embeddings for similarity search.
//
// Implementations:
//   - embed/mock: deterministic hash-based vectors (testing)
//   - embed/openai: OpenAI embeddings API (default)
//   - embed/onnx: local all-MiniLM-L6-v2 via ONNX Runtime (build tag "onnx")
//
// Cached wraps any Embedder with an in-process cache so that repeated
// add/query cycles over the same text do not re-bill the API.
package embed

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// Embedder converts text to vector embeddings.
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Cached wraps an Embedder with a ristretto cache keyed by the input text.
type Cached struct {
	inner Embedder
	cache *ristretto.Cache
}

// NewCached creates a caching wrapper around inner.
// maxBytes bounds the approximate memory used for cached vectors;
// zero selects a 64 MiB default.
func NewCached(inner Embedder, maxBytes int64) (*Cached, error) {
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, or computes and caches it.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		if emb, ok := v.([]float32); ok {
			return emb, nil
		}
	}

	emb, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	// Cost is the vector's byte size; admission may still reject the entry.
	c.cache.Set(text, emb, int64(len(emb)*4))
	return emb, nil
}

// Dimensions returns the inner embedder's vector size.
func (c *Cached) Dimensions() int {
	return c.inner.Dimensions()
}

// Wait blocks until pending cache writes are applied.
func (c *Cached) Wait() {
	c.cache.Wait()
}

// Close releases cache resources.
func (c *Cached) Close() {
	c.cache.Close()
}
