// Package cache wraps an embedder with a ristretto memoization layer.
//
// Embedders are deterministic for a given model version, so caching by
// exact text is sound. The chat write path embeds the same user turn that
// was just embedded for recall, and repeated queries embed identical text,
// so a small cache removes most duplicate model invocations.
package cache

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/engramlabs/engram-go-sdk/memory"
)

// Embedder decorates another embedder with an in-process cache.
type Embedder struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

// New creates a caching embedder in front of inner. maxBytes caps the
// cache cost in bytes of stored vectors; zero means 16 MiB.
func New(inner memory.Embedder, maxBytes int64) (*Embedder, error) {
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Embedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, or embeds and caches it.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if val, ok := e.cache.Get(text); ok {
		if vec, ok := val.([]float32); ok {
			return vec, nil
		}
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Set(text, vec, int64(len(vec)*4))
	return vec, nil
}

// Dimensions returns the inner embedder's dimension.
func (e *Embedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Close releases the cache's internal goroutines.
func (e *Embedder) Close() {
	e.cache.Close()
}
