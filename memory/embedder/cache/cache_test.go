package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/engramlabs/engram-go-sdk/memory/embedder/cache"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/mock"
)

// countingEmbedder counts how often the inner embedder is invoked.
type countingEmbedder struct {
	inner *mock.Embedder
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.inner.Embed(ctx, text)
}

func (c *countingEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

func TestEmbed_CachesByText(t *testing.T) {
	counting := &countingEmbedder{inner: mock.New(384)}
	cached, err := cache.New(counting, 0)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	defer cached.Close()
	ctx := context.Background()

	first, err := cached.Embed(ctx, "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	// ristretto admits entries asynchronously.
	time.Sleep(100 * time.Millisecond)

	second, err := cached.Embed(ctx, "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("inner embedder called %d times, want 1", counting.calls)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached vector differs at index %d", i)
		}
	}
}

func TestDimensionsDelegates(t *testing.T) {
	cached, err := cache.New(mock.New(256), 0)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	defer cached.Close()

	if got := cached.Dimensions(); got != 256 {
		t.Errorf("Dimensions = %d, want 256", got)
	}
}
