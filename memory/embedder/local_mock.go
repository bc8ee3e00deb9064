//go:build !onnx

package embedder

import (
	"log"

	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/mock"
)

// NewLocal returns the hash-based mock embedder. Build with -tags onnx for
// real semantic embeddings.
func NewLocal(cfg Config) (memory.Embedder, error) {
	log.Printf("[EMBEDDER] onnx build tag not set, using deterministic mock embedder")
	return mock.New(cfg.Dimensions), nil
}
