//go:build onnx

package embedder

import (
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/onnx"
)

// NewLocal returns the ONNX all-MiniLM-L6-v2 embedder.
func NewLocal(cfg Config) (memory.Embedder, error) {
	return onnx.New(onnx.Config{
		ModelPath:     cfg.ModelPath,
		TokenizerPath: cfg.TokenizerPath,
		LibraryPath:   cfg.LibraryPath,
		Dimensions:    cfg.Dimensions,
	})
}
