// Package embedder selects a local embedder implementation at build time.
// With the onnx build tag, NewLocal runs real sentence-transformer
// inference; without it, a deterministic hash embedder keeps the rest of
// the stack usable for development and tests.
package embedder

// Config configures the local embedder. The model paths are only consulted
// by onnx builds.
type Config struct {
	ModelPath     string
	TokenizerPath string
	LibraryPath   string
	Dimensions    int
}
