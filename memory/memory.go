package memory

import (
	"context"
	"errors"
)

// Sentinel errors for the memory pipeline. Wrapped errors are matched with
// errors.Is; none of them is retried internally, callers decide.
var (
	// ErrStoreUnavailable indicates the vector index could not be reached
	// or the operation failed server-side. On reads this is distinct from
	// a genuine zero-match, which is an empty result and a nil error.
	ErrStoreUnavailable = errors.New("memory: store unavailable")

	// ErrEmbeddingFailure indicates the embedding call failed or returned
	// malformed output. Nothing is written when embedding fails.
	ErrEmbeddingFailure = errors.New("memory: embedding failed")

	// ErrInvalidRecord indicates a record failed validation: empty text or
	// owner, unknown role, or a vector of the wrong dimension.
	ErrInvalidRecord = errors.New("memory: invalid record")
)

// Store is the vector storage backend.
// Implementations: chromem.Store (local SDK), hosted engines in production.
type Store interface {
	// EnsureCollection creates the backing collection if and only if it
	// does not already exist. Idempotent; safe to call on every startup.
	EnsureCollection(ctx context.Context) error

	// Insert writes one record's vector and payload under its ID.
	// Records are append-only; there is no update or delete path.
	Insert(ctx context.Context, rec *Record) error

	// Query returns up to limit records whose owner matches ownerID,
	// ranked by cosine similarity to vector, best first. The owner filter
	// is applied inside the index, not client-side, so one owner's results
	// are never starved by another owner's records. A zero-match returns
	// an empty slice and a nil error.
	Query(ctx context.Context, vector []float32, ownerID string, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// Embedder converts text to a fixed-dimension vector. Implementations must
// be deterministic for a given model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
