// Package chromem implements the memory.Store interface on top of
// chromem-go, a pure Go embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/memory"
)

// Metric is the distance metric of a collection. It is fixed at creation.
type Metric string

// MetricCosine is the only metric chromem-go supports.
const MetricCosine Metric = "cosine"

// Payload field names, shared with any other reader of the collection.
const (
	fieldOwner     = "person_id"
	fieldRole      = "role"
	fieldTimestamp = "timestamp"
	fieldType      = "type"
)

// Config configures the store.
type Config struct {
	// Path is the directory for the persistent database. Empty means a
	// purely in-memory database (tests, throwaway sessions).
	Path string

	// Collection is the collection name. Default: "memory".
	Collection string

	// Dimension is the fixed vector dimension. Default: 384
	// (all-MiniLM-L6-v2).
	Dimension int

	// Metric is the distance metric. Only cosine is supported.
	Metric Metric
}

// Store wraps a single chromem collection with a fixed dimension and
// cosine metric. All owners share the collection; reads always filter by
// owner inside the index.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	dimension  int
	mu         sync.Mutex
}

// New opens (or creates) the database and idempotently ensures the
// collection exists. A backing engine that cannot be opened surfaces as
// memory.ErrStoreUnavailable.
func New(cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		cfg.Collection = "memory"
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = 384
	}
	if cfg.Metric == "" {
		cfg.Metric = MetricCosine
	}
	if cfg.Metric != MetricCosine {
		return nil, fmt.Errorf("unsupported metric %q, only cosine is available", cfg.Metric)
	}

	var db *chromem.DB
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("%w: open persistent db: %v", memory.ErrStoreUnavailable, err)
		}
	}

	s := &Store{
		db:        db,
		name:      cfg.Collection,
		dimension: cfg.Dimension,
	}
	if err := s.EnsureCollection(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureCollection creates the collection if it does not already exist and
// is a no-op otherwise. Existing documents survive restarts when the
// database is persistent.
func (s *Store) EnsureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collection != nil {
		return nil
	}
	// No embedding func: embeddings are always provided by the caller.
	col, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: ensure collection %q: %v", memory.ErrStoreUnavailable, s.name, err)
	}
	s.collection = col
	log.Printf("[CHROMEM] Collection %q ready (%d documents)", s.name, col.Count())
	return nil
}

// Insert writes one record's vector and payload under its ID.
// The vector must match the collection dimension.
func (s *Store) Insert(ctx context.Context, rec *memory.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if len(rec.Vector) != s.dimension {
		return fmt.Errorf("%w: vector dimension %d, collection dimension %d",
			memory.ErrInvalidRecord, len(rec.Vector), s.dimension)
	}

	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Embedding: rec.Vector,
		Metadata: map[string]string{
			fieldOwner:     rec.OwnerID,
			fieldRole:      string(rec.Role),
			fieldTimestamp: formatTimestamp(rec.Timestamp),
			fieldType:      string(rec.Type),
		},
	}
	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("%w: add document: %v", memory.ErrStoreUnavailable, err)
	}
	return nil
}

// Query returns up to limit records owned by ownerID, ranked by cosine
// similarity to vector, best first. The owner predicate is evaluated inside
// the index. Zero matches is an empty result, not an error.
func (s *Store) Query(ctx context.Context, vector []float32, ownerID string, limit int) ([]*memory.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	// chromem rejects nResults larger than the collection, so clamp to the
	// document count. An empty collection is a genuine zero-match.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	where := map[string]string{fieldOwner: ownerID}
	results, err := s.collection.QueryEmbedding(ctx, vector, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", memory.ErrStoreUnavailable, err)
	}

	log.Printf("[CHROMEM] Query owner=%s limit=%d -> %d results", ownerID, limit, len(results))

	records := make([]*memory.Record, 0, len(results))
	for _, res := range results {
		records = append(records, resultToRecord(res))
	}
	return records, nil
}

// Close releases backend resources. chromem keeps its working set in
// memory and flushes persistent writes eagerly, so there is nothing to do.
func (s *Store) Close() error {
	return nil
}

// resultToRecord maps a chromem result back to a memory record. Missing
// payload fields degrade the same way the wire schema specifies: the type
// defaults to chat, a missing timestamp to the zero time.
func resultToRecord(res chromem.Result) *memory.Record {
	memType := core.MemoryType(res.Metadata[fieldType])
	if memType == "" {
		memType = core.TypeChat
	}
	return &memory.Record{
		ID:        res.ID,
		Vector:    res.Embedding,
		Text:      res.Content,
		OwnerID:   res.Metadata[fieldOwner],
		Role:      core.Role(res.Metadata[fieldRole]),
		Timestamp: parseTimestamp(res.Metadata[fieldTimestamp]),
		Type:      memType,
	}
}

// formatTimestamp encodes a timestamp as float seconds since the epoch,
// the payload schema shared with other readers of the collection.
func formatTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
}

func parseTimestamp(s string) time.Time {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, int64(f*1e9))
}
