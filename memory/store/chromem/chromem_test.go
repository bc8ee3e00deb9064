package chromem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/mock"
	"github.com/engramlabs/engram-go-sdk/memory/store/chromem"
)

func newRecord(t *testing.T, emb memory.Embedder, text, owner string, role core.Role) *memory.Record {
	t.Helper()
	rec := memory.NewRecord(text, owner, role, core.TypeChat)
	vec, err := emb.Embed(context.Background(), text)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	rec.Vector = vec
	return rec
}

func TestInsertAndQuery(t *testing.T) {
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	emb := mock.New(384)
	ctx := context.Background()

	rec := newRecord(t, emb, "the delivery arrived broken", "alice", core.RoleUser)
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	results, err := store.Query(ctx, rec.Vector, "alice", 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	got := results[0]
	if got.ID != rec.ID || got.Text != rec.Text || got.OwnerID != "alice" || got.Role != core.RoleUser {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Type != core.TypeChat {
		t.Errorf("Type = %q, want chat", got.Type)
	}
	if got.Timestamp.Unix() != rec.Timestamp.Unix() {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, rec.Timestamp)
	}
}

func TestOwnerIsolation(t *testing.T) {
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	emb := mock.New(384)
	ctx := context.Background()

	rec := newRecord(t, emb, "my pin is secret", "alice", core.RoleUser)
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Querying with Alice's own vector under a different owner must never
	// leak her records, regardless of similarity.
	results, err := store.Query(ctx, rec.Vector, "bob", 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("owner filter leaked %d records", len(results))
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	emb := mock.New(384)

	vec, _ := emb.Embed(context.Background(), "anything")
	results, err := store.Query(context.Background(), vec, "never-seen", 20)
	if err != nil {
		t.Fatalf("empty collection should not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results from an empty collection", len(results))
	}
}

func TestInsertRejectsWrongDimension(t *testing.T) {
	store, err := chromem.New(chromem.Config{Dimension: 384})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	rec := memory.NewRecord("hello", "alice", core.RoleUser, core.TypeChat)
	rec.Vector = make([]float32, 128)

	err = store.Insert(context.Background(), rec)
	if !errors.Is(err, memory.ErrInvalidRecord) {
		t.Fatalf("Insert error = %v, want ErrInvalidRecord", err)
	}
}

func TestEnsureCollectionIdempotent(t *testing.T) {
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.EnsureCollection(context.Background()); err != nil {
			t.Fatalf("EnsureCollection call %d failed: %v", i+1, err)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	emb := mock.New(384)
	ctx := context.Background()

	store, err := chromem.New(chromem.Config{Path: dir})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	rec := newRecord(t, emb, "remember me", "alice", core.RoleUser)
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := chromem.New(chromem.Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	results, err := reopened.Query(ctx, rec.Vector, "alice", 5)
	if err != nil {
		t.Fatalf("Query after reopen failed: %v", err)
	}
	if len(results) != 1 || results[0].Text != "remember me" {
		t.Fatalf("record did not survive reopen: %+v", results)
	}
}
