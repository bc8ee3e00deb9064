package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/ingest"
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/mock"
)

type captureStore struct {
	inserted []*memory.Record
}

func (s *captureStore) EnsureCollection(ctx context.Context) error { return nil }

func (s *captureStore) Insert(ctx context.Context, rec *memory.Record) error {
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *captureStore) Query(ctx context.Context, vector []float32, ownerID string, limit int) ([]*memory.Record, error) {
	return nil, nil
}

func (s *captureStore) Close() error { return nil }

func newLoader(store *captureStore) *ingest.Loader {
	manager := memory.NewManager(store, mock.New(384), nil)
	return ingest.NewLoader(manager, core.TypeInfo)
}

func TestLoad_SkipsInvalidRows(t *testing.T) {
	csv := strings.Join([]string{
		"text,person_id,role",
		"Dushyant is a data scientist focused on AI agents.,10000000000000000001,user",
		"Sridhar is 25 and works in fintech.,10000000000000000002,assistant",
		"Bad role row.,10000000000000000003,moderator",
		",10000000000000000004,user",
		"No owner row.,,user",
	}, "\n")

	store := &captureStore{}
	count, err := newLoader(store).Load(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if count != 2 {
		t.Errorf("stored count = %d, want 2", count)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("inserted %d records, want 2", len(store.inserted))
	}
	for _, rec := range store.inserted {
		if rec.Type != core.TypeInfo {
			t.Errorf("record %q stored as %q, want info", rec.Text, rec.Type)
		}
	}
}

func TestLoad_RoleDefaultsToUser(t *testing.T) {
	csv := "text,person_id\nAlice likes jazz.,alice\n"

	store := &captureStore{}
	count, err := newLoader(store).Load(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("stored count = %d, want 1", count)
	}
	if store.inserted[0].Role != core.RoleUser {
		t.Errorf("Role = %q, want user", store.inserted[0].Role)
	}
}

func TestLoad_RoleIsLowercased(t *testing.T) {
	csv := "text,person_id,role\nAlice likes jazz.,alice,ASSISTANT\n"

	store := &captureStore{}
	count, err := newLoader(store).Load(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("stored count = %d, want 1", count)
	}
	if store.inserted[0].Role != core.RoleAssistant {
		t.Errorf("Role = %q, want assistant", store.inserted[0].Role)
	}
}

func TestLoad_MissingRequiredColumns(t *testing.T) {
	csv := "message,owner\nhello,alice\n"

	store := &captureStore{}
	if _, err := newLoader(store).Load(context.Background(), strings.NewReader(csv)); err == nil {
		t.Fatal("Load should fail without text/person_id columns")
	}
}
