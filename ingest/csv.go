// Package ingest bulk-loads memory records from tabular input.
//
// Ingestion is best-effort: rows that fail validation are skipped silently
// and loading continues, matching the batch-import contract. Only transport
// failures (store, embedder) abort the load.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/memory"
)

// Loader feeds CSV rows into a memory manager.
type Loader struct {
	manager *memory.Manager
	memType core.MemoryType
}

// NewLoader creates a loader that stores rows with the given memory type.
// An empty type means info: bulk imports carry durable profile facts,
// which must survive the chat recency window.
func NewLoader(manager *memory.Manager, memType core.MemoryType) *Loader {
	if memType == "" {
		memType = core.TypeInfo
	}
	return &Loader{manager: manager, memType: memType}
}

// LoadFile loads a CSV file. See Load for the row contract.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Load reads CSV rows with a header line holding columns "text" and
// "person_id", plus an optional "role" (defaulting to user, lowercased).
// Rows with empty text or person_id after trimming, or a role outside
// {user, assistant}, are skipped without error. Returns the number of
// records stored.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return 0, err
	}

	stored, skipped := 0, 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stored, fmt.Errorf("read csv row: %w", err)
		}

		text := strings.TrimSpace(field(row, cols.text))
		ownerID := strings.TrimSpace(field(row, cols.owner))
		// The role defaults to user only when the column is absent; an
		// empty value in a present column fails validation like any
		// other unknown role.
		roleRaw := string(core.RoleUser)
		if cols.role >= 0 {
			roleRaw = field(row, cols.role)
		}
		role, ok := core.ParseRole(roleRaw)
		if text == "" || ownerID == "" || !ok {
			skipped++
			continue
		}

		if err := l.manager.Remember(ctx, text, ownerID, role, l.memType); err != nil {
			return stored, fmt.Errorf("store row %d: %w", stored+skipped+1, err)
		}
		stored++
	}

	log.Printf("[INGEST] Loaded %d records, skipped %d rows", stored, skipped)
	return stored, nil
}

type columnIndex struct {
	text  int
	owner int
	role  int // -1 when the column is absent
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{text: -1, owner: -1, role: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			idx.text = i
		case "person_id":
			idx.owner = i
		case "role":
			idx.role = i
		}
	}
	if idx.text < 0 || idx.owner < 0 {
		return idx, fmt.Errorf("csv header must contain text and person_id columns, got %v", header)
	}
	return idx, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
