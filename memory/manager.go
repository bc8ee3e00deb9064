package memory

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/engramlabs/engram-go-sdk/core"
)

// Manager orchestrates the write path (Remember) and the read path (Recall)
// over a Store and an Embedder. It is the only component that touches both.
type Manager struct {
	store    Store
	embedder Embedder
	config   *Config
}

// Config holds Manager tuning knobs.
type Config struct {
	// TopK is how many similarity-ranked candidates Recall fetches from
	// the store before re-ordering. Default: 20.
	TopK int

	// ChatWindow is how many chat lines the assembled context keeps,
	// newest last. Info lines are never windowed. Default: 10.
	ChatWindow int
}

// DefaultConfig matches the reference retrieval policy: 20 candidates,
// last 10 chat lines.
var DefaultConfig = &Config{
	TopK:       20,
	ChatWindow: 10,
}

// NewManager creates a Manager. A nil config uses DefaultConfig.
func NewManager(store Store, embedder Embedder, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	return &Manager{
		store:    store,
		embedder: embedder,
		config:   config,
	}
}

// Remember embeds text and stores it as a new memory record for ownerID.
// memType may be empty, which means chat. Nothing is written when
// validation or embedding fails; store write failures are surfaced to the
// caller and not retried here.
func (m *Manager) Remember(ctx context.Context, text, ownerID string, role core.Role, memType core.MemoryType) error {
	rec := NewRecord(text, ownerID, role, memType)
	if err := rec.Validate(); err != nil {
		return err
	}

	vector, err := m.embedder.Embed(ctx, rec.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	rec.Vector = vector

	if err := m.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	log.Printf("[MEMORY] Stored %s/%s record for owner=%s: %q",
		rec.Role, rec.Type, rec.OwnerID, truncateLog(rec.Text, 50))
	return nil
}

// Recall retrieves the owner's most relevant memories and assembles them
// into a bounded context string.
//
// Similarity ranking decides inclusion; the timestamp decides presentation
// order. The candidates are re-sorted oldest first, deduplicated on
// (role, text) with the first occurrence winning, partitioned into info and
// chat lines, and the chat partition is truncated to the last ChatWindow
// entries. Info lines always survive in full.
//
// Returns an empty string and a nil error when the owner has no stored
// memories. A store failure is returned as an error wrapping
// ErrStoreUnavailable, never silently conflated with the empty case.
func (m *Manager) Recall(ctx context.Context, queryText, ownerID string) (string, error) {
	vector, err := m.embedder.Embed(ctx, queryText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}

	candidates, err := m.store.Query(ctx, vector, ownerID, m.config.TopK)
	if err != nil {
		return "", fmt.Errorf("query store: %w", err)
	}

	log.Printf("[MEMORY] Retrieved %d candidates for owner=%s query=%q",
		len(candidates), ownerID, truncateLog(queryText, 50))
	if len(candidates) == 0 {
		return "", nil
	}

	return m.assemble(candidates), nil
}

// assemble turns similarity-ranked candidates into the final context block.
func (m *Manager) assemble(candidates []*Record) string {
	// Chronological reading order; the similarity rank already did its job.
	sorted := make([]*Record, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	seen := make(map[string]struct{}, len(sorted))
	var infoLines, chatLines []string
	for _, rec := range sorted {
		key := rec.dedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if rec.Type == core.TypeInfo {
			infoLines = append(infoLines, rec.Line())
		} else {
			chatLines = append(chatLines, rec.Line())
		}
	}

	// Oldest chat is sacrificed first; info facts are never dropped.
	if len(chatLines) > m.config.ChatWindow {
		chatLines = chatLines[len(chatLines)-m.config.ChatWindow:]
	}

	return strings.Join(append(infoLines, chatLines...), "\n")
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
