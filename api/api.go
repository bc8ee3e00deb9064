// Package api wires the SDK together from configuration: vector store,
// embedder, memory manager, language model, and chat engine.
package api

import (
	"context"
	"os"

	"github.com/engramlabs/engram-go-sdk/config"
	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/engine"
	"github.com/engramlabs/engram-go-sdk/ingest"
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/cache"
	"github.com/engramlabs/engram-go-sdk/memory/store/chromem"
	anthropicmodel "github.com/engramlabs/engram-go-sdk/model/anthropic"
)

// Config keys understood by New. Anything absent falls back to the
// reference defaults.
const (
	KeyStorePath     = "storePath"
	KeyCollection    = "collectionName"
	KeyDimension     = "embeddingDimension"
	KeyTopK          = "topK"
	KeyChatWindow    = "chatWindow"
	KeyModelName     = "modelName"
	KeyMaxTokens     = "maxTokens"
	KeySystemPrompt  = "systemPrompt"
	KeyCallTimeout   = "callTimeout"
	KeyOnnxModel     = "onnxModelPath"
	KeyOnnxTokenizer = "onnxTokenizerPath"
	KeyOnnxLibrary   = "onnxLibraryPath"
	KeyListenAddr    = "listenAddr"
)

// API is the assembled SDK: one engine over one shared collection.
type API struct {
	Engine  *engine.Engine
	Manager *memory.Manager

	store *chromem.Store
	embed *cache.Embedder
}

// New assembles the SDK from config. The Anthropic key is read from the
// ANTHROPIC_API_KEY environment variable.
func New(cfg *config.Config) (*API, error) {
	dimension := cfg.GetIntOrDefault(KeyDimension, 384)

	store, err := chromem.New(chromem.Config{
		Path:       cfg.GetStringOrDefault(KeyStorePath, "engram_db"),
		Collection: cfg.GetStringOrDefault(KeyCollection, "memory"),
		Dimension:  dimension,
	})
	if err != nil {
		return nil, err
	}

	local, err := embedder.NewLocal(embedder.Config{
		ModelPath:     cfg.GetString(KeyOnnxModel),
		TokenizerPath: cfg.GetString(KeyOnnxTokenizer),
		LibraryPath:   cfg.GetString(KeyOnnxLibrary),
		Dimensions:    dimension,
	})
	if err != nil {
		return nil, err
	}
	cached, err := cache.New(local, 0)
	if err != nil {
		return nil, err
	}

	manager := memory.NewManager(store, cached, &memory.Config{
		TopK:       cfg.GetIntOrDefault(KeyTopK, 20),
		ChatWindow: cfg.GetIntOrDefault(KeyChatWindow, 10),
	})

	mdl, err := anthropicmodel.New(anthropicmodel.Config{
		APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		Model:     cfg.GetString(KeyModelName),
		MaxTokens: int64(cfg.GetIntOrDefault(KeyMaxTokens, 1024)),
	})
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{}
	if prompt := cfg.GetString(KeySystemPrompt); prompt != "" {
		opts = append(opts, engine.WithSystemPrompt(prompt))
	}
	if timeout := cfg.GetDurationOrDefault(KeyCallTimeout, 0); timeout > 0 {
		opts = append(opts, engine.WithCallTimeout(timeout))
	}

	return &API{
		Engine:  engine.New(manager, mdl, opts...),
		Manager: manager,
		store:   store,
		embed:   cached,
	}, nil
}

// Respond runs one chat interaction for ownerID.
func (a *API) Respond(ctx context.Context, ownerID, message string) (string, error) {
	return a.Engine.Respond(ctx, ownerID, message)
}

// ImportCSV bulk-loads profile facts from a CSV file and returns the
// number of stored records.
func (a *API) ImportCSV(ctx context.Context, path string) (int, error) {
	return ingest.NewLoader(a.Manager, core.TypeInfo).LoadFile(ctx, path)
}

// Close releases backend resources.
func (a *API) Close() error {
	a.embed.Close()
	return a.store.Close()
}
