// Package memory provides a persistent, per-owner conversational memory
// store for chat agents.
//
// Every utterance is embedded, written to a vector index tagged with its
// owner, role, and timestamp, and later retrieved by semantic similarity
// to assemble a bounded context window for prompt enrichment.
//
// Architecture:
//   - Store: vector storage backend (chromem-go for the local SDK,
//     a hosted vector engine in production)
//   - Embedder: text-to-vector conversion (ONNX all-MiniLM-L6-v2 locally,
//     an API embedder in production)
//   - Manager: orchestrates Remember (write path) and Recall (read path,
//     including re-ordering, deduplication, and windowing)
//
// Retrieval policy: similarity decides which memories are included, the
// timestamp decides the order they are presented in. Pure similarity order
// breaks the narrative the language model needs; pure time-windowing does
// not scale once an owner's history exceeds the context budget. Combining
// both yields the most relevant slice, read in the order it happened.
package memory
