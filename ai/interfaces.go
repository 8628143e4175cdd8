package ai

import "context"

// Embedder maps text to a fixed-length dense vector for semantic similarity.
// Implementations must be thread-safe for concurrent use. The embedding
// service can fail or stall; callers are expected to time out and degrade
// (semantic sub-score of zero) rather than block a search on it.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch, in the
	// same order as the input.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
