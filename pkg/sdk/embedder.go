package linkvault

import "context"

// Embedder converts text to vector embeddings. Without one, content is
// stored vector-less and semantic search returns no results.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
