package embedding

import (
	"context"

	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/domain"
	"github.com/linkvault/linkvault/internal/metrics"
)

// SoftFailEmbedder is the outermost embedder decorator. It enforces the
// two policies every caller relies on:
//
//   - empty input never reaches the remote model (cost avoidance);
//   - a provider failure is logged and degraded to an empty vector, never
//     surfaced as an error. Downstream logic treats an empty vector as
//     "embedding unavailable".
type SoftFailEmbedder struct {
	inner  domain.Embedder
	logger *zap.Logger
}

// NewSoftFailEmbedder wraps an embedder with the fail-soft policy.
func NewSoftFailEmbedder(inner domain.Embedder, logger *zap.Logger) *SoftFailEmbedder {
	return &SoftFailEmbedder{inner: inner, logger: logger}
}

// Embed vectorizes text. The returned error is always nil; failures come
// back as a result with an empty Embedding.
func (e *SoftFailEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if text == "" {
		return domain.EmbeddingResult{}, nil
	}

	result, err := e.inner.Embed(ctx, text)
	if err != nil {
		metrics.EmbeddingSoftFailTotal.Inc()
		e.logger.Error("Embedding failed, degrading to empty vector", zap.Error(err))
		return domain.EmbeddingResult{}, nil
	}
	return result, nil
}
