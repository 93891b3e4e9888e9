package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/domain"
	"github.com/linkvault/linkvault/internal/metrics"
)

func init() {
	metrics.RegisterEmbeddingMetrics()
}

type mockEmbedder struct {
	vec    []float32
	err    error
	calls  int
	tokens int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: m.tokens}, nil
}

func TestSoftFail_PassesThroughSuccess(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	soft := NewSoftFailEmbedder(inner, zap.NewNop())

	result, err := soft.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(result.Embedding))
	}
}

func TestSoftFail_EmptyInputSkipsProvider(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.1}}
	soft := NewSoftFailEmbedder(inner, zap.NewNop())

	result, err := soft.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 0 {
		t.Errorf("expected empty vector, got %d values", len(result.Embedding))
	}
	if inner.calls != 0 {
		t.Errorf("provider called %d times for empty input, want 0", inner.calls)
	}
}

func TestSoftFail_ProviderErrorDegradesToEmpty(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("connection refused")}
	soft := NewSoftFailEmbedder(inner, zap.NewNop())

	result, err := soft.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("soft-fail embedder must not return errors, got %v", err)
	}
	if len(result.Embedding) != 0 {
		t.Errorf("expected empty vector on failure, got %d values", len(result.Embedding))
	}
}
