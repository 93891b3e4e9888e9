package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/config"
	"github.com/linkvault/linkvault/internal/domain"
)

// Service orchestrates semantic search: it validates the request, embeds
// the query and delegates ranking to the configured strategy.
type Service struct {
	embedder domain.Embedder
	strategy Strategy
	limits   config.SearchConfig
	logger   *zap.Logger
}

// NewService creates the search service.
func NewService(embedder domain.Embedder, strategy Strategy, limits config.SearchConfig, logger *zap.Logger) *Service {
	return &Service{embedder: embedder, strategy: strategy, limits: limits, logger: logger}
}

// Search returns the owner's content ranked by similarity to the query,
// strictly descending. An empty slice means nothing met the threshold.
func (s *Service) Search(ctx context.Context, ownerID, query, rawLimit string) ([]domain.ScoredResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	limit := s.NormalizeLimit(rawLimit)

	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	// The soft-fail embedder reports provider trouble as an empty
	// vector: nothing can be ranked, so skip the store entirely.
	if len(result.Embedding) == 0 {
		s.logger.Warn("Query embedding unavailable, returning no results",
			zap.String("owner_id", ownerID))
		return []domain.ScoredResult{}, nil
	}

	results, err := s.strategy.Retrieve(ctx, ownerID, result.Embedding, limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.ScoredResult{}
	}
	return results, nil
}

// NormalizeLimit parses the wire-level limit. Missing, unparsable or
// non-positive values fall back to the default; large values clamp to
// the maximum.
func (s *Service) NormalizeLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.limits.DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return s.limits.DefaultLimit
	}
	if n > s.limits.MaxLimit {
		return s.limits.MaxLimit
	}
	return n
}
