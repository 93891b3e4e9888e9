package search

import (
	"context"
	"fmt"

	"github.com/linkvault/linkvault/internal/config"
	"github.com/linkvault/linkvault/internal/domain"
)

// Indexed delegates ranking to the store's KNN index. It oversamples the
// candidate pool so enough hits survive the score threshold, then joins
// tag ids to titles.
type Indexed struct {
	knn      KNNSearcher
	tags     TagResolver
	minScore float64
	factor   int
	minPool  int
}

// NewIndexed creates the index-backed strategy.
func NewIndexed(knn KNNSearcher, tags TagResolver, cfg config.SearchConfig) *Indexed {
	return &Indexed{
		knn:      knn,
		tags:     tags,
		minScore: cfg.MinScore,
		factor:   cfg.OversampleFactor,
		minPool:  cfg.MinCandidatePool,
	}
}

// Retrieve runs one KNN query with an oversampled pool, drops hits below
// the score threshold and returns the top limit survivors.
func (s *Indexed) Retrieve(ctx context.Context, ownerID string, query []float32, limit int) ([]domain.ScoredResult, error) {
	k := s.factor * limit
	if k < s.minPool {
		k = s.minPool
	}

	hits, err := s.knn.SearchKNN(ctx, ownerID, query, k)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	results := make([]domain.ScoredResult, 0, limit)
	for _, hit := range hits {
		if hit.Score < s.minScore {
			continue
		}
		titles, err := s.tags.ResolveTitles(ctx, hit.Record.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve tags for %s: %w", hit.Record.ID, err)
		}
		if titles == nil {
			titles = []string{}
		}
		results = append(results, domain.ScoredResult{
			ID:          hit.Record.ID,
			Title:       hit.Record.Title,
			Type:        hit.Record.Type,
			Link:        hit.Record.Link,
			PreviewHTML: hit.Record.PreviewHTML,
			Tags:        titles,
			Score:       hit.Score,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
