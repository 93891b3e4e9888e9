package search

import (
	"context"
	"fmt"

	"github.com/linkvault/linkvault/internal/domain"
)

// BruteForce ranks every stored vector in process. It trades latency for
// exactness and zero index dependencies; results carry raw tag ids.
type BruteForce struct {
	contents ContentLister
}

// NewBruteForce creates the scan-everything strategy.
func NewBruteForce(contents ContentLister) *BruteForce {
	return &BruteForce{contents: contents}
}

// Retrieve loads all of the owner's records, scores them against the
// query vector and returns the top limit results.
func (b *BruteForce) Retrieve(ctx context.Context, ownerID string, query []float32, limit int) ([]domain.ScoredResult, error) {
	records, err := b.contents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	byID := make(map[string]*domain.ContentRecord, len(records))
	candidates := make([]domain.Candidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		if len(rec.Embedding) == 0 {
			continue
		}
		byID[rec.ID] = rec
		candidates = append(candidates, domain.Candidate{ID: rec.ID, Vector: rec.Embedding})
	}

	ranked := domain.RankByQuery(query, candidates, limit)

	results := make([]domain.ScoredResult, 0, len(ranked))
	for _, r := range ranked {
		rec := byID[r.ID]
		tags := rec.TagIDs
		if tags == nil {
			tags = []string{}
		}
		results = append(results, domain.ScoredResult{
			ID:          rec.ID,
			Title:       rec.Title,
			Type:        rec.Type,
			Link:        rec.Link,
			PreviewHTML: rec.PreviewHTML,
			Tags:        tags,
			Score:       r.Score,
		})
	}
	return results, nil
}
