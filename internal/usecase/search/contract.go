package search

import (
	"context"

	"github.com/linkvault/linkvault/internal/domain"
	searchrepo "github.com/linkvault/linkvault/internal/repository/search"
)

// Strategy retrieves the owner's content ranked against a query vector.
// The implementation is chosen once at startup from config.
type Strategy interface {
	Retrieve(ctx context.Context, ownerID string, query []float32, limit int) ([]domain.ScoredResult, error)
}

// ContentLister loads all of an owner's records, used by the brute-force
// strategy.
type ContentLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ContentRecord, error)
}

// KNNSearcher runs an index-side nearest-neighbour query, used by the
// indexed strategy.
type KNNSearcher interface {
	SearchKNN(ctx context.Context, ownerID string, vector []float32, k int) ([]searchrepo.Hit, error)
}

// TagResolver maps tag ids to titles for result enrichment.
type TagResolver interface {
	ResolveTitles(ctx context.Context, ids []string) ([]string, error)
}
