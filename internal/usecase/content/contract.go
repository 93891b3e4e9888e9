package content

import (
	"context"

	"github.com/linkvault/linkvault/internal/domain"
)

// ContentRepo is the persistence surface the service needs.
type ContentRepo interface {
	Create(ctx context.Context, rec *domain.ContentRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ContentRecord, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.ContentRecord, error)
}

// TagRepo resolves and maintains tags.
type TagRepo interface {
	UpsertByTitle(ctx context.Context, titles []string, contentID string) ([]string, error)
	ResolveTitles(ctx context.Context, ids []string) ([]string, error)
	Detach(ctx context.Context, tagIDs []string, contentID string) error
}
