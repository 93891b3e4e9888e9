package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/domain"
)

// Service implements content creation, listing and deletion.
type Service struct {
	contents ContentRepo
	tags     TagRepo
	embedder domain.Embedder
	logger   *zap.Logger
}

// NewService creates the content service.
func NewService(contents ContentRepo, tags TagRepo, embedder domain.Embedder, logger *zap.Logger) *Service {
	return &Service{contents: contents, tags: tags, embedder: embedder, logger: logger}
}

// CreateInput carries the fields of a new bookmark. Tags are titles, not ids.
type CreateInput struct {
	Title       string
	Type        string
	Link        string
	PreviewHTML string
	Tags        []string
}

// Create validates the input, upserts tags, vectorizes the content and
// persists the record. Embedding is best-effort: a provider failure
// leaves the record vector-less but still saved.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.ContentRecord, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Link) == "" {
		return nil, fmt.Errorf("%w: title and link are required", domain.ErrInvalidInput)
	}
	ctype, err := domain.ParseContentType(in.Type)
	if err != nil {
		return nil, err
	}

	rec := &domain.ContentRecord{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Type:        ctype,
		Link:        in.Link,
		OwnerID:     ownerID,
		PreviewHTML: in.PreviewHTML,
	}

	tags := normalizeTags(in.Tags)
	rec.TagIDs, err = s.tags.UpsertByTitle(ctx, tags, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("upsert tags: %w", err)
	}

	// The embedder chain never returns an error here; a failure comes
	// back as an empty vector and the record is saved without one.
	result, err := s.embedder.Embed(ctx, BuildEmbeddingText(rec.Title, rec.Type, tags))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	rec.Embedding = result.Embedding
	if len(rec.Embedding) == 0 {
		s.logger.Warn("Content saved without embedding", zap.String("content_id", rec.ID))
	}

	if err := s.contents.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}
	return rec, nil
}

// List returns the owner's content with tag ids resolved to titles.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.ContentView, error) {
	records, err := s.contents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	views := make([]domain.ContentView, 0, len(records))
	for _, rec := range records {
		titles, err := s.tags.ResolveTitles(ctx, rec.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve tags for %s: %w", rec.ID, err)
		}
		if titles == nil {
			titles = []string{}
		}
		views = append(views, domain.ContentView{
			ID:          rec.ID,
			Title:       rec.Title,
			Type:        rec.Type,
			Link:        rec.Link,
			PreviewHTML: rec.PreviewHTML,
			Tags:        titles,
		})
	}
	return views, nil
}

// Delete removes one of the owner's records and detaches it from its tags.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	rec, err := s.contents.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.tags.Detach(ctx, rec.TagIDs, id); err != nil {
		// The record is already gone; a dangling set member is tolerable.
		s.logger.Warn("Tag detach failed after content delete",
			zap.String("content_id", id), zap.Error(err))
	}
	return nil
}

// normalizeTags trims titles and drops blanks, matching what the tag
// repository persists, so the embedded text names the stored tags.
func normalizeTags(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// BuildEmbeddingText assembles the canonical text sent to the embedding
// model. The order and labels are fixed so stored vectors and query-time
// vectors live in the same space.
func BuildEmbeddingText(title string, ctype domain.ContentType, tagTitles []string) string {
	return fmt.Sprintf("Title: %s\nType: %s\nTags: %s", title, ctype, strings.Join(tagTitles, ", "))
}
