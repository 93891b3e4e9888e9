package linkvault

import (
	"context"
	"time"

	contentuc "github.com/linkvault/linkvault/internal/usecase/content"
)

// Content is a stored bookmark with tags resolved to titles.
type Content struct {
	ID          string
	Title       string
	Type        string
	Link        string
	PreviewHTML string
	Tags        []string
}

// Result is a semantic search hit.
type Result struct {
	Content
	Score float64
}

// ContentInput carries the fields of a new bookmark. Type is one of
// image, video, pdf, article, audio. Tags are titles; missing tags are
// created, existing ones reused.
type ContentInput struct {
	Title       string
	Type        string
	Link        string
	PreviewHTML string
	Tags        []string
}

// ContentService manages an owner's bookmarks.
type ContentService struct {
	svc contentUseCase
	obs *observer
}

// Add stores a bookmark and returns its id. The embedding is attached
// best-effort; a provider failure still saves the record.
func (s *ContentService) Add(ctx context.Context, ownerID string, in ContentInput) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("content_add", start, err) }()

	rec, err := s.svc.Create(ctx, ownerID, contentuc.CreateInput{
		Title:       in.Title,
		Type:        in.Type,
		Link:        in.Link,
		PreviewHTML: in.PreviewHTML,
		Tags:        in.Tags,
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// List returns all of the owner's bookmarks.
func (s *ContentService) List(ctx context.Context, ownerID string) (_ []Content, err error) {
	start := time.Now()
	defer func() { s.obs.observe("content_list", start, err) }()

	views, err := s.svc.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]Content, len(views))
	for i, v := range views {
		out[i] = Content{
			ID:          v.ID,
			Title:       v.Title,
			Type:        string(v.Type),
			Link:        v.Link,
			PreviewHTML: v.PreviewHTML,
			Tags:        v.Tags,
		}
	}
	return out, nil
}

// Delete removes one of the owner's bookmarks.
func (s *ContentService) Delete(ctx context.Context, ownerID, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("content_delete", start, err) }()

	return s.svc.Delete(ctx, ownerID, id)
}
