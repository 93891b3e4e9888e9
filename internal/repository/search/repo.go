package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/linkvault/linkvault/internal/db"
	"github.com/linkvault/linkvault/internal/domain"
	contentrepo "github.com/linkvault/linkvault/internal/repository/content"
)

// Hit is a single KNN match: the stored record plus the index-reported
// similarity score.
type Hit struct {
	Record domain.ContentRecord
	Score  float64
}

// store is the consumer interface for KNN search.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements vector search over the content index.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchKNN runs an owner-scoped KNN query against the content index and
// requests k candidates (the caller oversamples to survive post-filtering).
func (r *Repo) SearchKNN(ctx context.Context, ownerID string, vector []float32, k int) ([]Hit, error) {
	q := &db.KNNQuery{
		IndexName:    contentrepo.IndexName,
		Prefilter:    ownerFilter(ownerID),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"title", "type", "link", "preview", "tags", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	prefix := domain.KeyPrefix + "content:"
	hits := make([]Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		rec := domain.ContentRecord{
			ID:          strings.TrimPrefix(entry.Key, prefix),
			Title:       entry.Fields["title"],
			Type:        domain.ContentType(entry.Fields["type"]),
			Link:        entry.Fields["link"],
			OwnerID:     ownerID,
			PreviewHTML: entry.Fields["preview"],
		}
		if tags := entry.Fields["tags"]; tags != "" {
			rec.TagIDs = strings.Split(tags, ",")
		}
		hits = append(hits, Hit{Record: rec, Score: entry.Score})
	}
	return hits, nil
}

// ownerFilter builds the TAG prefilter clause for one owner.
func ownerFilter(ownerID string) string {
	return fmt.Sprintf("@owner:{%s}", tagEscaper.Replace(ownerID))
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)
