package search

import (
	"context"
	"errors"
	"testing"

	"github.com/linkvault/linkvault/internal/db"
	"github.com/linkvault/linkvault/internal/domain"
)

type mockSearcher struct {
	lastQuery *db.KNNQuery
	result    *db.SearchResult
	err       error
}

func (m *mockSearcher) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func TestSearchKNN_BuildsOwnerScopedQuery(t *testing.T) {
	mock := &mockSearcher{result: &db.SearchResult{}}
	repo := New(mock)

	_, err := repo.SearchKNN(context.Background(), "user-1", []float32{0.1, 0.2}, 150)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	q := mock.lastQuery
	if q.IndexName != "lv:content:idx" {
		t.Errorf("index name = %s", q.IndexName)
	}
	if q.Prefilter != "@owner:{user\\-1}" {
		t.Errorf("prefilter = %s", q.Prefilter)
	}
	if q.K != 150 {
		t.Errorf("k = %d", q.K)
	}
}

func TestSearchKNN_ParsesHits(t *testing.T) {
	mock := &mockSearcher{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{
				Key:   "lv:content:c1",
				Score: 0.95,
				Fields: map[string]string{
					"title": "Raft Explained",
					"type":  "article",
					"link":  "https://example.com/raft",
					"tags":  "t1,t2",
				},
			},
			{
				Key:    "lv:content:c2",
				Score:  0.81,
				Fields: map[string]string{"title": "Paxos", "type": "pdf"},
			},
		},
	}}
	repo := New(mock)

	hits, err := repo.SearchKNN(context.Background(), "u1", []float32{1}, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Record.ID != "c1" || hits[0].Score != 0.95 {
		t.Errorf("first hit = %+v", hits[0])
	}
	if hits[0].Record.Type != domain.TypeArticle {
		t.Errorf("type = %s", hits[0].Record.Type)
	}
	if len(hits[0].Record.TagIDs) != 2 {
		t.Errorf("tag ids = %v", hits[0].Record.TagIDs)
	}
	if len(hits[1].Record.TagIDs) != 0 {
		t.Errorf("expected no tags on second hit, got %v", hits[1].Record.TagIDs)
	}
}

func TestSearchKNN_PropagatesError(t *testing.T) {
	wantErr := errors.New("index gone")
	repo := New(&mockSearcher{err: wantErr})

	_, err := repo.SearchKNN(context.Background(), "u1", []float32{1}, 10)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
