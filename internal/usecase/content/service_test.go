package content

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/domain"
)

type mockContentRepo struct {
	created *domain.ContentRecord
	records []domain.ContentRecord
	deleted *domain.ContentRecord
	err     error
}

func (m *mockContentRepo) Create(_ context.Context, rec *domain.ContentRecord) error {
	m.created = rec
	return m.err
}

func (m *mockContentRepo) ListByOwner(_ context.Context, _ string) ([]domain.ContentRecord, error) {
	return m.records, m.err
}

func (m *mockContentRepo) Delete(_ context.Context, ownerID, id string) (*domain.ContentRecord, error) {
	if m.deleted == nil {
		return nil, domain.ErrContentNotFound
	}
	return m.deleted, nil
}

type mockTagRepo struct {
	upserted []string
	titles   []string
	detached []string
}

func (m *mockTagRepo) UpsertByTitle(_ context.Context, titles []string, _ string) ([]string, error) {
	m.upserted = titles
	ids := make([]string, len(titles))
	for i := range titles {
		ids[i] = "tag-" + titles[i]
	}
	return ids, nil
}

func (m *mockTagRepo) ResolveTitles(_ context.Context, ids []string) ([]string, error) {
	return m.titles, nil
}

func (m *mockTagRepo) Detach(_ context.Context, tagIDs []string, _ string) error {
	m.detached = tagIDs
	return nil
}

type mockEmbedder struct {
	lastText string
	vector   []float32
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.lastText = text
	return domain.EmbeddingResult{Embedding: m.vector}, nil
}

func newService(contents *mockContentRepo, tags *mockTagRepo, emb *mockEmbedder) *Service {
	return NewService(contents, tags, emb, zap.NewNop())
}

func TestBuildEmbeddingText(t *testing.T) {
	got := BuildEmbeddingText("Raft Explained", domain.TypeArticle, []string{"consensus", "distributed"})
	want := "Title: Raft Explained\nType: article\nTags: consensus, distributed"
	if got != want {
		t.Errorf("embedding text = %q, want %q", got, want)
	}

	got = BuildEmbeddingText("Solo", domain.TypePDF, nil)
	want = "Title: Solo\nType: pdf\nTags: "
	if got != want {
		t.Errorf("tagless embedding text = %q, want %q", got, want)
	}
}

func TestCreate_HappyPath(t *testing.T) {
	contents := &mockContentRepo{}
	tags := &mockTagRepo{}
	emb := &mockEmbedder{vector: []float32{0.1, 0.2}}
	svc := newService(contents, tags, emb)

	rec, err := svc.Create(context.Background(), "u1", CreateInput{
		Title: "Raft Explained",
		Type:  "article",
		Link:  "https://example.com/raft",
		Tags:  []string{"consensus"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Error("no id generated")
	}
	if rec.OwnerID != "u1" {
		t.Errorf("owner = %s", rec.OwnerID)
	}
	if len(rec.TagIDs) != 1 || rec.TagIDs[0] != "tag-consensus" {
		t.Errorf("tag ids = %v", rec.TagIDs)
	}
	if len(rec.Embedding) != 2 {
		t.Errorf("embedding = %v", rec.Embedding)
	}
	if emb.lastText != "Title: Raft Explained\nType: article\nTags: consensus" {
		t.Errorf("embedded text = %q", emb.lastText)
	}
	if contents.created == nil {
		t.Fatal("record not persisted")
	}
}

func TestCreate_NormalizesTagTitles(t *testing.T) {
	contents := &mockContentRepo{}
	tags := &mockTagRepo{}
	emb := &mockEmbedder{vector: []float32{0.1}}
	svc := newService(contents, tags, emb)

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		Title: "Raft",
		Type:  "article",
		Link:  "https://example.com",
		Tags:  []string{" go ", "", "  ", "distributed"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(tags.upserted) != 2 || tags.upserted[0] != "go" || tags.upserted[1] != "distributed" {
		t.Errorf("upserted titles = %v", tags.upserted)
	}
	if emb.lastText != "Title: Raft\nType: article\nTags: go, distributed" {
		t.Errorf("embedded text = %q", emb.lastText)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc := newService(&mockContentRepo{}, &mockTagRepo{}, &mockEmbedder{})

	_, err := svc.Create(context.Background(), "u1", CreateInput{Title: " ", Type: "article", Link: "x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank title: got %v", err)
	}

	_, err = svc.Create(context.Background(), "u1", CreateInput{Title: "t", Type: "bogus", Link: "x"})
	if !errors.Is(err, domain.ErrInvalidContentType) {
		t.Errorf("bad type: got %v", err)
	}
}

func TestCreate_SavesWithoutEmbedding(t *testing.T) {
	contents := &mockContentRepo{}
	svc := newService(contents, &mockTagRepo{}, &mockEmbedder{vector: nil})

	rec, err := svc.Create(context.Background(), "u1", CreateInput{
		Title: "t", Type: "pdf", Link: "https://example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(rec.Embedding) != 0 {
		t.Errorf("embedding = %v", rec.Embedding)
	}
	if contents.created == nil {
		t.Fatal("vector-less record must still be saved")
	}
}

func TestList_ResolvesTagTitles(t *testing.T) {
	contents := &mockContentRepo{records: []domain.ContentRecord{
		{ID: "c1", Title: "t", Type: domain.TypeArticle, TagIDs: []string{"t1"}},
	}}
	tags := &mockTagRepo{titles: []string{"golang"}}
	svc := newService(contents, tags, &mockEmbedder{})

	views, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %+v", views)
	}
	if len(views[0].Tags) != 1 || views[0].Tags[0] != "golang" {
		t.Errorf("tags = %v", views[0].Tags)
	}
}

func TestDelete_DetachesTags(t *testing.T) {
	contents := &mockContentRepo{deleted: &domain.ContentRecord{ID: "c1", TagIDs: []string{"t1", "t2"}}}
	tags := &mockTagRepo{}
	svc := newService(contents, tags, &mockEmbedder{})

	if err := svc.Delete(context.Background(), "u1", "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(tags.detached) != 2 {
		t.Errorf("detached = %v", tags.detached)
	}
}

func TestDelete_Missing(t *testing.T) {
	svc := newService(&mockContentRepo{}, &mockTagRepo{}, &mockEmbedder{})
	if err := svc.Delete(context.Background(), "u1", "nope"); !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("got %v", err)
	}
}
