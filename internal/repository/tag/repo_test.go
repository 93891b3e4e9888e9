package tag

import (
	"context"
	"testing"
)

type mockStore struct {
	kv     map[string][]byte
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
}

func newMockStore() *mockStore {
	return &mockStore{
		kv:     make(map[string][]byte),
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.hashes[key] = fields
	return nil
}

func (m *mockStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockStore) SetNXGet(_ context.Context, key string, value []byte) ([]byte, bool, error) {
	if prev, ok := m.kv[key]; ok {
		return prev, false, nil
	}
	m.kv[key] = value
	return value, true, nil
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	for _, mem := range members {
		set[mem] = struct{}{}
	}
	return nil
}

func (m *mockStore) SRem(_ context.Context, key string, members ...string) error {
	for _, mem := range members {
		delete(m.sets[key], mem)
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	var out []string
	for mem := range m.sets[key] {
		out = append(out, mem)
	}
	return out, nil
}

func TestUpsertByTitle_Idempotent(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	first, err := repo.UpsertByTitle(ctx, []string{"golang"}, "content-1")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.UpsertByTitle(ctx, []string{"golang"}, "content-2")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one id per upsert, got %v / %v", first, second)
	}
	if first[0] != second[0] {
		t.Errorf("overlapping title produced two tag ids: %s vs %s", first[0], second[0])
	}

	members, err := repo.ContentIDs(ctx, first[0])
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected both content ids attached, got %v", members)
	}
}

func TestUpsertByTitle_CaseInsensitiveDedup(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	a, _ := repo.UpsertByTitle(ctx, []string{"Golang"}, "c1")
	b, _ := repo.UpsertByTitle(ctx, []string{"golang"}, "c2")
	if a[0] != b[0] {
		t.Errorf("case variants produced distinct tags: %s vs %s", a[0], b[0])
	}
}

func TestUpsertByTitle_SkipsBlankTitles(t *testing.T) {
	repo := New(newMockStore())

	ids, err := repo.UpsertByTitle(context.Background(), []string{"  ", "valid", ""}, "c1")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected only the valid title to upsert, got %v", ids)
	}
}

func TestResolveTitles(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	ids, err := repo.UpsertByTitle(ctx, []string{"ml", "systems"}, "c1")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	titles, err := repo.ResolveTitles(ctx, ids)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(titles) != 2 || titles[0] != "ml" || titles[1] != "systems" {
		t.Errorf("resolved titles = %v, want [ml systems]", titles)
	}

	// Unknown ids resolve to nothing rather than erroring.
	titles, err = repo.ResolveTitles(ctx, []string{"ghost"})
	if err != nil {
		t.Fatalf("resolve unknown: %v", err)
	}
	if len(titles) != 0 {
		t.Errorf("unknown id resolved to %v", titles)
	}
}

func TestDetach(t *testing.T) {
	repo := New(newMockStore())
	ctx := context.Background()

	ids, _ := repo.UpsertByTitle(ctx, []string{"golang"}, "c1")
	if err := repo.Detach(ctx, ids, "c1"); err != nil {
		t.Fatalf("detach: %v", err)
	}
	members, _ := repo.ContentIDs(ctx, ids[0])
	if len(members) != 0 {
		t.Errorf("content still attached after detach: %v", members)
	}
}
