package domain

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCosineSimilarity_Identical(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}
	got := CosineSimilarity(v, v)
	if !almostEqual(got, 1.0) {
		t.Errorf("cosine(v, v) = %v, want 1.0", got)
	}
}

func TestCosineSimilarity_ScalarMultiples(t *testing.T) {
	v := []float32{1, 2, 3}
	pos := []float32{2.5, 5, 7.5}
	neg := []float32{-1, -2, -3}

	if got := CosineSimilarity(v, pos); !almostEqual(got, 1.0) {
		t.Errorf("cosine(v, 2.5v) = %v, want 1.0", got)
	}
	if got := CosineSimilarity(v, neg); !almostEqual(got, -1.0) {
		t.Errorf("cosine(v, -v) = %v, want -1.0", got)
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); !almostEqual(got, 0) {
		t.Errorf("cosine of orthogonal vectors = %v, want 0", got)
	}
}

func TestCosineSimilarity_NoSimilarityCases(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"nil a", nil, []float32{1, 2}},
		{"nil b", []float32{1, 2}, nil},
		{"both nil", nil, nil},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}},
		{"zero vector a", []float32{0, 0}, []float32{1, 2}},
		{"zero vector b", []float32{1, 2}, []float32{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("got %v, want exactly 0", got)
			}
		})
	}
}

func TestRankByQuery_SortedDescending(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "low", Vector: []float32{0, 1}},
		{ID: "high", Vector: []float32{1, 0}},
		{ID: "mid", Vector: []float32{1, 1}},
	}

	ranked := RankByQuery(query, candidates, 10)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].ID, want)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}

func TestRankByQuery_StableTies(t *testing.T) {
	query := []float32{1, 0}
	// All candidates identical to the query: every score ties at 1.0.
	candidates := []Candidate{
		{ID: "first", Vector: []float32{1, 0}},
		{ID: "second", Vector: []float32{2, 0}},
		{ID: "third", Vector: []float32{3, 0}},
	}

	ranked := RankByQuery(query, candidates, 10)
	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("tie order broken at %d: got %s, want %s", i, ranked[i].ID, want)
		}
	}
}

func TestRankByQuery_Truncates(t *testing.T) {
	query := []float32{1, 1}
	candidates := make([]Candidate, 5)
	for i := range candidates {
		candidates[i] = Candidate{ID: string(rune('a' + i)), Vector: []float32{1, 1}}
	}

	if got := RankByQuery(query, candidates, 2); len(got) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(got))
	}
	if got := RankByQuery(query, candidates, 0); len(got) != 5 {
		t.Errorf("non-positive limit should return all, got %d", len(got))
	}
}

func TestRankByQuery_EmptyCandidates(t *testing.T) {
	if got := RankByQuery([]float32{1}, nil, 10); len(got) != 0 {
		t.Errorf("expected empty ranking, got %d", len(got))
	}
}

func TestParseContentType(t *testing.T) {
	for _, valid := range []string{"image", "video", "pdf", "article", "audio"} {
		if _, err := ParseContentType(valid); err != nil {
			t.Errorf("ParseContentType(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseContentType("podcast"); err == nil {
		t.Error("ParseContentType(podcast) expected error")
	}
}
