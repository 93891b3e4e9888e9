package domain

import (
	"math"
	"sort"
)

// Candidate pairs a content id with its stored vector for ranking.
type Candidate struct {
	ID     string
	Vector []float32
}

// Ranked is a candidate id with its similarity score against a query.
type Ranked struct {
	ID    string
	Score float64
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|) in double precision.
// Nil inputs, mismatched lengths, and zero-norm vectors are defined as
// "no similarity" and return 0 rather than an error.
func CosineSimilarity(a, b []float32) float64 {
	if a == nil || b == nil || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// RankByQuery scores every candidate against the query vector, sorts
// descending by score, and truncates to limit. The sort is stable: ties
// keep the original candidate order. A non-positive limit returns the
// full ranking.
func RankByQuery(query []float32, candidates []Candidate, limit int) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{ID: c.ID, Score: CosineSimilarity(query, c.Vector)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
