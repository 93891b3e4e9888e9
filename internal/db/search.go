package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string

	// Prefilter is an FT.SEARCH filter clause applied before KNN,
	// e.g. "@owner:{abc}". Empty means match-all.
	Prefilter string

	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
