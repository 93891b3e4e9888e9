package search

import (
	contentrepo "github.com/linkvault/linkvault/internal/repository/content"
	searchrepo "github.com/linkvault/linkvault/internal/repository/search"
	tagrepo "github.com/linkvault/linkvault/internal/repository/tag"
)

// Compile-time checks: the concrete repositories satisfy the strategy
// contracts they are wired to in the composition roots.
var (
	_ ContentLister = (*contentrepo.Repo)(nil)
	_ KNNSearcher   = (*searchrepo.Repo)(nil)
	_ TagResolver   = (*tagrepo.Repo)(nil)
)
