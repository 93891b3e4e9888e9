package content

import (
	contentrepo "github.com/linkvault/linkvault/internal/repository/content"
	tagrepo "github.com/linkvault/linkvault/internal/repository/tag"
)

// Compile-time checks: the concrete repositories satisfy the service
// contracts they are wired to in the composition roots.
var (
	_ ContentRepo = (*contentrepo.Repo)(nil)
	_ TagRepo     = (*tagrepo.Repo)(nil)
)
