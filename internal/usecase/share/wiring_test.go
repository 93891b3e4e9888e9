package share

import (
	sharerepo "github.com/linkvault/linkvault/internal/repository/share"
)

// Compile-time check: the concrete repository satisfies the service
// contract it is wired to in the composition roots.
var _ ShareRepo = (*sharerepo.Repo)(nil)
