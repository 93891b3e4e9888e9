package linkvault

import "github.com/linkvault/linkvault/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrContentNotFound        = domain.ErrContentNotFound
	ErrInvalidContentType     = domain.ErrInvalidContentType
	ErrInvalidInput           = domain.ErrInvalidInput
	ErrEmptyQuery             = domain.ErrEmptyQuery
	ErrShareNotFound          = domain.ErrShareNotFound
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
