package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrContentNotFound signals a missing content record.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidContentType signals an unknown content type value.
	ErrInvalidContentType = errors.New("invalid content type")
	// ErrEmptyQuery signals a missing or whitespace-only search query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrInvalidInput signals a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrShareNotFound signals an unknown or revoked share hash.
	ErrShareNotFound = errors.New("share link not found")
)
