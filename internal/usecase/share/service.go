package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/linkvault/linkvault/internal/domain"
)

// ShareRepo persists the hash↔owner mapping.
type ShareRepo interface {
	Put(ctx context.Context, ownerID, hash string) error
	OwnerByHash(ctx context.Context, hash string) (string, error)
	HashByOwner(ctx context.Context, ownerID string) (string, error)
	Delete(ctx context.Context, ownerID string) error
}

// ContentLister lists an owner's content with tags resolved, used when a
// visitor opens a share link.
type ContentLister interface {
	List(ctx context.Context, ownerID string) ([]domain.ContentView, error)
}

// Service manages public share links for an owner's archive.
type Service struct {
	shares   ShareRepo
	contents ContentLister
}

// NewService creates the share service.
func NewService(shares ShareRepo, contents ContentLister) *Service {
	return &Service{shares: shares, contents: contents}
}

// Enable publishes a share link for the owner and returns its hash.
// Enabling twice returns the existing hash rather than rotating it.
func (s *Service) Enable(ctx context.Context, ownerID string) (string, error) {
	existing, err := s.shares.HashByOwner(ctx, ownerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrShareNotFound) {
		return "", fmt.Errorf("look up share: %w", err)
	}

	hash := uuid.NewString()
	if err := s.shares.Put(ctx, ownerID, hash); err != nil {
		return "", fmt.Errorf("publish share: %w", err)
	}
	return hash, nil
}

// Disable removes the owner's share link. Disabling an absent link is a
// no-op.
func (s *Service) Disable(ctx context.Context, ownerID string) error {
	return s.shares.Delete(ctx, ownerID)
}

// Resolve returns the shared owner's content for a visited hash.
func (s *Service) Resolve(ctx context.Context, hash string) ([]domain.ContentView, error) {
	ownerID, err := s.shares.OwnerByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return s.contents.List(ctx, ownerID)
}
