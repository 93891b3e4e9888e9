package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkvault/linkvault/internal/db"
	"github.com/linkvault/linkvault/internal/domain"
)

const (
	hashKeyPrefix  = domain.KeyPrefix + "share:"
	ownerKeyPrefix = domain.KeyPrefix + "share:owner:"
)

// store is the consumer interface for share links.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo persists the bidirectional share-link mapping: hash→owner for
// resolving a visited link, owner→hash for toggling one's own link.
type Repo struct {
	store store
}

// New creates a share repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put stores both directions of the mapping.
func (r *Repo) Put(ctx context.Context, ownerID, hash string) error {
	if err := r.store.Set(ctx, hashKeyPrefix+hash, []byte(ownerID)); err != nil {
		return fmt.Errorf("store share hash: %w", err)
	}
	if err := r.store.Set(ctx, ownerKeyPrefix+ownerID, []byte(hash)); err != nil {
		return fmt.Errorf("store share owner: %w", err)
	}
	return nil
}

// OwnerByHash resolves a share hash to its owner.
func (r *Repo) OwnerByHash(ctx context.Context, hash string) (string, error) {
	v, err := r.store.Get(ctx, hashKeyPrefix+hash)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrShareNotFound
		}
		return "", fmt.Errorf("resolve share hash: %w", err)
	}
	return string(v), nil
}

// HashByOwner returns the owner's active share hash, if any.
func (r *Repo) HashByOwner(ctx context.Context, ownerID string) (string, error) {
	v, err := r.store.Get(ctx, ownerKeyPrefix+ownerID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrShareNotFound
		}
		return "", fmt.Errorf("resolve share owner: %w", err)
	}
	return string(v), nil
}

// Delete removes the owner's share link in both directions. Deleting an
// absent link is not an error.
func (r *Repo) Delete(ctx context.Context, ownerID string) error {
	hash, err := r.HashByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrShareNotFound) {
			return nil
		}
		return err
	}
	if err := r.store.Del(ctx, hashKeyPrefix+hash); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("delete share hash: %w", err)
	}
	if err := r.store.Del(ctx, ownerKeyPrefix+ownerID); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("delete share owner: %w", err)
	}
	return nil
}
