package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkvault/linkvault/internal/db"
	"github.com/linkvault/linkvault/internal/domain"
)

// IndexName is the FT index covering content hashes.
const IndexName = domain.KeyPrefix + "content:idx"

const keyPrefix = domain.KeyPrefix + "content:"

// store is the consumer interface for content records.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig carries index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements content persistence over hash keys.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// WithHNSW sets HNSW build parameters for EnsureIndex.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the vector index over content hashes if it does
// not exist yet. dim fixes the embedding dimensionality for the life of
// the index.
func (r *Repo) EnsureIndex(ctx context.Context, dim int) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     IndexName,
		Prefixes: []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: "owner", Type: db.IndexFieldTag},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Create persists a content record.
func (r *Repo) Create(ctx context.Context, rec *domain.ContentRecord) error {
	if err := r.store.HSet(ctx, contentKey(rec.ID), buildHashFields(rec)); err != nil {
		return fmt.Errorf("hset %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns a content record by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.ContentRecord, error) {
	m, err := r.store.HGetAll(ctx, contentKey(id))
	if err != nil {
		return domain.ContentRecord{}, fmt.Errorf("hgetall %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.ContentRecord{}, domain.ErrContentNotFound
	}
	return parseHashFields(id, m), nil
}

// GetMulti returns the records for the given ids, skipping ids that no
// longer exist. Order follows the input ids.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domain.ContentRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = contentKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	records := make([]domain.ContentRecord, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		records = append(records, parseHashFields(ids[i], m))
	}
	return records, nil
}

// ListByOwner returns every content record of one owner, vectors
// included. Backs the brute-force search strategy and the listing
// endpoint; a full key scan is the deliberate no-index path.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ContentRecord, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan content keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	var records []domain.ContentRecord
	for i, m := range maps {
		if len(m) == 0 || m["owner"] != ownerID {
			continue
		}
		records = append(records, parseHashFields(extractID(keys[i]), m))
	}
	return records, nil
}

// Delete removes a content record owned by ownerID. Returns the deleted
// record so the caller can detach its tags.
func (r *Repo) Delete(ctx context.Context, ownerID, id string) (*domain.ContentRecord, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != ownerID {
		return nil, domain.ErrContentNotFound
	}

	if err := r.store.Del(ctx, contentKey(id)); err != nil {
		return nil, fmt.Errorf("del %s: %w", id, err)
	}
	return &rec, nil
}

func contentKey(id string) string {
	return keyPrefix + id
}

func extractID(key string) string {
	if len(key) > len(keyPrefix) {
		return key[len(keyPrefix):]
	}
	return key
}
