package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/linkvault/linkvault/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(string(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// SetNXGet runs SET key value NX GET: one round-trip that inserts when the
// key is absent and reports the pre-existing value otherwise. Concurrent
// writers for the same key all observe the same winning value.
func (s *Store) SetNXGet(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	cmd := s.b().Arbitrary("SET").Keys(key).Args(string(value), "NX", "GET").Build()
	prev, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			// No previous value: this call inserted.
			return value, true, nil
		}
		return nil, false, &db.Error{Op: db.OpSet, Err: err}
	}
	return prev, false, nil
}
