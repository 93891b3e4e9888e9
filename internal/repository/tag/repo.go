package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/linkvault/linkvault/internal/db"
	"github.com/linkvault/linkvault/internal/domain"
)

const (
	titleKeyPrefix = domain.KeyPrefix + "tag:title:"
	tagKeyPrefix   = domain.KeyPrefix + "tag:"
)

// store is the consumer interface for tags.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SetNXGet(ctx context.Context, key string, value []byte) ([]byte, bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements tag persistence. Tags are deduplicated by title: the
// title→id mapping is written with SET NX GET, so two concurrent
// creations of the same title converge on one id without application
// locking.
type Repo struct {
	store store
}

// New creates a tag repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// UpsertByTitle resolves each title to a tag id, creating missing tags,
// and attaches contentID to every tag's membership set. The returned ids
// are in title order.
func (r *Repo) UpsertByTitle(ctx context.Context, titles []string, contentID string) ([]string, error) {
	ids := make([]string, 0, len(titles))

	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		id, err := r.upsertOne(ctx, title)
		if err != nil {
			return nil, err
		}

		if err := r.store.SAdd(ctx, membersKey(id), contentID); err != nil {
			return nil, fmt.Errorf("attach content to tag %q: %w", title, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// upsertOne claims or reads the title→id mapping in one atomic call.
func (r *Repo) upsertOne(ctx context.Context, title string) (string, error) {
	candidate := uuid.NewString()

	winner, inserted, err := r.store.SetNXGet(ctx, titleKey(title), []byte(candidate))
	if err != nil {
		return "", fmt.Errorf("upsert tag %q: %w", title, err)
	}

	id := string(winner)
	if inserted {
		// This call won the race: materialize the tag record.
		if err := r.store.HSet(ctx, tagKey(id), map[string]string{"title": title}); err != nil {
			return "", fmt.Errorf("store tag %q: %w", title, err)
		}
	}
	return id, nil
}

// ResolveTitles maps tag ids to their titles, preserving input order.
// Ids with no surviving tag record are skipped.
func (r *Repo) ResolveTitles(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = tagKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	titles := make([]string, 0, len(ids))
	for _, m := range maps {
		if title := m["title"]; title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// ContentIDs returns the members of a tag's content set.
func (r *Repo) ContentIDs(ctx context.Context, tagID string) ([]string, error) {
	members, err := r.store.SMembers(ctx, membersKey(tagID))
	if err != nil {
		return nil, fmt.Errorf("tag members %s: %w", tagID, err)
	}
	return members, nil
}

// Detach removes contentID from the given tags' membership sets. Missing
// sets are not an error.
func (r *Repo) Detach(ctx context.Context, tagIDs []string, contentID string) error {
	for _, id := range tagIDs {
		if err := r.store.SRem(ctx, membersKey(id), contentID); err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return fmt.Errorf("detach content from tag %s: %w", id, err)
		}
	}
	return nil
}

func titleKey(title string) string {
	return titleKeyPrefix + strings.ToLower(title)
}

func tagKey(id string) string {
	return tagKeyPrefix + id
}

func membersKey(id string) string {
	return tagKeyPrefix + id + ":content"
}
