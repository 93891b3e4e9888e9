package linkvault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/config"
	"github.com/linkvault/linkvault/internal/db"
	dbRedis "github.com/linkvault/linkvault/internal/db/redis"
	"github.com/linkvault/linkvault/internal/domain"
	contentrepo "github.com/linkvault/linkvault/internal/repository/content"
	searchrepo "github.com/linkvault/linkvault/internal/repository/search"
	tagrepo "github.com/linkvault/linkvault/internal/repository/tag"
	contentuc "github.com/linkvault/linkvault/internal/usecase/content"
	embeddinguc "github.com/linkvault/linkvault/internal/usecase/embedding"
	healthuc "github.com/linkvault/linkvault/internal/usecase/health"
	searchuc "github.com/linkvault/linkvault/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultVectorDimensions = 1536
)

// Internal interfaces so tests can substitute the services.
type contentUseCase interface {
	Create(ctx context.Context, ownerID string, in contentuc.CreateInput) (*domain.ContentRecord, error)
	List(ctx context.Context, ownerID string) ([]domain.ContentView, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type searchUseCase interface {
	Search(ctx context.Context, ownerID, query, rawLimit string) ([]domain.ScoredResult, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the linkvault SDK entry point.
type Client struct {
	store      db.Store
	contentSvc contentUseCase
	searchSvc  searchUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a linkvault Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("linkvault: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("linkvault: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("linkvault: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(ctx, store, cfg, obs)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	contentRepo := contentrepo.New(store)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		contentRepo = contentRepo.WithHNSW(contentrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}
	tagRepo := tagrepo.New(store)

	// Without a configured embedder the noop errors, which the soft-fail
	// layer degrades to empty vectors: records save, search finds nothing.
	var inner domain.Embedder = &noopEmbedder{}
	if cfg.embedder != nil {
		inner = &embedderAdapter{inner: cfg.embedder}
	}
	embedder := embeddinguc.NewSoftFailEmbedder(inner, zap.NewNop())

	limits := config.SearchConfig{
		DefaultLimit:     cfg.defaultLimit,
		MaxLimit:         cfg.maxLimit,
		MinScore:         cfg.minScore,
		OversampleFactor: 15,
		MinCandidatePool: 150,
	}
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = 10
	}
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = 50
	}
	if limits.MinScore <= 0 {
		limits.MinScore = 0.8
	}

	var strategy searchuc.Strategy
	if cfg.indexedSearch {
		if err := contentRepo.EnsureIndex(ctx, cfg.vectorDimensions); err != nil {
			store.Close()
			return nil, fmt.Errorf("linkvault: ensure vector index: %w", err)
		}
		strategy = searchuc.NewIndexed(searchrepo.New(store), tagRepo, limits)
	} else {
		strategy = searchuc.NewBruteForce(contentRepo)
	}

	return &Client{
		store:      store,
		contentSvc: contentuc.NewService(contentRepo, tagRepo, embedder, zap.NewNop()),
		searchSvc:  searchuc.NewService(embedder, strategy, limits, zap.NewNop()),
		healthSvc:  healthuc.New(store, nil),
		obs:        obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Content returns the content management service.
func (c *Client) Content() *ContentService {
	return &ContentService{svc: c.contentSvc, obs: c.obs}
}

// Search returns the owner's content ranked by similarity to the query.
// limit <= 0 uses the default.
func (c *Client) Search(ctx context.Context, ownerID, query string, limit int) (_ []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	rawLimit := ""
	if limit > 0 {
		rawLimit = fmt.Sprintf("%d", limit)
	}

	scored, err := c.searchSvc.Search(ctx, ownerID, query, rawLimit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(scored))
	for i, s := range scored {
		results[i] = Result{
			Content: Content{
				ID:          s.ID,
				Title:       s.Title,
				Type:        string(s.Type),
				Link:        s.Link,
				PreviewHTML: s.PreviewHTML,
				Tags:        s.Tags,
			},
			Score: s.Score,
		}
	}
	return results, nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// noopEmbedder errors on every call; the soft-fail layer above turns
// that into empty vectors.
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"linkvault: embedder not configured (use WithEmbedder for semantic search)",
	)
}
