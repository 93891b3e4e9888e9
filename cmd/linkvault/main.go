package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/linkvault/linkvault/internal/config"
	"github.com/linkvault/linkvault/internal/db"
	dbRedis "github.com/linkvault/linkvault/internal/db/redis"
	"github.com/linkvault/linkvault/internal/domain"
	logpkg "github.com/linkvault/linkvault/internal/logger"
	"github.com/linkvault/linkvault/internal/metrics"
	contentrepo "github.com/linkvault/linkvault/internal/repository/content"
	"github.com/linkvault/linkvault/internal/repository/embcache"
	searchrepo "github.com/linkvault/linkvault/internal/repository/search"
	sharerepo "github.com/linkvault/linkvault/internal/repository/share"
	tagrepo "github.com/linkvault/linkvault/internal/repository/tag"
	chiTransport "github.com/linkvault/linkvault/internal/transport/chi"
	openaiEmb "github.com/linkvault/linkvault/internal/transport/openai"
	contentuc "github.com/linkvault/linkvault/internal/usecase/content"
	embeddinguc "github.com/linkvault/linkvault/internal/usecase/embedding"
	healthuc "github.com/linkvault/linkvault/internal/usecase/health"
	searchuc "github.com/linkvault/linkvault/internal/usecase/search"
	shareuc "github.com/linkvault/linkvault/internal/usecase/share"
	"github.com/linkvault/linkvault/internal/version"
)

// defaultVectorDim matches text-embedding-3-small output when the config
// does not pin a dimension.
const defaultVectorDim = 1536

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting linkvault API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("search_strategy", string(cfg.Search.Strategy)),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	baseEmbedder, embedder := buildEmbedder(cfg.Embedding, store, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	vectorDim := cfg.Embedding.Dimensions
	if vectorDim == 0 {
		vectorDim = defaultVectorDim
	}

	contentRepo := contentrepo.New(store).WithHNSW(contentrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	tagRepo := tagrepo.New(store)
	shareRepo := sharerepo.New(store)

	// The FT index only serves the indexed strategy; brute-force
	// deployments run on a store without the search module.
	var strategy searchuc.Strategy
	switch cfg.Search.Strategy {
	case config.StrategyBruteForce:
		strategy = searchuc.NewBruteForce(contentRepo)
	case config.StrategyIndex:
		if err := contentRepo.EnsureIndex(ctx, vectorDim); err != nil {
			logger.Fatal("Failed to ensure vector index", zap.Error(err))
		}
		strategy = searchuc.NewIndexed(searchrepo.New(store), tagRepo, cfg.Search)
	default:
		logger.Fatal("Unknown search strategy", zap.String("strategy", string(cfg.Search.Strategy)))
	}

	contentSvc := contentuc.NewService(contentRepo, tagRepo, embedder, logger)
	searchSvc := searchuc.NewService(embedder, strategy, cfg.Search, logger)
	shareSvc := shareuc.NewService(shareRepo, contentSvc)
	healthSvc := healthuc.New(store, baseEmbedder)

	server := chiTransport.NewServer(contentSvc, searchSvc, shareSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached ->
// Instrumented -> SoftFail. SoftFail sits outermost so every caller sees
// the degrade-to-empty-vector contract. The base provider is returned
// separately for health checks, which must not be softened.
func buildEmbedder(cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger) (*openaiEmb.Embedder, domain.Embedder) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Model, logger)

	return base, embeddinguc.NewSoftFailEmbedder(embedder, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
