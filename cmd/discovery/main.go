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
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/painaidee/discovery/internal/config"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
	logpkg "github.com/painaidee/discovery/internal/logger"
	"github.com/painaidee/discovery/internal/metrics"
	"github.com/painaidee/discovery/internal/repository/corpus"
	"github.com/painaidee/discovery/internal/repository/gazetteer"
	"github.com/painaidee/discovery/internal/repository/index"
	chiTransport "github.com/painaidee/discovery/internal/transport/chi"
	openaiSim "github.com/painaidee/discovery/internal/transport/openai"
	healthuc "github.com/painaidee/discovery/internal/usecase/health"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
	searchuc "github.com/painaidee/discovery/internal/usecase/search"
	"github.com/painaidee/discovery/internal/version"
)

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

	logger.Info("Starting discovery API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_source", cfg.Corpus.Source),
	)

	// Load the corpus snapshot
	ctx := context.Background()
	snapshot, err := loadSnapshot(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	logger.Info("Corpus loaded",
		zap.Int("posts", len(snapshot.Posts())),
		zap.Int("locations", len(snapshot.Locations())),
	)

	// Load the gazetteer expansion map
	expansions, err := gazetteer.Load(cfg.Gazetteer.Path)
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}
	logger.Info("Gazetteer loaded", zap.Int("entries", len(expansions)))

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Build matchers over the immutable snapshot
	postCfg := match.DefaultConfig()
	postCfg.Threshold = cfg.Fuzzy.Threshold
	postCfg.MinMatchLength = cfg.Fuzzy.MinMatchLength
	postCfg.FieldWeights = match.FieldWeights{
		Caption:      cfg.Fuzzy.FieldWeights.Caption,
		Tags:         cfg.Fuzzy.FieldWeights.Tags,
		LocationName: cfg.Fuzzy.FieldWeights.LocationName,
		AuthorName:   cfg.Fuzzy.FieldWeights.AuthorName,
	}
	postIndex := index.NewPostIndex(snapshot.Posts(), postCfg)
	locationIndex := index.NewLocationIndex(snapshot.Locations(), match.DefaultLocationConfig())

	scoringCfg := scoring.Config{
		Weights: scoring.Weights{
			Semantic:   cfg.Scoring.Weights.Semantic,
			Popularity: cfg.Scoring.Weights.Popularity,
			Recency:    cfg.Scoring.Weights.Recency,
			Relevance:  cfg.Scoring.Weights.Relevance,
		},
		CommentAlpha:   cfg.Scoring.CommentAlpha,
		PopularityMax:  cfg.Scoring.PopularityMax,
		RecencyTauDays: cfg.Scoring.RecencyTauDays,
	}

	// Similarity scorer: keyword overlap by default, embeddings when configured.
	var scorer searchuc.SimilarityScorer = searchuc.KeywordSimilarity{}
	var similarityChecker healthuc.SimilarityChecker
	if cfg.Semantic.Mode == "embedding" {
		emb := openaiSim.NewScorer(&openaiSim.Config{
			APIKey:     cfg.Semantic.APIKey,
			BaseURL:    cfg.Semantic.BaseURL,
			Model:      cfg.Semantic.Model,
			Dimensions: cfg.Semantic.Dimensions,
			Provider:   cfg.Semantic.Provider,
			Logger:     logger,
		})
		scorer = emb
		similarityChecker = emb
		logger.Info("Embedding similarity enabled",
			zap.String("provider", cfg.Semantic.Provider),
			zap.String("model", cfg.Semantic.Model),
		)
	}

	// Create use case services
	searchSvc := searchuc.New(postIndex, expansions, scorer, scoringCfg).
		WithMaxScored(cfg.Search.MaxScoredCandidates)

	if cfg.Workers.PoolSize > 0 {
		pool, poolErr := ants.NewPool(cfg.Workers.PoolSize)
		if poolErr != nil {
			logger.Fatal("Failed to create worker pool", zap.Error(poolErr))
		}
		defer pool.Release()
		searchSvc = searchSvc.WithWorkerPool(pool)
		logger.Info("Scoring worker pool enabled", zap.Int("size", cfg.Workers.PoolSize))
	}

	relatedSvc := relateduc.New(snapshot, scoringCfg)
	locationSvc := locationuc.New(snapshot, locationIndex, expansions)
	healthSvc := healthuc.New(snapshot, similarityChecker)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, relatedSvc, locationSvc, healthSvc, logger).
		WithSearchLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit).
		WithRelatedDefaults(relateduc.Config{
			MaxResults:             cfg.Related.MaxResults,
			MinSimilarityThreshold: cfg.Related.MinSimilarityThreshold,
			WeightByPopularity:     *cfg.Related.WeightByPopularity,
			WeightByRecency:        *cfg.Related.WeightByRecency,
		})

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

// loadSnapshot reads the corpus from the configured source. The snapshot is
// immutable for the process lifetime.
func loadSnapshot(ctx context.Context, cfg config.Config, logger *zap.Logger) (*corpus.Snapshot, error) {
	switch cfg.Corpus.Source {
	case "file":
		return corpus.LoadFile(cfg.Corpus.Path)
	case "redis":
		store, err := corpus.NewStore(corpus.StoreConfig{
			Addrs:     cfg.Corpus.Redis.Addrs,
			Username:  cfg.Corpus.Redis.Username,
			Password:  cfg.Corpus.Redis.Password,
			KeyPrefix: cfg.Corpus.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create corpus store: %w", err)
		}
		defer store.Close()

		timeout := time.Duration(cfg.Corpus.Redis.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			return nil, fmt.Errorf("corpus store not ready: %w", err)
		}
		logger.Info("Connected to corpus store")

		return store.LoadSnapshot(ctx)
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}
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
						"code":    "internal_error",
						"message": "internal error",
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
