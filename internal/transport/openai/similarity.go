package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/metrics"
)

// Scorer scores query/post similarity with embeddings from an
// OpenAI-compatible API (e.g. Nebius). Post vectors are cached per
// post ID since the corpus snapshot is immutable for the process
// lifetime.
type Scorer struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	user       string
	provider   string
	logger     *zap.Logger

	mu    sync.Mutex
	cache map[string][]float32 // post ID -> embedding
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	User       string
	Provider   string
	Logger     *zap.Logger
}

// NewScorer creates an OpenAI-compatible similarity scorer.
func NewScorer(cfg *Config) *Scorer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Scorer{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		user:       cfg.User,
		provider:   cfg.Provider,
		logger:     cfg.Logger,
		cache:      make(map[string][]float32),
	}
}

// Score implements the search similarity contract: cosine similarity between
// the expanded query and the post text, mapped into [0, 1].
func (s *Scorer) Score(ctx context.Context, post domain.Post, query string, expandedTerms []string) (float64, error) {
	queryText := query
	if len(expandedTerms) > 0 {
		queryText = strings.Join(expandedTerms, " ")
	}

	queryVec, err := s.embed(ctx, queryText)
	if err != nil {
		return 0, err
	}

	postVec, err := s.postVector(ctx, post)
	if err != nil {
		return 0, err
	}

	// Cosine lands in [-1, 1]; shift into [0, 1] so the score composes
	// with the other ranking signals.
	return (cosine(queryVec, postVec) + 1) / 2, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (s *Scorer) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (s *Scorer) postVector(ctx context.Context, post domain.Post) ([]float32, error) {
	s.mu.Lock()
	vec, ok := s.cache[post.ID]
	s.mu.Unlock()
	if ok {
		return vec, nil
	}

	vec, err := s.embed(ctx, postText(post))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[post.ID] = vec
	s.mu.Unlock()

	return vec, nil
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          s.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		User:           s.user,
	}
	if s.dimensions > 0 {
		req.Dimensions = s.dimensions
	}

	start := time.Now()

	resp, err := s.client.CreateEmbeddings(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.SimilarityRequestsTotal.WithLabelValues(s.provider, string(s.model), "error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Data) == 0 {
		metrics.SimilarityRequestsTotal.WithLabelValues(s.provider, string(s.model), "error").Inc()
		return nil, fmt.Errorf("empty embedding response: %w", domain.ErrSimilarityProviderError)
	}

	metrics.SimilarityRequestsTotal.WithLabelValues(s.provider, string(s.model), "success").Inc()
	metrics.SimilarityRequestDuration.WithLabelValues(s.provider, string(s.model)).Observe(duration.Seconds())

	return resp.Data[0].Embedding, nil
}

// postText assembles the text the post is embedded from.
func postText(post domain.Post) string {
	parts := []string{post.Caption}
	if len(post.Tags) > 0 {
		parts = append(parts, strings.Join(post.Tags, " "))
	}
	if post.Location.Name != "" {
		parts = append(parts, post.Location.Name)
	}
	if post.Location.NameLocal != "" {
		parts = append(parts, post.Location.NameLocal)
	}
	return strings.Join(parts, "\n")
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrSimilarityProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrSimilarityProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("embedding API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("embedding request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
