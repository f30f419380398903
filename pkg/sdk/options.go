package discovery

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpusPath    string
	gazetteerPath string

	scorer  SimilarityScorer
	weights *ScoringWeights

	maxScored int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// ScoringWeights sets the relative weight of each ranking signal.
// The four weights must sum to 1.0.
type ScoringWeights struct {
	Semantic   float64
	Popularity float64
	Recency    float64
	Relevance  float64
}

// WithCorpusFile loads posts and locations from a JSON corpus file.
func WithCorpusFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusPath = path
	})
}

// WithGazetteerFile loads the query-expansion gazetteer from a YAML file.
func WithGazetteerFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.gazetteerPath = path
	})
}

// WithSimilarity sets the semantic similarity provider. Defaults to the
// built-in keyword-overlap scorer, which needs no external service.
func WithSimilarity(s SimilarityScorer) Option {
	return optionFunc(func(c *clientConfig) {
		c.scorer = s
	})
}

// WithScoringWeights overrides the ranking weights.
// Defaults to 0.4 semantic / 0.3 popularity / 0.2 recency / 0.1 relevance.
func WithScoringWeights(w ScoringWeights) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights = &w
	})
}

// WithMaxScoredCandidates caps how many matched candidates get the full
// similarity treatment per query.
func WithMaxScoredCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxScored = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
