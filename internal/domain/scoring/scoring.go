// Package scoring holds the pure ranking-signal functions. Every function is
// deterministic over its inputs and returns values in [0,1], which the
// combination step relies on.
package scoring

import (
	"math"
	"time"

	"github.com/painaidee/discovery/internal/domain"
)

// Default calibration constants. Popularity normalization tracks platform
// scale and needs periodic recalibration.
const (
	DefaultCommentAlpha   = 2.0
	DefaultPopularityMax  = 3000.0
	DefaultRecencyTauDays = 30.0
)

// Weights is the fixed linear combination applied to the four subscores.
// The weights must sum to 1.0 so the final score stays in [0,1].
type Weights struct {
	Semantic   float64
	Popularity float64
	Recency    float64
	Relevance  float64
}

// DefaultWeights returns the production ranking weights.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.4, Popularity: 0.3, Recency: 0.2, Relevance: 0.1}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Popularity + w.Recency + w.Relevance
}

// Config bundles the tunable scoring constants.
type Config struct {
	Weights        Weights
	CommentAlpha   float64
	PopularityMax  float64
	RecencyTauDays float64
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:        DefaultWeights(),
		CommentAlpha:   DefaultCommentAlpha,
		PopularityMax:  DefaultPopularityMax,
		RecencyTauDays: DefaultRecencyTauDays,
	}
}

// Metrics holds the per-candidate subscores and their weighted combination.
// Computed fresh per query, never persisted.
type Metrics struct {
	Relevance  float64
	Popularity float64
	Recency    float64
	Semantic   float64
	Final      float64
}

// Relevance converts a normalized fuzzy-match distance (0 = perfect) into a
// [0,1] relevance subscore.
func Relevance(matchDistance float64) float64 {
	return clamp01(1 - matchDistance)
}

// Popularity normalizes engagement counts: min((likes + alpha*comments)/max, 1).
func (c Config) Popularity(p domain.Post) float64 {
	raw := float64(p.Counters.Likes) + c.CommentAlpha*float64(p.Counters.Comments)
	return clamp01(raw / c.PopularityMax)
}

// Recency applies exponential decay exp(-ageDays/tau) relative to now.
// A zero CreatedAt (unparseable timestamp at ingest) scores 0 rather than
// failing the candidate.
func (c Config) Recency(p domain.Post, now time.Time) float64 {
	if p.CreatedAt.IsZero() {
		return 0
	}
	ageDays := now.Sub(p.CreatedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return clamp01(math.Exp(-ageDays / c.RecencyTauDays))
}

// Combine computes the weighted final score and returns the completed metrics.
func (c Config) Combine(m Metrics) Metrics {
	m.Final = c.Weights.Semantic*m.Semantic +
		c.Weights.Popularity*m.Popularity +
		c.Weights.Recency*m.Recency +
		c.Weights.Relevance*m.Relevance
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
