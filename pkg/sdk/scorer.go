package discovery

import (
	"context"

	"github.com/painaidee/discovery/internal/domain"
	searchuc "github.com/painaidee/discovery/internal/usecase/search"
)

// SimilarityScorer rates how semantically close a post is to a query.
// Scores must fall in [0, 1]. The engine falls back to keyword overlap
// when a scorer returns an error.
type SimilarityScorer interface {
	Score(ctx context.Context, post Post, query string, expandedTerms []string) (float64, error)
}

// scorerAdapter bridges the exported scorer interface to the engine's.
type scorerAdapter struct {
	scorer SimilarityScorer
}

func (a scorerAdapter) Score(
	ctx context.Context, post domain.Post, query string, expandedTerms []string,
) (float64, error) {
	return a.scorer.Score(ctx, postFromDomain(post), query, expandedTerms)
}

// internalScorer picks the engine-side scorer for the configured option.
func internalScorer(s SimilarityScorer) searchuc.SimilarityScorer {
	if s == nil {
		return searchuc.KeywordSimilarity{}
	}
	return scorerAdapter{scorer: s}
}
