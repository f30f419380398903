package search

import (
	"context"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

// Matcher finds approximate post matches for a set of query terms.
type Matcher interface {
	Match(terms []string) []match.Candidate
}

// SimilarityScorer computes the semantic subscore for one candidate.
// Implementations must return values in [0,1] and be deterministic over their
// inputs; the keyword-overlap implementation is the default, with embedding
// similarity as a drop-in replacement.
type SimilarityScorer interface {
	Score(ctx context.Context, post domain.Post, query string, expandedTerms []string) (float64, error)
}
