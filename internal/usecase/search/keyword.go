package search

import (
	"context"
	"strings"

	"github.com/painaidee/discovery/internal/domain"
)

// KeywordSimilarity is the keyword-overlap stand-in for embedding similarity:
// the fraction of expanded terms found as case-insensitive substrings in the
// candidate's caption, tags, and location name. Pure and never errors.
type KeywordSimilarity struct{}

// Score implements SimilarityScorer.
func (KeywordSimilarity) Score(
	_ context.Context, post domain.Post, _ string, expandedTerms []string,
) (float64, error) {
	if len(expandedTerms) == 0 {
		return 0, nil
	}

	content := strings.ToLower(
		post.Caption + " " + strings.Join(post.Tags, " ") + " " + post.Location.Name,
	)

	matches := 0
	for _, term := range expandedTerms {
		if term == "" {
			continue
		}
		if strings.Contains(content, strings.ToLower(term)) {
			matches++
		}
	}

	score := float64(matches) / float64(len(expandedTerms))
	if score > 1 {
		score = 1
	}
	return score, nil
}
