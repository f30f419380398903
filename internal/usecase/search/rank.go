package search

import (
	"fmt"
	"sort"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

// scoredCandidate pairs a fuzzy-match candidate with its computed metrics
// while it moves through the rank stage.
type scoredCandidate struct {
	candidate match.Candidate
	metrics   scoring.Metrics
}

// rank stable-sorts candidates descending by final score (ties preserve input
// order) and truncates to limit. The caller reports the pre-truncation count
// as totalCount.
func rank(candidates []scoredCandidate, limit int) ([]scoredCandidate, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}

	sorted := make([]scoredCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].metrics.Final > sorted[j].metrics.Final
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
