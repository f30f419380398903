// Package result defines ranked search output value objects.
package result

import (
	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
)

// Result is a single ranked hit: the post plus its per-query metrics, the
// matched substrings, and the caption with match markup applied.
type Result struct {
	post               domain.Post
	metrics            scoring.Metrics
	matchedTerms       []string
	highlightedCaption string
}

// New creates a search result.
func New(post domain.Post, metrics scoring.Metrics, matchedTerms []string, highlightedCaption string) Result {
	return Result{
		post:               post,
		metrics:            metrics,
		matchedTerms:       matchedTerms,
		highlightedCaption: highlightedCaption,
	}
}

// Post returns the underlying corpus post.
func (r *Result) Post() domain.Post { return r.post }

// Metrics returns the per-query search metrics.
func (r *Result) Metrics() scoring.Metrics { return r.metrics }

// MatchedTerms returns the substrings that triggered the match.
func (r *Result) MatchedTerms() []string { return r.matchedTerms }

// HighlightedCaption returns the caption with match markup applied.
func (r *Result) HighlightedCaption() string { return r.highlightedCaption }

// Response is the full answer to one search call. TotalCount reflects all
// pre-truncation candidates, not the returned page size.
type Response struct {
	Results          []Result
	TotalCount       int
	Query            string
	ProcessingTimeMs float64
	ExpandedTerms    []string
}
