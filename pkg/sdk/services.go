package discovery

import (
	"context"
	"time"

	"github.com/painaidee/discovery/internal/domain/search/request"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
)

// SearchQuery describes a search request. Zero values get the engine
// defaults: auto language detection and the default result limit.
type SearchQuery struct {
	Query     string
	Language  string
	Limit     int
	Provinces []string
}

// RelatedOptions tunes a related-posts lookup. Zero values get the engine
// defaults.
type RelatedOptions struct {
	Limit         int
	MinSimilarity float64
}

// Search runs the full discovery pipeline: gazetteer expansion, fuzzy
// matching, multi-signal scoring, and ranking.
func (c *Client) Search(ctx context.Context, q SearchQuery) (SearchResponse, error) {
	start := time.Now()

	limit := q.Limit
	if limit == 0 {
		limit = request.DefaultLimit
	}
	req, err := request.New(q.Query, q.Language, limit, request.Filters{Provinces: q.Provinces})
	if err != nil {
		c.obs.observe("search", start, err)
		return SearchResponse{}, err
	}

	resp, err := c.search.Search(ctx, &req)
	c.obs.observe("search", start, err)
	if err != nil {
		return SearchResponse{}, err
	}

	results := make([]SearchResult, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultFromDomain(&resp.Results[i])
	}
	return SearchResponse{
		Results:          results,
		TotalCount:       resp.TotalCount,
		Query:            resp.Query,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		ExpandedTerms:    resp.ExpandedTerms,
	}, nil
}

// Related returns posts similar to the given post, the source excluded.
func (c *Client) Related(ctx context.Context, postID string, opts RelatedOptions) ([]SearchResult, error) {
	start := time.Now()

	cfg := relateduc.DefaultConfig()
	if opts.Limit > 0 {
		cfg.MaxResults = opts.Limit
	}
	if opts.MinSimilarity > 0 {
		cfg.MinSimilarityThreshold = opts.MinSimilarity
	}

	results, err := c.related.FindRelated(ctx, postID, cfg)
	c.obs.observe("related", start, err)
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, len(results))
	for i := range results {
		out[i] = resultFromDomain(&results[i])
	}
	return out, nil
}

// Locations runs expanded fuzzy matching over the gazetteer, most popular
// first.
func (c *Client) Locations(ctx context.Context, query string, limit int) ([]Location, error) {
	start := time.Now()

	if limit <= 0 {
		limit = locationuc.DefaultLimit
	}
	hits, err := c.locations.Search(ctx, query, limit)
	c.obs.observe("locations", start, err)
	if err != nil {
		return nil, err
	}

	out := make([]Location, len(hits))
	for i, l := range hits {
		out[i] = locationFromDomain(l)
	}
	return out, nil
}

// Suggest returns auto-suggest candidates for a raw query prefix, best match
// first. No gazetteer expansion is applied.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	start := time.Now()

	if limit <= 0 {
		limit = locationuc.DefaultLimit
	}
	candidates, err := c.locations.Suggest(ctx, query, limit)
	c.obs.observe("suggest", start, err)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, len(candidates))
	for i, cand := range candidates {
		out[i] = suggestionFromCandidate(cand)
	}
	return out, nil
}

// Nearby returns gazetteer locations strictly within radiusKm of the center
// location, nearest first.
func (c *Client) Nearby(ctx context.Context, centerID string, radiusKm float64, limit int) ([]NearbyLocation, error) {
	start := time.Now()

	if limit <= 0 {
		limit = locationuc.DefaultLimit
	}
	hits, err := c.locations.Nearby(ctx, centerID, radiusKm, limit)
	c.obs.observe("nearby", start, err)
	if err != nil {
		return nil, err
	}

	out := make([]NearbyLocation, len(hits))
	for i, n := range hits {
		out[i] = nearbyFromDomain(n)
	}
	return out, nil
}

// Trending returns the curated trending terms for a language ("th" or
// "en"; unknown tags get the Thai list).
func (c *Client) Trending(language string) []string {
	return c.search.Trending(language)
}
