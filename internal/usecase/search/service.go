package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
	"github.com/painaidee/discovery/internal/domain/search/request"
	"github.com/painaidee/discovery/internal/domain/search/result"
	"github.com/painaidee/discovery/internal/logger"
	"github.com/painaidee/discovery/internal/metrics"

	"github.com/painaidee/discovery/internal/domain"
)

// DefaultMaxScored caps how many best-distance candidates are scored per
// query. totalCount still reflects every fuzzy match.
const DefaultMaxScored = 50

// Service runs the contextual search pipeline: expand, match, score, rank,
// highlight. Every query is an independent stateless computation over the
// immutable corpus snapshot.
type Service struct {
	matcher    Matcher
	expansions domain.ExpansionMap
	scorer     SimilarityScorer
	fallback   SimilarityScorer
	scoring    scoring.Config
	maxScored  int
	pool       *ants.Pool
	now        func() time.Time
}

// New creates a search service. scorer is the semantic similarity
// implementation; keyword overlap is always kept as the degradation fallback.
func New(
	matcher Matcher,
	expansions domain.ExpansionMap,
	scorer SimilarityScorer,
	scoringCfg scoring.Config,
) *Service {
	return &Service{
		matcher:    matcher,
		expansions: expansions,
		scorer:     scorer,
		fallback:   KeywordSimilarity{},
		scoring:    scoringCfg,
		maxScored:  DefaultMaxScored,
		now:        time.Now,
	}
}

// WithWorkerPool runs per-candidate scoring on the shared pool instead of
// inline. Result order stays deterministic: workers write to fixed slice
// positions.
func (s *Service) WithWorkerPool(pool *ants.Pool) *Service {
	s.pool = pool
	return s
}

// WithMaxScored overrides the per-query scoring cap.
func (s *Service) WithMaxScored(n int) *Service {
	if n > 0 {
		s.maxScored = n
	}
	return s
}

// Search executes one contextual search. An empty query returns a
// deterministic empty response rather than an error.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	start := time.Now()

	if req.IsEmpty() {
		metrics.SearchQueriesTotal.WithLabelValues("search", "empty").Inc()
		return result.Response{
			Results:          []result.Result{},
			Query:            req.Query(),
			ExpandedTerms:    []string{},
			ProcessingTimeMs: sinceMs(start),
		}, nil
	}

	expanded := Expand(req.Query(), s.expansions)
	metrics.SearchExpansionTerms.Observe(float64(len(expanded)))

	candidates := s.matcher.Match(expanded)
	total := len(candidates)
	metrics.SearchCandidates.Observe(float64(total))

	// Score only the best-distance candidates; the matcher returns them
	// sorted ascending, so truncation keeps the strongest matches.
	scoreCap := req.Limit() * 2
	if scoreCap > s.maxScored {
		scoreCap = s.maxScored
	}
	if len(candidates) > scoreCap {
		candidates = candidates[:scoreCap]
	}

	scored := s.scoreCandidates(ctx, candidates, req.Query(), expanded)

	// Partial work is discardable; honor cancellation before the final sort.
	if err := ctx.Err(); err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("search", "canceled").Inc()
		return result.Response{}, fmt.Errorf("search canceled: %w", err)
	}

	scored = applyFilters(scored, req.Filters())

	ranked, err := rank(scored, req.Limit())
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("search", "error").Inc()
		return result.Response{}, err
	}

	results := make([]result.Result, len(ranked))
	for i, sc := range ranked {
		results[i] = result.New(
			sc.candidate.Post,
			sc.metrics,
			sc.candidate.MatchedTerms,
			Highlight(sc.candidate.Post.Caption, sc.candidate.MatchedTerms),
		)
	}

	metrics.SearchQueriesTotal.WithLabelValues("search", "ok").Inc()
	metrics.SearchDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	return result.Response{
		Results:          results,
		TotalCount:       total,
		Query:            req.Query(),
		ProcessingTimeMs: sinceMs(start),
		ExpandedTerms:    expanded,
	}, nil
}

// scoreCandidates computes metrics for each candidate, on the worker pool when
// one is attached. now is sampled once so every candidate in a query decays
// against the same instant.
func (s *Service) scoreCandidates(
	ctx context.Context, candidates []match.Candidate, query string, expanded []string,
) []scoredCandidate {
	out := make([]scoredCandidate, len(candidates))
	now := s.now()

	if s.pool == nil || len(candidates) < 2 {
		for i, c := range candidates {
			out[i] = s.scoreOne(ctx, c, query, expanded, now)
		}
		return out
	}

	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		i := i
		task := func() {
			defer wg.Done()
			out[i] = s.scoreOne(ctx, candidates[i], query, expanded, now)
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool exhausted or released: score inline rather than dropping.
			task()
		}
	}
	wg.Wait()
	return out
}

func (s *Service) scoreOne(
	ctx context.Context, c match.Candidate, query string, expanded []string, now time.Time,
) scoredCandidate {
	m := scoring.Metrics{
		Relevance:  scoring.Relevance(c.Distance),
		Popularity: s.scoring.Popularity(c.Post),
		Recency:    s.scoring.Recency(c.Post, now),
	}

	semantic, err := s.scorer.Score(ctx, c.Post, query, expanded)
	if err != nil {
		logger.FromContext(ctx).Warn("semantic scoring failed, using keyword fallback",
			zap.String("post_id", c.Post.ID),
			zap.Error(err),
		)
		semantic, _ = s.fallback.Score(ctx, c.Post, query, expanded)
	}
	m.Semantic = semantic

	return scoredCandidate{candidate: c, metrics: s.scoring.Combine(m)}
}

// applyFilters narrows candidates by request filters. Only the province filter
// constrains posts; category and amenity filters apply to gazetteer entries
// and pass posts through unchanged.
func applyFilters(candidates []scoredCandidate, f request.Filters) []scoredCandidate {
	if len(f.Provinces) == 0 {
		return candidates
	}

	out := candidates[:0:0]
	for _, sc := range candidates {
		if provinceMatches(sc.candidate.Post.Location.Province, f.Provinces) {
			out = append(out, sc)
		}
	}
	return out
}

func provinceMatches(province string, wanted []string) bool {
	lower := strings.ToLower(province)
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// trendingTerms are the curated trending searches per language.
var trendingTerms = map[string][]string{
	request.LanguageThai:    {"เกาะพีพี", "ดอยสุเทพ", "วัดพระแก้ว", "ตลาดน้ำ", "เชียงใหม่", "กระบี่"},
	request.LanguageEnglish: {"Phi Phi Islands", "Doi Suthep", "Grand Palace", "Floating Market", "Chiang Mai", "Krabi"},
}

// Trending returns the trending search terms for a language, defaulting to
// Thai for unknown tags.
func (s *Service) Trending(language string) []string {
	if terms, ok := trendingTerms[language]; ok {
		return terms
	}
	return trendingTerms[request.LanguageThai]
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
