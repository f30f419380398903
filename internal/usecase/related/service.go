// Package related finds items similar to a source post by attribute overlap
// (location, tags, author) rather than query matching.
package related

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/result"
)

// Similarity contribution weights.
const (
	sameLocationBonus = 0.5
	sameProvinceBonus = 0.3
	tagOverlapWeight  = 0.3
	sameAuthorBonus   = 0.2

	popularityBoost = 0.2
	recencyBoost    = 0.1
)

// Config tunes one related-items lookup.
type Config struct {
	MaxResults             int
	MinSimilarityThreshold float64
	WeightByPopularity     bool
	WeightByRecency        bool
}

// DefaultConfig returns the production related-items configuration.
func DefaultConfig() Config {
	return Config{
		MaxResults:             4,
		MinSimilarityThreshold: 0.3,
		WeightByPopularity:     true,
		WeightByRecency:        true,
	}
}

// Service computes related posts over the corpus snapshot.
type Service struct {
	corpus  CorpusReader
	scoring scoring.Config
	now     func() time.Time
}

// New creates a related-items service.
func New(corpus CorpusReader, scoringCfg scoring.Config) *Service {
	return &Service{corpus: corpus, scoring: scoringCfg, now: time.Now}
}

// FindRelated returns posts similar to the post with the given id, never
// including the source itself. Candidates whose base similarity falls below
// the threshold are dropped (equality passes); the survivors are sorted
// descending by the popularity/recency-weighted score and truncated.
func (s *Service) FindRelated(ctx context.Context, sourceID string, cfg Config) ([]result.Result, error) {
	source, ok := s.corpus.PostByID(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, sourceID)
	}
	return s.FindRelatedTo(ctx, source, cfg)
}

// FindRelatedTo is FindRelated for an already-resolved source post.
func (s *Service) FindRelatedTo(ctx context.Context, source domain.Post, cfg Config) ([]result.Result, error) {
	if cfg.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, cfg.MaxResults)
	}

	now := s.now()
	var scored []result.Result

	for _, post := range s.corpus.Posts() {
		if post.ID == source.ID {
			continue
		}

		base, commonTags := s.baseSimilarity(source, post)
		if base < cfg.MinSimilarityThreshold {
			continue
		}

		popularity := s.scoring.Popularity(post)
		recency := s.scoring.Recency(post, now)

		final := base
		if cfg.WeightByPopularity {
			final *= 1 + popularity*popularityBoost
		}
		if cfg.WeightByRecency {
			final *= 1 + recency*recencyBoost
		}

		metrics := scoring.Metrics{
			Relevance:  base,
			Popularity: popularity,
			Recency:    recency,
			Final:      final,
		}
		scored = append(scored, result.New(post, metrics, commonTags, post.Caption))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("related lookup canceled: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Metrics().Final > scored[j].Metrics().Final
	})
	if len(scored) > cfg.MaxResults {
		scored = scored[:cfg.MaxResults]
	}
	return scored, nil
}

// baseSimilarity computes attribute-overlap similarity between two posts and
// returns the tags they share. A locationId that is absent or unknown to the
// gazetteer degrades to the province comparison instead of failing the
// candidate.
func (s *Service) baseSimilarity(source, post domain.Post) (float64, []string) {
	sim := 0.0

	switch {
	case post.LocationID != "" && post.LocationID == source.LocationID && s.knownLocation(post.LocationID):
		sim += sameLocationBonus
	case post.Location.Province != "" && post.Location.Province == source.Location.Province:
		sim += sameProvinceBonus
	}

	commonTags := sharedTags(source.Tags, post.Tags)
	if longest := maxLen(len(source.Tags), len(post.Tags)); longest > 0 {
		sim += tagOverlapWeight * float64(len(commonTags)) / float64(longest)
	}

	if post.Author.ID != "" && post.Author.ID == source.Author.ID {
		sim += sameAuthorBonus
	}

	return sim, commonTags
}

func (s *Service) knownLocation(id string) bool {
	_, ok := s.corpus.LocationByID(id)
	return ok
}

func sharedTags(a, b []string) []string {
	var common []string
	for _, tb := range b {
		for _, ta := range a {
			if strings.EqualFold(ta, tb) {
				common = append(common, tb)
				break
			}
		}
	}
	return common
}

func maxLen(a, b int) int {
	if a > b {
		return a
	}
	return b
}
