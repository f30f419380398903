package discovery

import (
	"context"
	"fmt"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
	"github.com/painaidee/discovery/internal/domain/search/request"
	"github.com/painaidee/discovery/internal/domain/search/result"
	"github.com/painaidee/discovery/internal/repository/corpus"
	"github.com/painaidee/discovery/internal/repository/gazetteer"
	"github.com/painaidee/discovery/internal/repository/index"
	healthuc "github.com/painaidee/discovery/internal/usecase/health"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
	searchuc "github.com/painaidee/discovery/internal/usecase/search"
)

// Internal interfaces so tests can substitute the services.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
	Trending(language string) []string
}

type relatedUseCase interface {
	FindRelated(ctx context.Context, id string, cfg relateduc.Config) ([]result.Result, error)
}

type locationUseCase interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Location, error)
	Suggest(ctx context.Context, query string, limit int) ([]match.LocationCandidate, error)
	Nearby(ctx context.Context, centerID string, radiusKm float64, limit int) ([]locationuc.Nearby, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the embedded discovery-engine entry point. It holds an immutable
// corpus snapshot loaded at construction time; create a new Client to pick up
// corpus changes.
type Client struct {
	search    searchUseCase
	related   relatedUseCase
	locations locationUseCase
	health    healthUseCase
	obs       *observer
}

// New creates a discovery Client, loading the corpus and gazetteer files
// named by the options. WithCorpusFile and WithGazetteerFile are required.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.corpusPath == "" {
		return nil, fmt.Errorf("discovery: corpus file is required (use WithCorpusFile)")
	}
	if cfg.gazetteerPath == "" {
		return nil, fmt.Errorf("discovery: gazetteer file is required (use WithGazetteerFile)")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	snapshot, err := corpus.LoadFile(cfg.corpusPath)
	if err != nil {
		return nil, fmt.Errorf("discovery: load corpus: %w", err)
	}
	expansions, err := gazetteer.Load(cfg.gazetteerPath)
	if err != nil {
		return nil, fmt.Errorf("discovery: load gazetteer: %w", err)
	}

	scoringCfg := scoring.DefaultConfig()
	if cfg.weights != nil {
		scoringCfg.Weights = scoring.Weights{
			Semantic:   cfg.weights.Semantic,
			Popularity: cfg.weights.Popularity,
			Recency:    cfg.weights.Recency,
			Relevance:  cfg.weights.Relevance,
		}
	}

	postIndex := index.NewPostIndex(snapshot.Posts(), match.DefaultConfig())
	locationIndex := index.NewLocationIndex(snapshot.Locations(), match.DefaultLocationConfig())

	searchSvc := searchuc.New(postIndex, expansions, internalScorer(cfg.scorer), scoringCfg)
	if cfg.maxScored > 0 {
		searchSvc = searchSvc.WithMaxScored(cfg.maxScored)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		search:    searchSvc,
		related:   relateduc.New(snapshot, scoringCfg),
		locations: locationuc.New(snapshot, locationIndex, expansions),
		health:    healthuc.New(snapshot, nil),
		obs:       obs,
	}, nil
}
