package discovery

import (
	"context"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
	"github.com/painaidee/discovery/internal/domain/search/request"
	"github.com/painaidee/discovery/internal/domain/search/result"
	healthuc "github.com/painaidee/discovery/internal/usecase/health"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
)

type mockSearch struct {
	resp     result.Response
	err      error
	lastReq  *request.Request
	trending []string
}

func (m *mockSearch) Search(_ context.Context, req *request.Request) (result.Response, error) {
	m.lastReq = req
	return m.resp, m.err
}

func (m *mockSearch) Trending(string) []string { return m.trending }

type mockRelated struct {
	results []result.Result
	err     error
	lastID  string
	lastCfg relateduc.Config
}

func (m *mockRelated) FindRelated(_ context.Context, id string, cfg relateduc.Config) ([]result.Result, error) {
	m.lastID = id
	m.lastCfg = cfg
	return m.results, m.err
}

type mockLocations struct {
	searchHits  []domain.Location
	suggestions []match.LocationCandidate
	nearby      []locationuc.Nearby
	err         error
	lastQuery   string
	lastLimit   int
	lastRadius  float64
}

func (m *mockLocations) Search(_ context.Context, query string, limit int) ([]domain.Location, error) {
	m.lastQuery, m.lastLimit = query, limit
	return m.searchHits, m.err
}

func (m *mockLocations) Suggest(_ context.Context, query string, limit int) ([]match.LocationCandidate, error) {
	m.lastQuery, m.lastLimit = query, limit
	return m.suggestions, m.err
}

func (m *mockLocations) Nearby(_ context.Context, centerID string, radiusKm float64, limit int) ([]locationuc.Nearby, error) {
	m.lastQuery, m.lastRadius, m.lastLimit = centerID, radiusKm, limit
	return m.nearby, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func newMockClient(search *mockSearch, related *mockRelated, locs *mockLocations, health *mockHealth) *Client {
	return &Client{
		search:    search,
		related:   related,
		locations: locs,
		health:    health,
	}
}
