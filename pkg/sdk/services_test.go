package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
	"github.com/painaidee/discovery/internal/domain/search/request"
	"github.com/painaidee/discovery/internal/domain/search/result"
	healthuc "github.com/painaidee/discovery/internal/usecase/health"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
)

func samplePost() domain.Post {
	return domain.Post{
		ID:      "post-1",
		Caption: "พระอาทิตย์ตกที่ดอยสุเทพ",
		Tags:    []string{"เชียงใหม่"},
		Author:  domain.Author{ID: "u-1", Name: "mint.travels", Verified: true},
		Location: domain.LocationRef{
			Name: "Doi Suthep", NameLocal: "ดอยสุเทพ", Province: "Chiang Mai",
		},
		Counters:  domain.Counters{Likes: 42, Comments: 7, Shares: 3, Views: 900},
		CreatedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		Public:    true,
	}
}

func TestClientSearch(t *testing.T) {
	search := &mockSearch{
		resp: result.Response{
			Results: []result.Result{
				result.New(
					samplePost(),
					scoring.Metrics{Semantic: 0.8, Popularity: 0.5, Recency: 0.9, Relevance: 1, Final: 0.75},
					[]string{"ดอยสุเทพ"},
					"พระอาทิตย์ตกที่<mark>ดอยสุเทพ</mark>",
				),
			},
			TotalCount:    1,
			Query:         "ดอยสุเทพ",
			ExpandedTerms: []string{"ดอยสุเทพ", "เชียงใหม่"},
		},
	}
	client := newMockClient(search, &mockRelated{}, &mockLocations{}, &mockHealth{})

	resp, err := client.Search(context.Background(), SearchQuery{Query: "ดอยสุเทพ"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if search.lastReq.Limit() != request.DefaultLimit {
		t.Errorf("limit = %d, want default %d", search.lastReq.Limit(), request.DefaultLimit)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Post.ID != "post-1" || r.Post.Likes != 42 || !r.Post.Author.Verified {
		t.Errorf("post conversion lost fields: %+v", r.Post)
	}
	if r.Score != 0.75 || r.Metrics.Semantic != 0.8 {
		t.Errorf("score conversion: score=%v metrics=%+v", r.Score, r.Metrics)
	}
	if r.HighlightedCaption != "พระอาทิตย์ตกที่<mark>ดอยสุเทพ</mark>" {
		t.Errorf("highlighted = %q", r.HighlightedCaption)
	}
}

func TestClientSearch_InvalidQuery(t *testing.T) {
	client := newMockClient(&mockSearch{}, &mockRelated{}, &mockLocations{}, &mockHealth{})

	_, err := client.Search(context.Background(), SearchQuery{Query: "q", Limit: -1})
	if !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("err = %v, want ErrInvalidLimit", err)
	}
}

func TestClientRelated(t *testing.T) {
	related := &mockRelated{
		results: []result.Result{
			result.New(samplePost(), scoring.Metrics{Final: 0.6}, []string{"เชียงใหม่"}, ""),
		},
	}
	client := newMockClient(&mockSearch{}, related, &mockLocations{}, &mockHealth{})

	out, err := client.Related(context.Background(), "post-0", RelatedOptions{Limit: 3, MinSimilarity: 0.5})
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if related.lastID != "post-0" {
		t.Errorf("id = %s", related.lastID)
	}
	if related.lastCfg.MaxResults != 3 || related.lastCfg.MinSimilarityThreshold != 0.5 {
		t.Errorf("cfg = %+v", related.lastCfg)
	}
	if len(out) != 1 || out[0].Score != 0.6 {
		t.Errorf("out = %+v", out)
	}
}

func TestClientRelated_Defaults(t *testing.T) {
	related := &mockRelated{}
	client := newMockClient(&mockSearch{}, related, &mockLocations{}, &mockHealth{})

	if _, err := client.Related(context.Background(), "post-0", RelatedOptions{}); err != nil {
		t.Fatalf("Related: %v", err)
	}
	want := relateduc.DefaultConfig()
	if related.lastCfg != want {
		t.Errorf("cfg = %+v, want defaults %+v", related.lastCfg, want)
	}
}

func TestClientRelated_NotFound(t *testing.T) {
	related := &mockRelated{err: domain.ErrPostNotFound}
	client := newMockClient(&mockSearch{}, related, &mockLocations{}, &mockHealth{})

	_, err := client.Related(context.Background(), "ghost", RelatedOptions{})
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}

func TestClientLocations(t *testing.T) {
	locs := &mockLocations{
		searchHits: []domain.Location{
			{ID: "doi-suthep", Name: "Doi Suthep", Province: "Chiang Mai", PopularityScore: 95},
		},
	}
	client := newMockClient(&mockSearch{}, &mockRelated{}, locs, &mockHealth{})

	out, err := client.Locations(context.Background(), "doi", 0)
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if locs.lastLimit != locationuc.DefaultLimit {
		t.Errorf("limit = %d, want default", locs.lastLimit)
	}
	if len(out) != 1 || out[0].ID != "doi-suthep" || out[0].PopularityScore != 95 {
		t.Errorf("out = %+v", out)
	}
}

func TestClientSuggest(t *testing.T) {
	locs := &mockLocations{
		suggestions: []match.LocationCandidate{
			{
				Location:     domain.Location{ID: "nimman", NameLocal: "นิมมาน"},
				MatchedTerms: []string{"นิมมาน"},
			},
		},
	}
	client := newMockClient(&mockSearch{}, &mockRelated{}, locs, &mockHealth{})

	out, err := client.Suggest(context.Background(), "นิมมาน", 5)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(out) != 1 || out[0].Location.ID != "nimman" || out[0].MatchedTerms[0] != "นิมมาน" {
		t.Errorf("out = %+v", out)
	}
}

func TestClientNearby(t *testing.T) {
	locs := &mockLocations{
		nearby: []locationuc.Nearby{
			{Location: domain.Location{ID: "nimman"}, DistanceKm: 4.8},
		},
	}
	client := newMockClient(&mockSearch{}, &mockRelated{}, locs, &mockHealth{})

	out, err := client.Nearby(context.Background(), "doi-suthep", 25, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if locs.lastQuery != "doi-suthep" || locs.lastRadius != 25 {
		t.Errorf("center = %s radius = %v", locs.lastQuery, locs.lastRadius)
	}
	if len(out) != 1 || out[0].DistanceKm != 4.8 {
		t.Errorf("out = %+v", out)
	}
}

func TestClientTrending(t *testing.T) {
	search := &mockSearch{trending: []string{"เชียงใหม่", "คาเฟ่"}}
	client := newMockClient(search, &mockRelated{}, &mockLocations{}, &mockHealth{})

	terms := client.Trending("th")
	if len(terms) != 2 || terms[0] != "เชียงใหม่" {
		t.Errorf("trending = %v", terms)
	}
}

func TestClientHealth(t *testing.T) {
	health := &mockHealth{
		report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"corpus": healthuc.CheckOK},
		},
	}
	client := newMockClient(&mockSearch{}, &mockRelated{}, &mockLocations{}, health)

	status := client.Health(context.Background())
	if status.Status != "ok" || status.Checks["corpus"] != "ok" {
		t.Errorf("status = %+v", status)
	}
}
