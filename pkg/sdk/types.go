package discovery

import (
	"time"

	"github.com/painaidee/discovery/internal/domain"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"

	"github.com/painaidee/discovery/internal/domain/search/match"
	"github.com/painaidee/discovery/internal/domain/search/result"
)

// Author identifies the post author.
type Author struct {
	ID       string
	Name     string
	Avatar   string
	Verified bool
}

// LocationRef is the denormalized location snapshot carried by a post.
type LocationRef struct {
	Name      string
	NameLocal string
	Province  string
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Post is a content item returned by search and related queries.
type Post struct {
	ID         string
	Author     Author
	Caption    string
	Tags       []string
	LocationID string
	Location   LocationRef
	Geo        *GeoPoint
	Likes      int
	Comments   int
	Shares     int
	Views      int
	CreatedAt  time.Time
	Language   string
}

// Location is a gazetteer entry.
type Location struct {
	ID              string
	Name            string
	NameLocal       string
	Aliases         []string
	Province        string
	Region          string
	Category        string
	Tags            []string
	Geo             GeoPoint
	PopularityScore float64
	Description     string
}

// Metrics breaks a final score into its component signals.
type Metrics struct {
	Semantic   float64
	Popularity float64
	Recency    float64
	Relevance  float64
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	Post               Post
	Score              float64
	Metrics            Metrics
	MatchedTerms       []string
	HighlightedCaption string
}

// SearchResponse is the full answer to a search query.
type SearchResponse struct {
	Results          []SearchResult
	TotalCount       int
	Query            string
	ProcessingTimeMs float64
	ExpandedTerms    []string
}

// Suggestion is an auto-suggest candidate.
type Suggestion struct {
	Location     Location
	MatchedTerms []string
}

// NearbyLocation pairs a location with its distance from the query center.
type NearbyLocation struct {
	Location   Location
	DistanceKm float64
}

func postFromDomain(p domain.Post) Post {
	out := Post{
		ID:         p.ID,
		Caption:    p.Caption,
		Tags:       p.Tags,
		LocationID: p.LocationID,
		Author: Author{
			ID:       p.Author.ID,
			Name:     p.Author.Name,
			Avatar:   p.Author.Avatar,
			Verified: p.Author.Verified,
		},
		Location: LocationRef{
			Name:      p.Location.Name,
			NameLocal: p.Location.NameLocal,
			Province:  p.Location.Province,
		},
		Likes:     p.Counters.Likes,
		Comments:  p.Counters.Comments,
		Shares:    p.Counters.Shares,
		Views:     p.Counters.Views,
		CreatedAt: p.CreatedAt,
		Language:  p.Language,
	}
	if p.Geo != nil {
		out.Geo = &GeoPoint{Lat: p.Geo.Lat, Lng: p.Geo.Lng}
	}
	return out
}

func locationFromDomain(l domain.Location) Location {
	return Location{
		ID:              l.ID,
		Name:            l.Name,
		NameLocal:       l.NameLocal,
		Aliases:         l.Aliases,
		Province:        l.Province,
		Region:          l.Region,
		Category:        l.Category,
		Tags:            l.Tags,
		Geo:             GeoPoint{Lat: l.Geo.Lat, Lng: l.Geo.Lng},
		PopularityScore: l.PopularityScore,
		Description:     l.Description,
	}
}

func resultFromDomain(r *result.Result) SearchResult {
	m := r.Metrics()
	return SearchResult{
		Post:  postFromDomain(r.Post()),
		Score: m.Final,
		Metrics: Metrics{
			Semantic:   m.Semantic,
			Popularity: m.Popularity,
			Recency:    m.Recency,
			Relevance:  m.Relevance,
		},
		MatchedTerms:       r.MatchedTerms(),
		HighlightedCaption: r.HighlightedCaption(),
	}
}

func suggestionFromCandidate(c match.LocationCandidate) Suggestion {
	return Suggestion{
		Location:     locationFromDomain(c.Location),
		MatchedTerms: c.MatchedTerms,
	}
}

func nearbyFromDomain(n locationuc.Nearby) NearbyLocation {
	return NearbyLocation{
		Location:   locationFromDomain(n.Location),
		DistanceKm: n.DistanceKm,
	}
}
