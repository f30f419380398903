// Package location serves gazetteer lookups: fuzzy location search,
// auto-suggest, and nearby-by-distance queries.
package location

import (
	"context"
	"fmt"
	"sort"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/geo"
	"github.com/painaidee/discovery/internal/domain/search/match"
	searchuc "github.com/painaidee/discovery/internal/usecase/search"
)

// DefaultLimit is the result cap applied when a caller passes no limit.
const DefaultLimit = 10

// Nearby pairs a location with its distance from the query center.
type Nearby struct {
	Location   domain.Location
	DistanceKm float64
}

// Service answers location queries over the gazetteer snapshot.
type Service struct {
	gazetteer  GazetteerReader
	matcher    Matcher
	expansions domain.ExpansionMap
}

// New creates a location service.
func New(gazetteer GazetteerReader, matcher Matcher, expansions domain.ExpansionMap) *Service {
	return &Service{gazetteer: gazetteer, matcher: matcher, expansions: expansions}
}

// Search runs expanded fuzzy matching over locations, returning up to limit
// hits sorted descending by popularity.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("location search canceled: %w", err)
	}

	expanded := searchuc.Expand(query, s.expansions)
	candidates := s.matcher.Match(expanded)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	locations := make([]domain.Location, len(candidates))
	for i, c := range candidates {
		locations[i] = c.Location
	}
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].PopularityScore > locations[j].PopularityScore
	})
	return locations, nil
}

// Suggest is the lighter autocomplete variant: raw query only (no expansion),
// results ordered by match distance.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]match.LocationCandidate, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("suggest canceled: %w", err)
	}

	candidates := s.matcher.Match([]string{query})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Nearby returns locations strictly within radiusKm of the center location,
// ascending by distance, excluding the center itself.
func (s *Service) Nearby(ctx context.Context, centerID string, radiusKm float64, limit int) ([]Nearby, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", domain.ErrInvalidQuery, radiusKm)
	}

	center, ok := s.gazetteer.LocationByID(centerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, centerID)
	}
	if !geo.ValidCoordinates(center.Geo) {
		return nil, fmt.Errorf("%w: location %s", domain.ErrInvalidCoordinates, centerID)
	}

	var nearby []Nearby
	for _, l := range s.gazetteer.Locations() {
		if l.ID == center.ID {
			continue
		}
		d := geo.DistanceKm(center.Geo, l.Geo)
		if d >= radiusKm {
			continue
		}
		nearby = append(nearby, Nearby{Location: l, DistanceKm: d})
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("nearby lookup canceled: %w", err)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}
