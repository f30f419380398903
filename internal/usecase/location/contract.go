package location

import (
	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

// GazetteerReader provides the immutable location snapshot.
type GazetteerReader interface {
	Locations() []domain.Location
	LocationByID(id string) (domain.Location, bool)
}

// Matcher finds approximate location matches for a set of query terms.
type Matcher interface {
	Match(terms []string) []match.LocationCandidate
}
