// Package corpus loads the read-only post/location snapshot the engine
// searches over. A snapshot is built once at process start and immutable
// thereafter; a separate ingestion pipeline owns refresh.
package corpus

import "github.com/painaidee/discovery/internal/domain"

// Snapshot is an immutable in-memory corpus. Safe for concurrent reads.
type Snapshot struct {
	posts         []domain.Post
	locations     []domain.Location
	postsByID     map[string]int
	locationsByID map[string]int
}

// NewSnapshot builds a snapshot with ID lookup indexes. Input slices are not
// copied; callers must not mutate them afterwards.
func NewSnapshot(posts []domain.Post, locations []domain.Location) *Snapshot {
	s := &Snapshot{
		posts:         posts,
		locations:     locations,
		postsByID:     make(map[string]int, len(posts)),
		locationsByID: make(map[string]int, len(locations)),
	}
	for i, p := range posts {
		s.postsByID[p.ID] = i
	}
	for i, l := range locations {
		s.locationsByID[l.ID] = i
	}
	return s
}

// Posts returns all posts in corpus order.
func (s *Snapshot) Posts() []domain.Post { return s.posts }

// Locations returns all gazetteer locations in corpus order.
func (s *Snapshot) Locations() []domain.Location { return s.locations }

// PostByID looks up a post by identifier.
func (s *Snapshot) PostByID(id string) (domain.Post, bool) {
	i, ok := s.postsByID[id]
	if !ok {
		return domain.Post{}, false
	}
	return s.posts[i], true
}

// LocationByID looks up a location by identifier.
func (s *Snapshot) LocationByID(id string) (domain.Location, bool) {
	i, ok := s.locationsByID[id]
	if !ok {
		return domain.Location{}, false
	}
	return s.locations[i], true
}
