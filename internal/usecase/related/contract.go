package related

import "github.com/painaidee/discovery/internal/domain"

// CorpusReader provides the immutable post snapshot and gazetteer lookups.
type CorpusReader interface {
	Posts() []domain.Post
	PostByID(id string) (domain.Post, bool)
	LocationByID(id string) (domain.Location, bool)
}
