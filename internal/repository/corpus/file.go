package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/painaidee/discovery/internal/domain"
)

type fileDocument struct {
	Posts     []postDTO     `json:"posts"`
	Locations []locationDTO `json:"locations"`
}

// LoadFile reads a corpus snapshot from a JSON file. Used for local
// environments and test fixtures.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCorpusUnavailable, path, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCorpusUnavailable, path, err)
	}

	posts := make([]domain.Post, 0, len(doc.Posts))
	for _, d := range doc.Posts {
		posts = append(posts, d.toDomain())
	}
	locations := make([]domain.Location, 0, len(doc.Locations))
	for _, d := range doc.Locations {
		locations = append(locations, d.toDomain())
	}

	return NewSnapshot(posts, locations), nil
}
