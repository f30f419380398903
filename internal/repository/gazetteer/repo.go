// Package gazetteer loads the static location-name knowledge base used for
// query expansion.
package gazetteer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/painaidee/discovery/internal/domain"
)

type expansionDTO struct {
	PopularPlaces   []string `yaml:"popular_places"`
	CommonTags      []string `yaml:"common_tags"`
	Aliases         []string `yaml:"aliases"`
	NearbyProvinces []string `yaml:"nearby_provinces"`
}

type fileDocument struct {
	Expansions map[string]expansionDTO `yaml:"expansions"`
}

// Load reads the expansion map from a YAML file. An empty or missing file is
// fatal: the engine cannot expand queries without its gazetteer.
func Load(path string) (domain.ExpansionMap, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCorpusUnavailable, path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCorpusUnavailable, path, err)
	}
	if len(doc.Expansions) == 0 {
		return nil, fmt.Errorf("%w: %s has no expansions", domain.ErrCorpusUnavailable, path)
	}

	m := make(domain.ExpansionMap, len(doc.Expansions))
	for name, e := range doc.Expansions {
		m[name] = domain.Expansion{
			PopularPlaces:   e.PopularPlaces,
			CommonTags:      e.CommonTags,
			Aliases:         e.Aliases,
			NearbyProvinces: e.NearbyProvinces,
		}
	}
	return m, nil
}
