package index

import (
	"sort"
	"strings"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

// Location field names reported in suggestion spans.
const (
	fieldName     = "name"
	fieldLocal    = "name_local"
	fieldAliases  = "aliases"
	fieldLocTags  = "tags"
	fieldProvince = "province"
)

type locationEntry struct {
	location domain.Location
	fields   []fieldText
}

// LocationIndex matches query terms against weighted gazetteer fields. It
// backs auto-suggest and location search.
type LocationIndex struct {
	cfg     match.Config
	entries []locationEntry
}

// NewLocationIndex builds the index over all locations in corpus order.
func NewLocationIndex(locations []domain.Location, cfg match.Config) *LocationIndex {
	ix := &LocationIndex{cfg: cfg}
	for _, l := range locations {
		ix.entries = append(ix.entries, locationEntry{
			location: l,
			fields: []fieldText{
				newFieldText(fieldName, 0.3, l.Name),
				newFieldText(fieldLocal, 0.3, l.NameLocal),
				newFieldText(fieldAliases, 0.2, strings.Join(l.Aliases, " ")),
				newFieldText(fieldLocTags, 0.1, strings.Join(l.Tags, " ")),
				newFieldText(fieldProvince, 0.1, l.Province),
			},
		})
	}
	return ix
}

// Match returns locations matching at least one term, sorted ascending by
// distance with stable ties on corpus order.
func (ix *LocationIndex) Match(terms []string) []match.LocationCandidate {
	terms = usableTerms(terms, ix.cfg.MinMatchLength)
	if len(terms) == 0 {
		return nil
	}

	var out []match.LocationCandidate
	for _, e := range ix.entries {
		c, ok := matchFields(e.fields, terms, ix.cfg.Threshold)
		if !ok {
			continue
		}
		out = append(out, match.LocationCandidate{
			Location:     e.location,
			Distance:     c.Distance,
			MatchedTerms: c.MatchedTerms,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}
