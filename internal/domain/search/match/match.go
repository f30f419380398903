// Package match defines the fuzzy-match contract between the engine and its
// index implementations: weighted fields, normalized distances, and the spans
// that triggered a hit.
package match

import "github.com/painaidee/discovery/internal/domain"

// Post field names reported in match spans.
const (
	FieldCaption  = "caption"
	FieldTags     = "tags"
	FieldLocation = "location"
	FieldAuthor   = "author"
)

// Span is a byte range [Start, End) within a field's text.
type Span struct {
	Start int
	End   int
}

// Candidate is one approximate post match: a normalized distance (0 = perfect,
// 1 = worst accepted) and the spans that triggered it.
type Candidate struct {
	Post         domain.Post
	Distance     float64
	Spans        map[string][]Span
	MatchedTerms []string
}

// LocationCandidate is one approximate gazetteer match.
type LocationCandidate struct {
	Location     domain.Location
	Distance     float64
	MatchedTerms []string
}

// FieldWeights holds the relative weight of each searched post field.
type FieldWeights struct {
	Caption      float64
	Tags         float64
	LocationName float64
	AuthorName   float64
}

// Config tunes a matcher.
type Config struct {
	// Threshold is the maximum accepted normalized distance per field.
	Threshold float64
	// MinMatchLength skips query terms shorter than this many runes.
	MinMatchLength int
	FieldWeights   FieldWeights
}

// DefaultConfig returns the production post-matching configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:      0.4,
		MinMatchLength: 2,
		FieldWeights: FieldWeights{
			Caption:      0.4,
			Tags:         0.3,
			LocationName: 0.2,
			AuthorName:   0.1,
		},
	}
}

// DefaultLocationConfig returns the location-matching configuration. Location
// matching tolerates shorter terms than post matching because suggestions
// fire per keystroke.
func DefaultLocationConfig() Config {
	return Config{
		Threshold:      0.3,
		MinMatchLength: 1,
	}
}
