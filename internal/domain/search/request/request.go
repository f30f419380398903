// Package request defines the validated search query value object.
package request

import (
	"fmt"
	"strings"

	"github.com/painaidee/discovery/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 256
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Language tags accepted by the engine.
const (
	LanguageThai    = "th"
	LanguageEnglish = "en"
	LanguageAuto    = "auto"
)

// Filters narrows ranked results. Empty slices mean no filtering.
type Filters struct {
	Provinces  []string
	Categories []string
	Amenities  []string
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return len(f.Provinces) == 0 && len(f.Categories) == 0 && len(f.Amenities) == 0
}

// Request is a validated search query. A query that is empty after trimming is
// valid; the engine answers it with a deterministic empty result set.
type Request struct {
	query    string
	language string
	limit    int
	filters  Filters
}

// New validates and normalizes search parameters. The query is trimmed,
// language defaults to auto, and limit must be positive (callers substitute
// DefaultLimit for an omitted limit before calling).
func New(query, language string, limit int, filters Filters) (Request, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	switch language {
	case "":
		language = LanguageAuto
	case LanguageThai, LanguageEnglish, LanguageAuto:
	default:
		return Request{}, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidQuery, language)
	}

	if limit <= 0 {
		return Request{}, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{query: query, language: language, limit: limit, filters: filters}, nil
}

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// Language returns the normalized language tag.
func (r *Request) Language() string { return r.language }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Filters returns the result filters.
func (r *Request) Filters() Filters { return r.filters }

// IsEmpty reports whether the trimmed query is empty.
func (r *Request) IsEmpty() bool { return r.query == "" }
