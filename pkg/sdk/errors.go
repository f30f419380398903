package discovery

import "github.com/painaidee/discovery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery            = domain.ErrInvalidQuery
	ErrInvalidLimit            = domain.ErrInvalidLimit
	ErrInvalidCoordinates      = domain.ErrInvalidCoordinates
	ErrPostNotFound            = domain.ErrPostNotFound
	ErrLocationNotFound        = domain.ErrLocationNotFound
	ErrCorpusUnavailable       = domain.ErrCorpusUnavailable
	ErrSimilarityProviderError = domain.ErrSimilarityProviderError
)
