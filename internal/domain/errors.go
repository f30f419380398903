package domain

import "errors"

var (
	// ErrCorpusUnavailable signals that the corpus or gazetteer snapshot could not be loaded.
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	// ErrInvalidLimit signals a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be positive")
	// ErrInvalidQuery signals a malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrPostNotFound signals a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrLocationNotFound signals a missing gazetteer location.
	ErrLocationNotFound = errors.New("location not found")
	// ErrInvalidCoordinates signals latitude/longitude out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrSimilarityProviderError signals an embedding provider failure.
	ErrSimilarityProviderError = errors.New("similarity provider error")
)
