package health

import (
	"context"

	"github.com/painaidee/discovery/internal/domain"
)

// CorpusReader exposes the loaded snapshot for readiness checks.
type CorpusReader interface {
	Posts() []domain.Post
	Locations() []domain.Location
}

// SimilarityChecker checks the embedding provider availability. nil when the
// keyword scorer is in use.
type SimilarityChecker interface {
	HealthCheck(ctx context.Context) error
}
