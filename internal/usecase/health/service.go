package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	corpus     CorpusReader
	similarity SimilarityChecker
}

// New creates a Service. similarity can be nil.
func New(corpus CorpusReader, similarity SimilarityChecker) *Service {
	return &Service{corpus: corpus, similarity: similarity}
}

// Check runs health checks against all components. The corpus check fails
// when the snapshot is empty: the engine is serving but cannot answer.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if len(s.corpus.Posts()) == 0 && len(s.corpus.Locations()) == 0 {
		checks["corpus"] = CheckError
	} else {
		checks["corpus"] = CheckOK
	}

	if s.similarity != nil {
		if err := s.similarity.HealthCheck(ctx); err != nil {
			checks["similarity"] = CheckError
		} else {
			checks["similarity"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
