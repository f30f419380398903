package search

import (
	"errors"
	"testing"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/scoring"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

func sc(id string, final float64) scoredCandidate {
	return scoredCandidate{
		candidate: match.Candidate{Post: domain.Post{ID: id}},
		metrics:   scoring.Metrics{Final: final},
	}
}

func rankedIDs(t *testing.T, in []scoredCandidate, limit int) []string {
	t.Helper()
	out, err := rank(in, limit)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	ids := make([]string, len(out))
	for i, c := range out {
		ids[i] = c.candidate.Post.ID
	}
	return ids
}

func TestRank_DescendingByFinalScore(t *testing.T) {
	ids := rankedIDs(t, []scoredCandidate{sc("low", 0.2), sc("high", 0.9), sc("mid", 0.5)}, 10)
	want := []string{"high", "mid", "low"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestRank_TiesPreserveInputOrder(t *testing.T) {
	ids := rankedIDs(t, []scoredCandidate{sc("a", 0.5), sc("b", 0.5), sc("c", 0.5)}, 10)
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("tied order = %v, want input order %v", ids, want)
		}
	}
}

func TestRank_Truncates(t *testing.T) {
	ids := rankedIDs(t, []scoredCandidate{sc("a", 0.9), sc("b", 0.8), sc("c", 0.7)}, 2)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("truncated = %v, want [a b]", ids)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []scoredCandidate{sc("low", 0.1), sc("high", 0.9)}
	if _, err := rank(in, 10); err != nil {
		t.Fatalf("rank: %v", err)
	}
	if in[0].candidate.Post.ID != "low" {
		t.Error("rank mutated its input slice")
	}
}

func TestRank_InvalidLimit(t *testing.T) {
	if _, err := rank(nil, 0); !errors.Is(err, domain.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := rank(nil, -1); !errors.Is(err, domain.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	out, err := rank(nil, 5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d", len(out))
	}
}
