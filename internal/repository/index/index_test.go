package index

import (
	"testing"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

func fixturePosts() []domain.Post {
	return []domain.Post{
		{
			ID:       "doi-suthep",
			Caption:  "พระอาทิตย์ตกที่ดอยสุเทพ สวยมาก",
			Tags:     []string{"เชียงใหม่", "sunset"},
			Location: domain.LocationRef{Name: "Doi Suthep", NameLocal: "ดอยสุเทพ"},
			Author:   domain.Author{Name: "mint.travels"},
			Public:   true,
		},
		{
			ID:       "beach",
			Caption:  "snorkeling at the beach",
			Tags:     []string{"krabi", "sea"},
			Location: domain.LocationRef{Name: "Phi Phi Islands"},
			Author:   domain.Author{Name: "island.hopper"},
			Public:   true,
		},
		{
			ID:      "private",
			Caption: "ดอยสุเทพ private trip",
			Public:  false,
		},
	}
}

func matchIDs(cs []match.Candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.Post.ID
	}
	return ids
}

func TestPostIndex_ExactSubstringMatch(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	got := ix.Match([]string{"ดอยสุเทพ"})
	if len(got) != 1 || got[0].Post.ID != "doi-suthep" {
		t.Fatalf("matched %v, want [doi-suthep]", matchIDs(got))
	}
	if got[0].Distance != 0 {
		t.Errorf("exact substring distance = %v, want 0", got[0].Distance)
	}
}

func TestPostIndex_SkipsPrivatePosts(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	for _, c := range ix.Match([]string{"ดอยสุเทพ", "private"}) {
		if c.Post.ID == "private" {
			t.Fatal("non-public post must never match")
		}
	}
}

func TestPostIndex_CaseInsensitive(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	got := ix.Match([]string{"DOI SUTHEP"})
	if len(got) != 1 || got[0].Post.ID != "doi-suthep" {
		t.Errorf("matched %v, want [doi-suthep]", matchIDs(got))
	}
}

func TestPostIndex_TypoWithinThreshold(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	// One substitution against the token "snorkeling" (10 bytes): 0.1 <= 0.4.
	got := ix.Match([]string{"snorkaling"})
	if len(got) != 1 || got[0].Post.ID != "beach" {
		t.Fatalf("matched %v, want [beach]", matchIDs(got))
	}
	if got[0].Distance <= 0 {
		t.Errorf("typo distance = %v, want > 0", got[0].Distance)
	}
}

func TestPostIndex_BeyondThresholdNoMatch(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	if got := ix.Match([]string{"mountain"}); len(got) != 0 {
		t.Errorf("unrelated term matched %v", matchIDs(got))
	}
}

func TestPostIndex_ShortTermsSkipped(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	// Single-rune terms fall under the minimum match length.
	if got := ix.Match([]string{"ด", "s"}); len(got) != 0 {
		t.Errorf("short terms matched %v", matchIDs(got))
	}
}

func TestPostIndex_SortedAscendingByDistance(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	// "sunset" is exact in doi-suthep; "snorkaling" is a typo match in beach.
	got := ix.Match([]string{"sunset", "snorkaling"})
	if len(got) != 2 {
		t.Fatalf("matched %v, want both posts", matchIDs(got))
	}
	if got[0].Post.ID != "doi-suthep" {
		t.Errorf("exact match must sort first, got %v", matchIDs(got))
	}
	if got[0].Distance >= got[1].Distance {
		t.Errorf("distances not ascending: %v then %v", got[0].Distance, got[1].Distance)
	}
}

func TestPostIndex_SpansPointIntoFieldText(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	got := ix.Match([]string{"sunset"})
	if len(got) != 1 {
		t.Fatalf("matched %v, want [doi-suthep]", matchIDs(got))
	}
	spans, ok := got[0].Spans[match.FieldTags]
	if !ok || len(spans) == 0 {
		t.Fatalf("expected tag spans, got %v", got[0].Spans)
	}
	tagsText := "เชียงใหม่ sunset"
	if tagsText[spans[0].Start:spans[0].End] != "sunset" {
		t.Errorf("span %v does not cover the matched term", spans[0])
	}
}

func TestPostIndex_MatchedTermsReported(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	got := ix.Match([]string{"sunset", "nothing-here"})
	if len(got) != 1 {
		t.Fatalf("matched %v", matchIDs(got))
	}
	terms := got[0].MatchedTerms
	if len(terms) != 1 || terms[0] != "sunset" {
		t.Errorf("matched terms = %v, want [sunset]", terms)
	}
}

func TestPostIndex_DuplicateTermsDeduplicated(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	once := ix.Match([]string{"sunset"})
	twice := ix.Match([]string{"sunset", "SUNSET", " sunset "})
	if len(once) != len(twice) {
		t.Fatalf("duplicate terms changed the result set")
	}
	if len(twice[0].Spans[match.FieldTags]) != len(once[0].Spans[match.FieldTags]) {
		t.Errorf("duplicate terms duplicated spans")
	}
}

func TestPostIndex_EmptyTerms(t *testing.T) {
	ix := NewPostIndex(fixturePosts(), match.DefaultConfig())

	if got := ix.Match(nil); got != nil {
		t.Errorf("nil terms matched %v", matchIDs(got))
	}
	if got := ix.Match([]string{"", "  "}); got != nil {
		t.Errorf("blank terms matched %v", matchIDs(got))
	}
}

func TestNormalizedDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 0},
		{"", "", 0},
		{"abcd", "abcx", 0.25},
		{"ab", "cdef", 1},
	}
	for _, tt := range tests {
		if got := normalizedDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("normalizedDistance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
