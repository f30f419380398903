// Package index provides in-memory approximate-match indexes over the corpus
// snapshot. An index is built once at startup from immutable data and is safe
// for concurrent queries.
package index

import (
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/match"
)

type fieldText struct {
	name   string
	weight float64
	text   string
	lower  string
	tokens []token
}

type token struct {
	lower string
	span  match.Span
}

type postEntry struct {
	post   domain.Post
	fields []fieldText
}

// PostIndex matches query terms against weighted post fields.
type PostIndex struct {
	cfg     match.Config
	entries []postEntry
}

// NewPostIndex builds the index over all public posts in corpus order.
func NewPostIndex(posts []domain.Post, cfg match.Config) *PostIndex {
	ix := &PostIndex{cfg: cfg}
	for _, p := range posts {
		if !p.Public {
			continue
		}
		locName := strings.TrimSpace(p.Location.Name + " " + p.Location.NameLocal)
		ix.entries = append(ix.entries, postEntry{
			post: p,
			fields: []fieldText{
				newFieldText(match.FieldCaption, cfg.FieldWeights.Caption, p.Caption),
				newFieldText(match.FieldTags, cfg.FieldWeights.Tags, strings.Join(p.Tags, " ")),
				newFieldText(match.FieldLocation, cfg.FieldWeights.LocationName, locName),
				newFieldText(match.FieldAuthor, cfg.FieldWeights.AuthorName, p.Author.Name),
			},
		})
	}
	return ix
}

// Match returns every post matching at least one term in at least one field,
// sorted ascending by distance with stable ties on corpus order. The distance
// is the field-weighted mean of the best per-field term distances.
func (ix *PostIndex) Match(terms []string) []match.Candidate {
	terms = usableTerms(terms, ix.cfg.MinMatchLength)
	if len(terms) == 0 {
		return nil
	}

	var out []match.Candidate
	for _, e := range ix.entries {
		if c, ok := matchFields(e.fields, terms, ix.cfg.Threshold); ok {
			c.Post = e.post
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

func matchFields(fields []fieldText, terms []string, threshold float64) (match.Candidate, bool) {
	c := match.Candidate{Spans: make(map[string][]match.Span)}
	var weightSum, distSum float64

	for _, f := range fields {
		if f.weight <= 0 || f.text == "" {
			continue
		}
		best, spans, matched := matchField(f, terms, threshold)
		if best < 0 {
			continue
		}
		weightSum += f.weight
		distSum += f.weight * best
		c.Spans[f.name] = spans
		for _, m := range matched {
			c.MatchedTerms = appendUnique(c.MatchedTerms, m)
		}
	}

	if weightSum == 0 {
		return match.Candidate{}, false
	}
	c.Distance = distSum / weightSum
	return c, true
}

// matchField returns the best (lowest) distance any term achieved against the
// field, the spans of every hit, and the matched substrings. best is -1 when
// no term matched.
func matchField(f fieldText, terms []string, threshold float64) (float64, []match.Span, []string) {
	best := -1.0
	var spans []match.Span
	var matched []string

	for _, term := range terms {
		if idxs := substringSpans(f.lower, term); len(idxs) > 0 {
			best = 0
			spans = append(spans, idxs...)
			matched = appendUnique(matched, f.text[idxs[0].Start:idxs[0].End])
			continue
		}

		tokDist, tok, ok := bestTokenMatch(f.tokens, term, threshold)
		if !ok {
			continue
		}
		if best < 0 || tokDist < best {
			best = tokDist
		}
		spans = append(spans, tok.span)
		matched = appendUnique(matched, f.text[tok.span.Start:tok.span.End])
	}

	return best, spans, matched
}

// bestTokenMatch finds the field token with the smallest normalized edit
// distance to term, accepting only distances within the threshold.
func bestTokenMatch(tokens []token, term string, threshold float64) (float64, token, bool) {
	best := -1.0
	var bestTok token
	for _, tok := range tokens {
		d := normalizedDistance(term, tok.lower)
		if d > threshold {
			continue
		}
		if best < 0 || d < best {
			best = d
			bestTok = tok
		}
	}
	return best, bestTok, best >= 0
}

// normalizedDistance is the Wagner-Fischer edit distance divided by the longer
// string's byte length, yielding [0,1].
func normalizedDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return float64(smetrics.WagnerFischer(a, b, 1, 1, 1)) / float64(longest)
}

// substringSpans returns the spans of every non-overlapping occurrence of term
// in text.
func substringSpans(text, term string) []match.Span {
	if term == "" {
		return nil
	}
	var spans []match.Span
	off := 0
	for {
		i := strings.Index(text[off:], term)
		if i < 0 {
			return spans
		}
		start := off + i
		spans = append(spans, match.Span{Start: start, End: start + len(term)})
		off = start + len(term)
	}
}

func newFieldText(name string, weight float64, text string) fieldText {
	lower := strings.ToLower(text)
	return fieldText{
		name:   name,
		weight: weight,
		text:   text,
		lower:  lower,
		tokens: tokenize(lower),
	}
}

// tokenize splits on whitespace, recording byte spans into the source text.
func tokenize(s string) []token {
	var tokens []token
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{lower: s[start:i], span: match.Span{Start: start, End: i}})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{lower: s[start:], span: match.Span{Start: start, End: len(s)}})
	}
	return tokens
}

func usableTerms(terms []string, minLen int) []string {
	var out []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if len([]rune(t)) < minLen {
			continue
		}
		out = appendUnique(out, t)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
