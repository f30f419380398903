package search

import (
	"sort"
	"strings"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of every matched term in
// text with <mark> markup. Occurrences of different terms that overlap (one
// term being a substring of another) are merged into a single span before
// wrapping, so the output never nests or duplicates markers.
func Highlight(text string, matchedTerms []string) string {
	if text == "" || len(matchedTerms) == 0 {
		return text
	}

	lower := strings.ToLower(text)
	var intervals [][2]int
	for _, term := range matchedTerms {
		term = strings.ToLower(term)
		if term == "" {
			continue
		}
		off := 0
		for {
			i := strings.Index(lower[off:], term)
			if i < 0 {
				break
			}
			start := off + i
			intervals = append(intervals, [2]int{start, start + len(term)})
			off = start + len(term)
		}
	}
	if len(intervals) == 0 {
		return text
	}

	merged := mergeIntervals(intervals)

	var b strings.Builder
	prev := 0
	for _, iv := range merged {
		b.WriteString(text[prev:iv[0]])
		b.WriteString(markOpen)
		b.WriteString(text[iv[0]:iv[1]])
		b.WriteString(markClose)
		prev = iv[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

// mergeIntervals sorts byte intervals and collapses any that touch or overlap.
func mergeIntervals(intervals [][2]int) [][2]int {
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i][0] != intervals[j][0] {
			return intervals[i][0] < intervals[j][0]
		}
		return intervals[i][1] > intervals[j][1]
	})

	merged := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv[0] <= last[1] {
			if iv[1] > last[1] {
				last[1] = iv[1]
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
