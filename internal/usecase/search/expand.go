package search

import (
	"sort"
	"strings"

	"github.com/painaidee/discovery/internal/domain"
)

// Expand widens a raw query into related terms using the gazetteer. The result
// always starts with the original query. Every gazetteer entry whose canonical
// name or any alias contains the query (case-insensitive) contributes its
// popular places and common tags; multiple matching entries all contribute.
// Entries are visited in sorted key order so identical inputs always produce
// the identical term list.
func Expand(query string, expansions domain.ExpansionMap) []string {
	terms := []string{query}
	lowerQuery := strings.ToLower(query)
	if lowerQuery == "" {
		return terms
	}

	names := make([]string, 0, len(expansions))
	for name := range expansions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := expansions[name]
		if !expansionMatches(name, e.Aliases, lowerQuery) {
			continue
		}
		for _, t := range e.PopularPlaces {
			terms = appendUnique(terms, t)
		}
		for _, t := range e.CommonTags {
			terms = appendUnique(terms, t)
		}
	}

	return terms
}

func expansionMatches(name string, aliases []string, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(name), lowerQuery) {
		return true
	}
	for _, a := range aliases {
		if strings.Contains(strings.ToLower(a), lowerQuery) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
