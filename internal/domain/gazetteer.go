package domain

// Location is a static gazetteer entry. Gazetteer data is read-only reference
// data loaded once at startup.
type Location struct {
	ID              string
	Name            string
	NameLocal       string
	Aliases         []string
	Province        string
	Region          string
	Category        string
	Tags            []string
	Geo             GeoPoint
	PopularityScore float64
	Description     string
}

// Expansion maps a canonical location name to the terms a query mentioning it
// should fan out into.
type Expansion struct {
	PopularPlaces   []string
	CommonTags      []string
	Aliases         []string
	NearbyProvinces []string
}

// ExpansionMap is the query-expansion lookup table keyed by canonical name.
type ExpansionMap map[string]Expansion
