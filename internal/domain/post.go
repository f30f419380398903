package domain

import "time"

// MediaType distinguishes post media items.
type MediaType string

const (
	// MediaImage is a still image.
	MediaImage MediaType = "image"
	// MediaVideo is a video clip.
	MediaVideo MediaType = "video"
)

// Author is the post author snapshot embedded in a post.
type Author struct {
	ID       string
	Name     string
	Avatar   string
	Verified bool
}

// MediaItem is a single image or video attached to a post.
type MediaItem struct {
	ID          string
	Type        MediaType
	URL         string
	ThumbURL    string
	Width       int
	Height      int
	DurationSec int
}

// LocationRef is the denormalized location snapshot carried by a post.
type LocationRef struct {
	Name      string
	NameLocal string
	Province  string
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Counters holds engagement counts for a post.
type Counters struct {
	Likes    int
	Comments int
	Shares   int
	Views    int
}

// Post is a user-generated content item in the corpus. Posts are owned by the
// external corpus store; the engine only reads them and treats a loaded
// snapshot as immutable for the duration of a query.
type Post struct {
	ID         string
	Author     Author
	Media      []MediaItem
	Caption    string
	Tags       []string
	LocationID string
	Location   LocationRef
	Geo        *GeoPoint
	Counters   Counters
	CreatedAt  time.Time
	Public     bool
	Language   string
}
