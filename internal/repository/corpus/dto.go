package corpus

import (
	"time"

	"github.com/painaidee/discovery/internal/domain"
)

// Wire documents as the backend store emits them. Field names follow the
// platform API (camelCase).

type postDTO struct {
	ID         string       `json:"id"`
	User       authorDTO    `json:"user"`
	Media      []mediaDTO   `json:"media"`
	Caption    string       `json:"caption"`
	Tags       []string     `json:"tags"`
	LocationID string       `json:"locationId"`
	Location   *locationRef `json:"location"`
	Geo        *geoDTO      `json:"geo"`
	LikeCount  int          `json:"likeCount"`
	Comments   int          `json:"commentCount"`
	Shares     int          `json:"shareCount"`
	Views      int          `json:"viewCount"`
	CreatedAt  string       `json:"createdAt"`
	IsPublic   bool         `json:"isPublic"`
	Language   string       `json:"language"`
}

type authorDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

type mediaDTO struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	ThumbURL string `json:"thumbUrl"`
	Duration int    `json:"duration"`
	Size     *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"size"`
}

type locationRef struct {
	Name      string `json:"name"`
	NameLocal string `json:"nameLocal"`
	Province  string `json:"province"`
}

type geoDTO struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

type locationDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	NameLocal       string   `json:"nameLocal"`
	Aliases         []string `json:"aliases"`
	Province        string   `json:"province"`
	Region          string   `json:"region"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Geo             geoDTO   `json:"geo"`
	PopularityScore float64  `json:"popularityScore"`
	Description     string   `json:"description"`
}

func (d postDTO) toDomain() domain.Post {
	p := domain.Post{
		ID:         d.ID,
		Caption:    d.Caption,
		Tags:       d.Tags,
		LocationID: d.LocationID,
		Counters: domain.Counters{
			Likes:    d.LikeCount,
			Comments: d.Comments,
			Shares:   d.Shares,
			Views:    d.Views,
		},
		CreatedAt: parseTimestamp(d.CreatedAt),
		Public:    d.IsPublic,
		Language:  d.Language,
		Author: domain.Author{
			ID:       d.User.ID,
			Name:     d.User.Name,
			Avatar:   d.User.Avatar,
			Verified: d.User.Verified,
		},
	}
	if d.Location != nil {
		p.Location = domain.LocationRef{
			Name:      d.Location.Name,
			NameLocal: d.Location.NameLocal,
			Province:  d.Location.Province,
		}
	}
	if d.Geo != nil {
		p.Geo = &domain.GeoPoint{Lat: d.Geo.Lat, Lng: d.Geo.Lng}
	}
	for _, m := range d.Media {
		mi := domain.MediaItem{
			ID:          m.ID,
			Type:        domain.MediaType(m.Type),
			URL:         m.URL,
			ThumbURL:    m.ThumbURL,
			DurationSec: m.Duration,
		}
		if m.Size != nil {
			mi.Width = m.Size.Width
			mi.Height = m.Size.Height
		}
		p.Media = append(p.Media, mi)
	}
	return p
}

func (d locationDTO) toDomain() domain.Location {
	return domain.Location{
		ID:              d.ID,
		Name:            d.Name,
		NameLocal:       d.NameLocal,
		Aliases:         d.Aliases,
		Province:        d.Province,
		Region:          d.Region,
		Category:        d.Category,
		Tags:            d.Tags,
		Geo:             domain.GeoPoint{Lat: d.Geo.Lat, Lng: d.Geo.Lng},
		PopularityScore: d.PopularityScore,
		Description:     d.Description,
	}
}

// timestampLayouts are tried in order when parsing createdAt. A value that
// matches none of them yields a zero time; the post still loads and its
// recency scores 0 instead of failing the batch.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
