// Package geo provides great-circle distance math for nearby-location lookups.
package geo

import (
	"math"

	"github.com/painaidee/discovery/internal/domain"
)

// EarthRadiusKm is the mean radius of Earth used for haversine distance.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance in kilometers between
// two points. Symmetric, zero for identical points.
func DistanceKm(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// ValidCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidCoordinates(p domain.GeoPoint) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
