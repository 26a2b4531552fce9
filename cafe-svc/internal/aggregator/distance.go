// Package aggregator blends café ratings from the listing API with local
// reviews and works out how far each café is from the viewer.
//
// Everything here is a pure function over its arguments and may be called
// concurrently.
package aggregator

import (
	"errors"
	"math"

	"sipspotter/cafe-svc/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000.0

// ErrCoordinatesUnavailable is returned when a point is missing or not a valid
// lat/lon pair.
var ErrCoordinatesUnavailable = errors.New("coordinates unavailable")

// Distance returns the great-circle distance in meters between a and b using
// the haversine formula.
func Distance(a, b *domain.GeoPoint) (float64, error) {
	if a == nil || b == nil || !a.Valid() || !b.Valid() {
		return 0, ErrCoordinatesUnavailable
	}
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0, nil
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// rounding can push h just past 1 for antipodal points
	h = math.Min(h, 1)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h)), nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
