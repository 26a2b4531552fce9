package aggregator

import (
	"math"
	"sort"

	"sipspotter/cafe-svc/internal/domain"
)

// SortByProximity pairs every café with its distance from viewer and orders
// them nearest first. Cafés without usable coordinates get +Inf and end up
// last; equal distances keep their input order.
func SortByProximity(viewer domain.GeoPoint, cafes []domain.ExternalListing) []domain.CafeWithDistance {
	sorted := make([]domain.CafeWithDistance, 0, len(cafes))
	for _, cafe := range cafes {
		d, err := Distance(&viewer, cafe.Coordinates)
		if err != nil {
			d = math.Inf(1)
		}
		sorted = append(sorted, domain.CafeWithDistance{Listing: cafe, DistanceMeters: d})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceMeters < sorted[j].DistanceMeters
	})
	return sorted
}

// WithinRadius returns the cafés no further than radiusMeters from viewer,
// nearest first. Cafés without coordinates are never within any radius.
func WithinRadius(viewer domain.GeoPoint, cafes []domain.ExternalListing, radiusMeters float64) []domain.CafeWithDistance {
	sorted := SortByProximity(viewer, cafes)

	within := make([]domain.CafeWithDistance, 0, len(sorted))
	for _, c := range sorted {
		if !c.Available() {
			continue
		}
		if c.DistanceMeters <= radiusMeters {
			within = append(within, c)
		}
	}
	return within
}
