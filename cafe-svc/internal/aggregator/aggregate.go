package aggregator

import "sipspotter/cafe-svc/internal/domain"

// Aggregate builds the per-café view shown in lists and on the details page.
// A nil viewer, or a listing without coordinates, yields no distance and the
// "Distance unknown" label.
func Aggregate(listing domain.ExternalListing, reviews []domain.LocalReview, viewer *domain.GeoPoint) domain.AggregatedCafeView {
	view := domain.AggregatedCafeView{
		BlendedRating:    BlendRating(listing.Rating, reviews),
		TotalReviewCount: TotalReviewCount(listing, reviews),
	}

	if d, err := Distance(viewer, listing.Coordinates); err == nil {
		view.DistanceMeters = &d
	}
	view.DistanceLabel = FormatDistance(view.DistanceMeters)

	return view
}
