package aggregator

import (
	"math"
	"testing"
	"time"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	listing := northOf("cafe-1", 842)
	listing.Rating = 4.0
	listing.ReviewCount = 57

	tests := []struct {
		name       string
		listing    domain.ExternalListing
		reviews    []domain.LocalReview
		viewer     *domain.GeoPoint
		wantRating float64
		wantCount  int
		wantLabel  string
		wantDist   bool
	}{
		{
			name:       "no_local_reviews",
			listing:    listing,
			viewer:     &viewer,
			wantRating: 4.0,
			wantCount:  57,
			wantLabel:  "842 m",
			wantDist:   true,
		},
		{
			name:       "with_local_reviews",
			listing:    listing,
			reviews:    reviewsWithRatings(2, 4),
			viewer:     &viewer,
			wantRating: 3.5,
			wantCount:  59,
			wantLabel:  "842 m",
			wantDist:   true,
		},
		{
			name:       "viewer_location_unknown",
			listing:    listing,
			reviews:    reviewsWithRatings(2),
			viewer:     nil,
			wantRating: 3.0,
			wantCount:  58,
			wantLabel:  "Distance unknown",
		},
		{
			name:       "listing_without_coordinates",
			listing:    domain.ExternalListing{ID: "cafe-2", Rating: 3.2, ReviewCount: 4},
			viewer:     &viewer,
			wantRating: 3.2,
			wantCount:  4,
			wantLabel:  "Distance unknown",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			view := Aggregate(testCase.listing, testCase.reviews, testCase.viewer)

			assert.Equal(t, testCase.wantRating, view.BlendedRating)
			assert.Equal(t, testCase.wantCount, view.TotalReviewCount)
			assert.Equal(t, testCase.wantLabel, view.DistanceLabel)
			if testCase.wantDist {
				require.NotNil(t, view.DistanceMeters)
				assert.InDelta(t, 842, *view.DistanceMeters, 0.01)
			} else {
				assert.Nil(t, view.DistanceMeters)
			}
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	listing := domain.ExternalListing{
		ID:          "cafe-1",
		Rating:      4.3,
		ReviewCount: 211,
		Coordinates: &domain.GeoPoint{Latitude: 49.2606, Longitude: -123.2460},
	}
	reviews := []domain.LocalReview{
		{ID: "r1", Rating: 5, CreatedAt: time.Unix(1700000000, 0)},
		{ID: "r2", Rating: 3, CreatedAt: time.Unix(1700000100, 0)},
		{ID: "r3", Rating: 4, CreatedAt: time.Unix(1700000200, 0)},
	}

	first := Aggregate(listing, reviews, &viewer)
	second := Aggregate(listing, reviews, &viewer)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.BlendedRating), math.Float64bits(second.BlendedRating))
	require.NotNil(t, first.DistanceMeters)
	require.NotNil(t, second.DistanceMeters)
	assert.Equal(t, math.Float64bits(*first.DistanceMeters), math.Float64bits(*second.DistanceMeters))
}
