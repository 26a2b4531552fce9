package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"sipspotter/cafe-svc/internal/aggregator"
	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/storage"
)

// MaxSearchRadiusMeters is the largest radius the listing API accepts.
const MaxSearchRadiusMeters = 40000

var (
	ErrListingNotFound    = storage.ErrListingNotFound
	ErrListingUnavailable = storage.ErrListingUnavailable
	ErrInvalidLocation    = errors.New("viewer location is not a valid coordinate")
)

type CafeService struct {
	listings      ListingSource
	listingCache  ListingCache
	reviews       ReviewReader
	defaultRadius float64
}

func NewCafeService(listings ListingSource, listingCache ListingCache, reviews ReviewReader, defaultRadius float64) *CafeService {
	return &CafeService{
		listings:      listings,
		listingCache:  listingCache,
		reviews:       reviews,
		defaultRadius: defaultRadius,
	}
}

// Details returns the listing, local reviews and aggregated view for one café.
// viewer may be nil when the device location is unavailable.
func (s *CafeService) Details(ctx context.Context, cafeID string, viewer *domain.GeoPoint) (*domain.CafeDetails, error) {
	listing, err := s.listing(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	return &domain.CafeDetails{
		Listing: *listing,
		View:    aggregator.Aggregate(*listing, reviews, viewer),
		Reviews: reviews,
	}, nil
}

// Nearby returns the cafés within radiusMeters of viewer, nearest first.
// A non-positive radius falls back to the configured default.
func (s *CafeService) Nearby(ctx context.Context, viewer domain.GeoPoint, radiusMeters float64) ([]domain.CafeSummary, error) {
	if !viewer.Valid() {
		return nil, ErrInvalidLocation
	}
	if radiusMeters <= 0 || math.IsNaN(radiusMeters) {
		radiusMeters = s.defaultRadius
	}
	radiusMeters = math.Min(radiusMeters, MaxSearchRadiusMeters)

	listings, err := s.listings.SearchNearby(ctx, viewer, int(math.Ceil(radiusMeters)))
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	nearby := aggregator.WithinRadius(viewer, listings, radiusMeters)
	summaries := make([]domain.CafeSummary, 0, len(nearby))
	for _, cafe := range nearby {
		if err := s.listingCache.SetListing(ctx, cafe.Listing); err != nil {
			log.Printf("Warning: failed to cache listing %s: %v", cafe.Listing.ID, err)
		}

		reviews, err := s.reviews.ListByCafe(ctx, cafe.Listing.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, domain.CafeSummary{
			Listing: cafe.Listing,
			View:    aggregator.Aggregate(cafe.Listing, reviews, &viewer),
		})
	}
	return summaries, nil
}

func (s *CafeService) listing(ctx context.Context, cafeID string) (*domain.ExternalListing, error) {
	cached, err := s.listingCache.GetListing(ctx, cafeID)
	if err != nil {
		log.Printf("Warning: failed to read cached listing %s: %v", cafeID, err)
	}
	if cached != nil {
		return cached, nil
	}

	listing, err := s.listings.GetListing(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	if err := s.listingCache.SetListing(ctx, *listing); err != nil {
		log.Printf("Warning: failed to cache listing %s: %v", cafeID, err)
	}
	return listing, nil
}
