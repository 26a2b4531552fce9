package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyReview     = errors.New("review text cannot be empty")
	ErrMissingCafe     = errors.New("cafe id is required")
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewAuthor = errors.New("only the author can change this review")
)

// ReviewInput is the client-supplied part of a review. PhotoURL is the legacy
// single-photo field; it is folded into PhotoURLs.
type ReviewInput struct {
	Rating     int      `json:"rating"`
	ReviewText string   `json:"review_text"`
	PhotoURLs  []string `json:"photo_urls"`
	PhotoURL   string   `json:"photo_url,omitempty"`
}

func (in ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(in.ReviewText) == "" {
		return ErrEmptyReview
	}
	return nil
}

type ReviewService struct {
	repository ReviewRepository
	cache      ReviewCache
	publisher  ReviewPublisher
	now        func() time.Time
	newID      func() string
}

func NewReviewService(repository ReviewRepository, cache ReviewCache, publisher ReviewPublisher) *ReviewService {
	return &ReviewService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

func (s *ReviewService) Create(ctx context.Context, cafeID, authorID, authorEmail string, input ReviewInput) (*domain.LocalReview, error) {
	if cafeID == "" {
		return nil, ErrMissingCafe
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	review := &domain.LocalReview{
		ID:          s.newID(),
		CafeID:      cafeID,
		Rating:      input.Rating,
		ReviewText:  strings.TrimSpace(input.ReviewText),
		AuthorID:    authorID,
		AuthorEmail: authorEmail,
		CreatedAt:   s.now().UTC(),
		PhotoURLs:   domain.NormalizePhotoURLs(input.PhotoURLs, input.PhotoURL),
	}
	if err := s.repository.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, domain.EventReviewCreated, review)
	log.Printf("Successfully created review %s for cafe %s", review.ID, cafeID)
	return review, nil
}

func (s *ReviewService) ListByCafe(ctx context.Context, cafeID string) ([]domain.LocalReview, error) {
	if reviews, found, err := s.cache.GetReviews(ctx, cafeID); err != nil {
		log.Printf("Warning: failed to read cached reviews for cafe %s: %v", cafeID, err)
	} else if found {
		return reviews, nil
	}

	reviews, err := s.repository.ListCafeReviews(ctx, cafeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	if err := s.cache.SetReviews(ctx, cafeID, reviews); err != nil {
		log.Printf("Warning: failed to cache reviews for cafe %s: %v", cafeID, err)
	}
	return reviews, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, input ReviewInput) (*domain.LocalReview, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	review, err := s.authoredReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	editedAt := s.now().UTC()
	review.Rating = input.Rating
	review.ReviewText = strings.TrimSpace(input.ReviewText)
	review.PhotoURLs = domain.NormalizePhotoURLs(input.PhotoURLs, input.PhotoURL)
	review.Edited = true
	review.EditedAt = &editedAt

	if err := s.repository.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, domain.EventReviewUpdated, review)
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.authoredReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	s.afterWrite(ctx, domain.EventReviewDeleted, review)
	return nil
}

func (s *ReviewService) RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error) {
	return s.repository.RatingDistribution(ctx, cafeID)
}

func (s *ReviewService) authoredReview(ctx context.Context, userID, reviewID string) (*domain.LocalReview, error) {
	review, err := s.repository.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.AuthorID != userID {
		return nil, ErrNotReviewAuthor
	}
	return review, nil
}

// afterWrite drops the cached snapshot and announces the change. Neither step
// fails the request; the cache TTL bounds staleness.
func (s *ReviewService) afterWrite(ctx context.Context, eventType string, review *domain.LocalReview) {
	if err := s.cache.InvalidateReviews(ctx, review.CafeID); err != nil {
		log.Printf("Warning: failed to invalidate reviews for cafe %s: %v", review.CafeID, err)
	}

	if s.publisher == nil {
		return
	}
	event := domain.ReviewEvent{
		Type:      eventType,
		ReviewID:  review.ID,
		CafeID:    review.CafeID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.PublishReviewEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s for review %s: %v", eventType, review.ID, err)
	}
}
