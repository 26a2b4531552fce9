package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client     *redis.Client
	ListingTTL time.Duration
	ReviewTTL  time.Duration
}

func NewRedisCache(client *redis.Client, listingTTL, reviewTTL time.Duration) *RedisCache {
	return &RedisCache{Client: client, ListingTTL: listingTTL, ReviewTTL: reviewTTL}
}

func (c *RedisCache) ListingKey(id string) string {
	return "listing:" + id
}

func (c *RedisCache) ReviewsKey(cafeID string) string {
	return "reviews:" + cafeID
}

// GetListing returns nil without an error on a cache miss.
func (c *RedisCache) GetListing(ctx context.Context, id string) (*domain.ExternalListing, error) {
	raw, err := c.Client.Get(ctx, c.ListingKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var listing domain.ExternalListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *RedisCache) SetListing(ctx context.Context, listing domain.ExternalListing) error {
	payload, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.ListingKey(listing.ID), payload, c.ListingTTL).Err()
}

// GetReviews reports found=false on a cache miss.
func (c *RedisCache) GetReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, bool, error) {
	raw, err := c.Client.Get(ctx, c.ReviewsKey(cafeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var reviews []domain.LocalReview
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, false, err
	}
	return reviews, true, nil
}

func (c *RedisCache) SetReviews(ctx context.Context, cafeID string, reviews []domain.LocalReview) error {
	if reviews == nil {
		reviews = []domain.LocalReview{}
	}
	payload, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.ReviewsKey(cafeID), payload, c.ReviewTTL).Err()
}

func (c *RedisCache) InvalidateReviews(ctx context.Context, cafeID string) error {
	return c.Client.Del(ctx, c.ReviewsKey(cafeID)).Err()
}
