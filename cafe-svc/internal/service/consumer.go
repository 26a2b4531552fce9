package service

import (
	"context"
	"encoding/json"
	"log"

	"sipspotter/cafe-svc/internal/domain"
)

// ReviewEventConsumer keeps cached review snapshots fresh when another
// instance writes a review.
type ReviewEventConsumer struct {
	Reader MessageReader
	Cache  ReviewCache
}

func NewReviewEventConsumer(reader MessageReader, cache ReviewCache) *ReviewEventConsumer {
	return &ReviewEventConsumer{
		Reader: reader,
		Cache:  cache,
	}
}

func (c *ReviewEventConsumer) Start(ctx context.Context) {
	log.Println("Starting review event consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Review event consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.ReviewEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *ReviewEventConsumer) ProcessEvent(ctx context.Context, event domain.ReviewEvent) {
	switch event.Type {
	case domain.EventReviewCreated, domain.EventReviewUpdated, domain.EventReviewDeleted:
	default:
		return
	}
	if event.CafeID == "" {
		log.Printf("Warning: %s event for review %s has no cafe id", event.Type, event.ReviewID)
		return
	}

	if err := c.Cache.InvalidateReviews(ctx, event.CafeID); err != nil {
		log.Printf("Error invalidating reviews for cafe %s: %v", event.CafeID, err)
	}
}
