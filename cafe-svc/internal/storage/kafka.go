package storage

import (
	"context"
	"encoding/json"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	ReviewWriter *kafka.Writer
	VisitWriter  *kafka.Writer
}

func NewKafkaPublisher(reviewWriter, visitWriter *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{ReviewWriter: reviewWriter, VisitWriter: visitWriter}
}

// PublishReviewEvent keys messages by café so events for one café stay ordered.
func (p *KafkaPublisher) PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.ReviewWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CafeID),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishVisitEvent(ctx context.Context, event domain.VisitEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.VisitWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ScheduleID),
		Value: payload,
	})
}
