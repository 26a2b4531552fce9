package service

import (
	"context"
	"errors"
	"log"
	"time"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrScheduleInPast   = errors.New("visit time must be in the future")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrNotScheduleOwner = errors.New("only the owner can cancel this visit")
)

type ScheduleService struct {
	repository ScheduleRepository
	publisher  VisitPublisher
	now        func() time.Time
}

func NewScheduleService(repository ScheduleRepository, publisher VisitPublisher) *ScheduleService {
	return &ScheduleService{
		repository: repository,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Add stores a visit reminder and emits visit_scheduled for the notifier.
func (s *ScheduleService) Add(ctx context.Context, userID, cafeID, cafeName string, visitAt time.Time) (*domain.Schedule, error) {
	if cafeID == "" {
		return nil, ErrMissingCafe
	}
	now := s.now()
	if !visitAt.After(now) {
		return nil, ErrScheduleInPast
	}

	schedule := &domain.Schedule{
		ID:        uuid.New().String(),
		UserID:    userID,
		CafeID:    cafeID,
		CafeName:  cafeName,
		VisitAt:   visitAt.UTC(),
		CreatedAt: now.UTC(),
	}
	if err := s.repository.InsertSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventVisitScheduled, schedule)
	return schedule, nil
}

func (s *ScheduleService) Remove(ctx context.Context, userID, scheduleID string) error {
	schedule, err := s.repository.GetSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}
	if schedule.UserID != userID {
		return ErrNotScheduleOwner
	}

	if err := s.repository.DeleteSchedule(ctx, scheduleID); err != nil {
		return err
	}

	s.publish(ctx, domain.EventVisitCancelled, schedule)
	return nil
}

func (s *ScheduleService) ListForCafe(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error) {
	return s.repository.ListSchedules(ctx, userID, cafeID)
}

func (s *ScheduleService) publish(ctx context.Context, eventType string, schedule *domain.Schedule) {
	if s.publisher == nil {
		log.Printf("Warning: visit publisher is nil, skipping %s", eventType)
		return
	}
	err := s.publisher.PublishVisitEvent(ctx, domain.VisitEvent{
		Type:       eventType,
		ScheduleID: schedule.ID,
		UserID:     schedule.UserID,
		CafeID:     schedule.CafeID,
		CafeName:   schedule.CafeName,
		VisitAt:    schedule.VisitAt,
		Timestamp:  s.now().UTC(),
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s for schedule %s: %v", eventType, schedule.ID, err)
	}
}
