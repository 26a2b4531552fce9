package service

import (
	"context"
	"time"

	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type CafeServiceInterface interface {
	Details(ctx context.Context, cafeID string, viewer *domain.GeoPoint) (*domain.CafeDetails, error)
	Nearby(ctx context.Context, viewer domain.GeoPoint, radiusMeters float64) ([]domain.CafeSummary, error)
}

type ReviewServiceInterface interface {
	Create(ctx context.Context, cafeID, authorID, authorEmail string, input ReviewInput) (*domain.LocalReview, error)
	ListByCafe(ctx context.Context, cafeID string) ([]domain.LocalReview, error)
	Update(ctx context.Context, userID, reviewID string, input ReviewInput) (*domain.LocalReview, error)
	Delete(ctx context.Context, userID, reviewID string) error
	RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error)
}

type FavoriteServiceInterface interface {
	Toggle(ctx context.Context, userID, cafeID, cafeName string) (bool, error)
	IsFavorite(ctx context.Context, userID, cafeID string) (bool, error)
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type ScheduleServiceInterface interface {
	Add(ctx context.Context, userID, cafeID, cafeName string, visitAt time.Time) (*domain.Schedule, error)
	Remove(ctx context.Context, userID, scheduleID string) error
	ListForCafe(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error)
}

type ListingSource interface {
	GetListing(ctx context.Context, id string) (*domain.ExternalListing, error)
	SearchNearby(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.ExternalListing, error)
}

type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.ExternalListing, error)
	SetListing(ctx context.Context, listing domain.ExternalListing) error
}

type ReviewReader interface {
	ListByCafe(ctx context.Context, cafeID string) ([]domain.LocalReview, error)
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, review *domain.LocalReview) error
	GetReview(ctx context.Context, id string) (*domain.LocalReview, error)
	UpdateReview(ctx context.Context, review *domain.LocalReview) error
	DeleteReview(ctx context.Context, id string) error
	ListCafeReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, error)
	RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error)
}

type ReviewCache interface {
	GetReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, bool, error)
	SetReviews(ctx context.Context, cafeID string, reviews []domain.LocalReview) error
	InvalidateReviews(ctx context.Context, cafeID string) error
}

type ReviewPublisher interface {
	PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error
}

type FavoriteRepository interface {
	IsFavorite(ctx context.Context, userID, cafeID string) (bool, error)
	AddFavorite(ctx context.Context, fav *domain.Favorite) error
	RemoveFavorite(ctx context.Context, userID, cafeID string) error
	ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type ScheduleRepository interface {
	InsertSchedule(ctx context.Context, schedule *domain.Schedule) error
	GetSchedule(ctx context.Context, id string) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	ListSchedules(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error)
}

type VisitPublisher interface {
	PublishVisitEvent(ctx context.Context, event domain.VisitEvent) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type QRGenerator interface {
	Generate(cafeID string) ([]byte, error)
}

var (
	_ CafeServiceInterface     = (*CafeService)(nil)
	_ ReviewServiceInterface   = (*ReviewService)(nil)
	_ FavoriteServiceInterface = (*FavoriteService)(nil)
	_ ScheduleServiceInterface = (*ScheduleService)(nil)
	_ ReviewReader             = (*ReviewService)(nil)

	_ ListingSource      = (*storage.ListingClient)(nil)
	_ ListingCache       = (*storage.RedisCache)(nil)
	_ ReviewCache        = (*storage.RedisCache)(nil)
	_ ReviewRepository   = (*storage.PostgresRepository)(nil)
	_ FavoriteRepository = (*storage.PostgresRepository)(nil)
	_ ScheduleRepository = (*storage.PostgresRepository)(nil)
	_ ReviewPublisher    = (*storage.KafkaPublisher)(nil)
	_ VisitPublisher     = (*storage.KafkaPublisher)(nil)
	_ MessageReader      = (*kafka.Reader)(nil)
	_ QRGenerator        = DefaultQRGenerator{}
)
