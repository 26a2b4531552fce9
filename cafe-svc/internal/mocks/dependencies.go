package mocks

import (
	"context"

	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type ListingSource struct {
	mock.Mock
}

func NewListingSource(t testingT) *ListingSource {
	m := &ListingSource{}
	register(&m.Mock, t)
	return m
}

func (m *ListingSource) GetListing(ctx context.Context, id string) (*domain.ExternalListing, error) {
	ret := m.Called(ctx, id)
	listing, _ := ret.Get(0).(*domain.ExternalListing)
	return listing, ret.Error(1)
}

func (m *ListingSource) SearchNearby(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.ExternalListing, error) {
	ret := m.Called(ctx, center, radiusMeters)
	listings, _ := ret.Get(0).([]domain.ExternalListing)
	return listings, ret.Error(1)
}

type ListingCache struct {
	mock.Mock
}

func NewListingCache(t testingT) *ListingCache {
	m := &ListingCache{}
	register(&m.Mock, t)
	return m
}

func (m *ListingCache) GetListing(ctx context.Context, id string) (*domain.ExternalListing, error) {
	ret := m.Called(ctx, id)
	listing, _ := ret.Get(0).(*domain.ExternalListing)
	return listing, ret.Error(1)
}

func (m *ListingCache) SetListing(ctx context.Context, listing domain.ExternalListing) error {
	return m.Called(ctx, listing).Error(0)
}

type ReviewReader struct {
	mock.Mock
}

func NewReviewReader(t testingT) *ReviewReader {
	m := &ReviewReader{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewReader) ListByCafe(ctx context.Context, cafeID string) ([]domain.LocalReview, error) {
	ret := m.Called(ctx, cafeID)
	reviews, _ := ret.Get(0).([]domain.LocalReview)
	return reviews, ret.Error(1)
}

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewRepository) InsertReview(ctx context.Context, review *domain.LocalReview) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) GetReview(ctx context.Context, id string) (*domain.LocalReview, error) {
	ret := m.Called(ctx, id)
	review, _ := ret.Get(0).(*domain.LocalReview)
	return review, ret.Error(1)
}

func (m *ReviewRepository) UpdateReview(ctx context.Context, review *domain.LocalReview) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReviewRepository) ListCafeReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, error) {
	ret := m.Called(ctx, cafeID)
	reviews, _ := ret.Get(0).([]domain.LocalReview)
	return reviews, ret.Error(1)
}

func (m *ReviewRepository) RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error) {
	ret := m.Called(ctx, cafeID)
	distribution, _ := ret.Get(0).(map[string]int)
	return distribution, ret.Error(1)
}

type ReviewCache struct {
	mock.Mock
}

func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewCache) GetReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, bool, error) {
	ret := m.Called(ctx, cafeID)
	reviews, _ := ret.Get(0).([]domain.LocalReview)
	return reviews, ret.Bool(1), ret.Error(2)
}

func (m *ReviewCache) SetReviews(ctx context.Context, cafeID string, reviews []domain.LocalReview) error {
	return m.Called(ctx, cafeID, reviews).Error(0)
}

func (m *ReviewCache) InvalidateReviews(ctx context.Context, cafeID string) error {
	return m.Called(ctx, cafeID).Error(0)
}

type ReviewPublisher struct {
	mock.Mock
}

func NewReviewPublisher(t testingT) *ReviewPublisher {
	m := &ReviewPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewPublisher) PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error {
	return m.Called(ctx, event).Error(0)
}

type FavoriteRepository struct {
	mock.Mock
}

func NewFavoriteRepository(t testingT) *FavoriteRepository {
	m := &FavoriteRepository{}
	register(&m.Mock, t)
	return m
}

func (m *FavoriteRepository) IsFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	ret := m.Called(ctx, userID, cafeID)
	return ret.Bool(0), ret.Error(1)
}

func (m *FavoriteRepository) AddFavorite(ctx context.Context, fav *domain.Favorite) error {
	return m.Called(ctx, fav).Error(0)
}

func (m *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, cafeID string) error {
	return m.Called(ctx, userID, cafeID).Error(0)
}

func (m *FavoriteRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ret := m.Called(ctx, userID)
	favorites, _ := ret.Get(0).([]domain.Favorite)
	return favorites, ret.Error(1)
}

type ScheduleRepository struct {
	mock.Mock
}

func NewScheduleRepository(t testingT) *ScheduleRepository {
	m := &ScheduleRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ScheduleRepository) InsertSchedule(ctx context.Context, schedule *domain.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *ScheduleRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	ret := m.Called(ctx, id)
	schedule, _ := ret.Get(0).(*domain.Schedule)
	return schedule, ret.Error(1)
}

func (m *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ScheduleRepository) ListSchedules(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error) {
	ret := m.Called(ctx, userID, cafeID)
	schedules, _ := ret.Get(0).([]domain.Schedule)
	return schedules, ret.Error(1)
}

type VisitPublisher struct {
	mock.Mock
}

func NewVisitPublisher(t testingT) *VisitPublisher {
	m := &VisitPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *VisitPublisher) PublishVisitEvent(ctx context.Context, event domain.VisitEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MessageReader struct {
	mock.Mock
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	register(&m.Mock, t)
	return m
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := m.Called(ctx)
	message, _ := ret.Get(0).(kafka.Message)
	return message, ret.Error(1)
}

var (
	_ service.ListingSource      = (*ListingSource)(nil)
	_ service.ListingCache       = (*ListingCache)(nil)
	_ service.ReviewReader       = (*ReviewReader)(nil)
	_ service.ReviewRepository   = (*ReviewRepository)(nil)
	_ service.ReviewCache        = (*ReviewCache)(nil)
	_ service.ReviewPublisher    = (*ReviewPublisher)(nil)
	_ service.FavoriteRepository = (*FavoriteRepository)(nil)
	_ service.ScheduleRepository = (*ScheduleRepository)(nil)
	_ service.VisitPublisher     = (*VisitPublisher)(nil)
	_ service.MessageReader      = (*MessageReader)(nil)
)
