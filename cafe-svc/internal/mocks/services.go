package mocks

import (
	"context"
	"time"

	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type CafeServiceInterface struct {
	mock.Mock
}

func NewCafeServiceInterface(t testingT) *CafeServiceInterface {
	m := &CafeServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *CafeServiceInterface) Details(ctx context.Context, cafeID string, viewer *domain.GeoPoint) (*domain.CafeDetails, error) {
	ret := m.Called(ctx, cafeID, viewer)
	details, _ := ret.Get(0).(*domain.CafeDetails)
	return details, ret.Error(1)
}

func (m *CafeServiceInterface) Nearby(ctx context.Context, viewer domain.GeoPoint, radiusMeters float64) ([]domain.CafeSummary, error) {
	ret := m.Called(ctx, viewer, radiusMeters)
	cafes, _ := ret.Get(0).([]domain.CafeSummary)
	return cafes, ret.Error(1)
}

type ReviewServiceInterface struct {
	mock.Mock
}

func NewReviewServiceInterface(t testingT) *ReviewServiceInterface {
	m := &ReviewServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewServiceInterface) Create(ctx context.Context, cafeID, authorID, authorEmail string, input service.ReviewInput) (*domain.LocalReview, error) {
	ret := m.Called(ctx, cafeID, authorID, authorEmail, input)
	review, _ := ret.Get(0).(*domain.LocalReview)
	return review, ret.Error(1)
}

func (m *ReviewServiceInterface) ListByCafe(ctx context.Context, cafeID string) ([]domain.LocalReview, error) {
	ret := m.Called(ctx, cafeID)
	reviews, _ := ret.Get(0).([]domain.LocalReview)
	return reviews, ret.Error(1)
}

func (m *ReviewServiceInterface) Update(ctx context.Context, userID, reviewID string, input service.ReviewInput) (*domain.LocalReview, error) {
	ret := m.Called(ctx, userID, reviewID, input)
	review, _ := ret.Get(0).(*domain.LocalReview)
	return review, ret.Error(1)
}

func (m *ReviewServiceInterface) Delete(ctx context.Context, userID, reviewID string) error {
	return m.Called(ctx, userID, reviewID).Error(0)
}

func (m *ReviewServiceInterface) RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error) {
	ret := m.Called(ctx, cafeID)
	distribution, _ := ret.Get(0).(map[string]int)
	return distribution, ret.Error(1)
}

type FavoriteServiceInterface struct {
	mock.Mock
}

func NewFavoriteServiceInterface(t testingT) *FavoriteServiceInterface {
	m := &FavoriteServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *FavoriteServiceInterface) Toggle(ctx context.Context, userID, cafeID, cafeName string) (bool, error) {
	ret := m.Called(ctx, userID, cafeID, cafeName)
	return ret.Bool(0), ret.Error(1)
}

func (m *FavoriteServiceInterface) IsFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	ret := m.Called(ctx, userID, cafeID)
	return ret.Bool(0), ret.Error(1)
}

func (m *FavoriteServiceInterface) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ret := m.Called(ctx, userID)
	favorites, _ := ret.Get(0).([]domain.Favorite)
	return favorites, ret.Error(1)
}

type ScheduleServiceInterface struct {
	mock.Mock
}

func NewScheduleServiceInterface(t testingT) *ScheduleServiceInterface {
	m := &ScheduleServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *ScheduleServiceInterface) Add(ctx context.Context, userID, cafeID, cafeName string, visitAt time.Time) (*domain.Schedule, error) {
	ret := m.Called(ctx, userID, cafeID, cafeName, visitAt)
	schedule, _ := ret.Get(0).(*domain.Schedule)
	return schedule, ret.Error(1)
}

func (m *ScheduleServiceInterface) Remove(ctx context.Context, userID, scheduleID string) error {
	return m.Called(ctx, userID, scheduleID).Error(0)
}

func (m *ScheduleServiceInterface) ListForCafe(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error) {
	ret := m.Called(ctx, userID, cafeID)
	schedules, _ := ret.Get(0).([]domain.Schedule)
	return schedules, ret.Error(1)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *QRGenerator) Generate(cafeID string) ([]byte, error) {
	ret := m.Called(cafeID)
	png, _ := ret.Get(0).([]byte)
	return png, ret.Error(1)
}

var (
	_ service.CafeServiceInterface     = (*CafeServiceInterface)(nil)
	_ service.ReviewServiceInterface   = (*ReviewServiceInterface)(nil)
	_ service.FavoriteServiceInterface = (*FavoriteServiceInterface)(nil)
	_ service.ScheduleServiceInterface = (*ScheduleServiceInterface)(nil)
	_ service.QRGenerator              = (*QRGenerator)(nil)
)
