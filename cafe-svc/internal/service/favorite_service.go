package service

import (
	"context"
	"time"

	"sipspotter/cafe-svc/internal/domain"
)

type FavoriteService struct {
	repository FavoriteRepository
}

func NewFavoriteService(repository FavoriteRepository) *FavoriteService {
	return &FavoriteService{repository: repository}
}

// Toggle adds the café to the user's favorites, or removes it if already
// there, and reports whether it is a favorite afterwards.
func (s *FavoriteService) Toggle(ctx context.Context, userID, cafeID, cafeName string) (bool, error) {
	if cafeID == "" {
		return false, ErrMissingCafe
	}

	exists, err := s.repository.IsFavorite(ctx, userID, cafeID)
	if err != nil {
		return false, err
	}

	if exists {
		return false, s.repository.RemoveFavorite(ctx, userID, cafeID)
	}

	err = s.repository.AddFavorite(ctx, &domain.Favorite{
		UserID:    userID,
		CafeID:    cafeID,
		CafeName:  cafeName,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	return s.repository.IsFavorite(ctx, userID, cafeID)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.repository.ListFavorites(ctx, userID)
}
