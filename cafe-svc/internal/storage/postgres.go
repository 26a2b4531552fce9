package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sipspotter/cafe-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const reviewColumns = `id, cafe_id, author_id, COALESCE(author_email, ''), rating, review_text, photo_urls, created_at, edited, edited_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (domain.LocalReview, error) {
	var (
		rev      domain.LocalReview
		photos   pq.StringArray
		editedAt sql.NullTime
	)
	err := row.Scan(&rev.ID, &rev.CafeID, &rev.AuthorID, &rev.AuthorEmail, &rev.Rating,
		&rev.ReviewText, &photos, &rev.CreatedAt, &rev.Edited, &editedAt)
	if err != nil {
		return rev, err
	}
	rev.PhotoURLs = domain.NormalizePhotoURLs(photos, "")
	if editedAt.Valid {
		t := editedAt.Time
		rev.EditedAt = &t
	}
	return rev, nil
}

func (r *PostgresRepository) InsertReview(ctx context.Context, review *domain.LocalReview) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (id, cafe_id, author_id, author_email, rating, review_text, photo_urls, created_at, edited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
	`, review.ID, review.CafeID, review.AuthorID, review.AuthorEmail, review.Rating,
		review.ReviewText, pq.Array(review.PhotoURLs), review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// GetReview returns nil without an error when the review does not exist.
func (r *PostgresRepository) GetReview(ctx context.Context, id string) (*domain.LocalReview, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &rev, nil
}

func (r *PostgresRepository) UpdateReview(ctx context.Context, review *domain.LocalReview) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $1, review_text = $2, photo_urls = $3, edited = true, edited_at = $4
		WHERE id = $5
	`, review.Rating, review.ReviewText, pq.Array(review.PhotoURLs), review.EditedAt, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListCafeReviews(ctx context.Context, cafeID string) ([]domain.LocalReview, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE cafe_id = $1
		ORDER BY created_at DESC
	`, cafeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.LocalReview{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			continue
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) RatingDistribution(ctx context.Context, cafeID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rating, COUNT(*) as count
		FROM reviews
		WHERE cafe_id = $1
		GROUP BY rating
		ORDER BY rating
	`, cafeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			continue
		}
		distribution[strconv.Itoa(rating)] = count
	}
	return distribution, nil
}

func (r *PostgresRepository) IsFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND cafe_id = $2)
	`, userID, cafeID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) AddFavorite(ctx context.Context, fav *domain.Favorite) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO favorites (user_id, cafe_id, cafe_name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, cafe_id) DO NOTHING
	`, fav.UserID, fav.CafeID, fav.CafeName, fav.CreatedAt)
	return err
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, cafeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND cafe_id = $2`, userID, cafeID)
	return err
}

func (r *PostgresRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, cafe_id, cafe_name, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.UserID, &fav.CafeID, &fav.CafeName, &fav.CreatedAt); err != nil {
			continue
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

func (r *PostgresRepository) InsertSchedule(ctx context.Context, schedule *domain.Schedule) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO schedules (id, user_id, cafe_id, cafe_name, visit_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schedule.ID, schedule.UserID, schedule.CafeID, schedule.CafeName, schedule.VisitAt, schedule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// GetSchedule returns nil without an error when the schedule does not exist.
func (r *PostgresRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	var s domain.Schedule
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, cafe_id, cafe_name, visit_at, created_at
		FROM schedules
		WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.CafeID, &s.CafeName, &s.VisitAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) DeleteSchedule(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListSchedules(ctx context.Context, userID, cafeID string) ([]domain.Schedule, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, cafe_id, cafe_name, visit_at, created_at
		FROM schedules
		WHERE user_id = $1 AND cafe_id = $2
		ORDER BY visit_at ASC
	`, userID, cafeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []domain.Schedule{}
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.UserID, &s.CafeID, &s.CafeName, &s.VisitAt, &s.CreatedAt); err != nil {
			continue
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Schema is applied at startup; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS reviews (
	id           TEXT PRIMARY KEY,
	cafe_id      TEXT NOT NULL,
	author_id    TEXT NOT NULL,
	author_email TEXT,
	rating       INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	review_text  TEXT NOT NULL,
	photo_urls   TEXT[] NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	edited       BOOLEAN NOT NULL DEFAULT false,
	edited_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS reviews_cafe_id_idx ON reviews (cafe_id);

CREATE TABLE IF NOT EXISTS favorites (
	user_id    TEXT NOT NULL,
	cafe_id    TEXT NOT NULL,
	cafe_name  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, cafe_id)
);

CREATE TABLE IF NOT EXISTS schedules (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	cafe_id    TEXT NOT NULL,
	cafe_name  TEXT NOT NULL,
	visit_at   TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err := r.DB.ExecContext(ctx, Schema)
	return err
}
