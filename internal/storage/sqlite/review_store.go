package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
)

const reviewColumns = "id, text, rating, user_id, place_id, created_at, updated_at"

// ReviewStore persists reviews in SQLite.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	review.UpdatedAt = review.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO reviews(id, text, rating, user_id, place_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		review.ID, review.Text, review.Rating, review.UserID, review.PlaceID, review.CreatedAt, review.UpdatedAt)
	return translateErr(err)
}

func (s *ReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id)
	return scanReview(row)
}

func (s *ReviewStore) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*models.Review, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE user_id = ? AND place_id = ?", userID, placeID)
	return scanReview(row)
}

func (s *ReviewStore) ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	return s.list(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE place_id = ? ORDER BY created_at, id", placeID)
}

func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	return s.list(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY created_at, id")
}

func (s *ReviewStore) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		"UPDATE reviews SET text = ?, rating = ?, user_id = ?, place_id = ?, updated_at = ? WHERE id = ?",
		review.Text, review.Rating, review.UserID, review.PlaceID, review.UpdatedAt, review.ID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func (s *ReviewStore) list(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Text, &review.Rating, &review.UserID, &review.PlaceID, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func scanReview(row *sql.Row) (*models.Review, error) {
	var review models.Review
	err := row.Scan(&review.ID, &review.Text, &review.Rating, &review.UserID, &review.PlaceID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &review, nil
}
