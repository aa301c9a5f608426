package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
)

const amenityColumns = "id, name, created_at, updated_at"

// AmenityStore persists amenities in SQLite.
type AmenityStore struct {
	db *sql.DB
}

// NewAmenityStore creates a new AmenityStore.
func NewAmenityStore(db *sql.DB) *AmenityStore {
	return &AmenityStore{db: db}
}

func (s *AmenityStore) Create(ctx context.Context, amenity *models.Amenity) error {
	if amenity.CreatedAt.IsZero() {
		amenity.CreatedAt = time.Now().UTC()
	}
	amenity.UpdatedAt = amenity.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO amenities(id, name, created_at, updated_at) VALUES(?, ?, ?, ?)",
		amenity.ID, amenity.Name, amenity.CreatedAt, amenity.UpdatedAt)
	return translateErr(err)
}

func (s *AmenityStore) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+amenityColumns+" FROM amenities WHERE id = ?", id)
	return scanAmenity(row)
}

func (s *AmenityStore) GetByName(ctx context.Context, name string) (*models.Amenity, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+amenityColumns+" FROM amenities WHERE name = ?", name)
	return scanAmenity(row)
}

func (s *AmenityStore) List(ctx context.Context) ([]models.Amenity, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+amenityColumns+" FROM amenities ORDER BY created_at, id")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	amenities := make([]models.Amenity, 0)
	for rows.Next() {
		var amenity models.Amenity
		if err := rows.Scan(&amenity.ID, &amenity.Name, &amenity.CreatedAt, &amenity.UpdatedAt); err != nil {
			return nil, err
		}
		amenities = append(amenities, amenity)
	}
	return amenities, rows.Err()
}

func (s *AmenityStore) Update(ctx context.Context, amenity *models.Amenity) error {
	amenity.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		"UPDATE amenities SET name = ?, updated_at = ? WHERE id = ?",
		amenity.Name, amenity.UpdatedAt, amenity.ID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func (s *AmenityStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM amenities WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func scanAmenity(row *sql.Row) (*models.Amenity, error) {
	var amenity models.Amenity
	err := row.Scan(&amenity.ID, &amenity.Name, &amenity.CreatedAt, &amenity.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &amenity, nil
}
