package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/storage"
)

const placeColumns = "id, title, description, price, latitude, longitude, owner_id, created_at, updated_at"

// PlaceStore persists places and their amenity associations in SQLite.
type PlaceStore struct {
	db *sql.DB
}

// NewPlaceStore creates a new PlaceStore.
func NewPlaceStore(db *sql.DB) *PlaceStore {
	return &PlaceStore{db: db}
}

func (s *PlaceStore) Create(ctx context.Context, place *models.Place) error {
	if place.CreatedAt.IsZero() {
		place.CreatedAt = time.Now().UTC()
	}
	place.UpdatedAt = place.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO places(id, title, description, price, latitude, longitude, owner_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		place.ID, place.Title, place.Description, place.Price, place.Latitude, place.Longitude, place.OwnerID, place.CreatedAt, place.UpdatedAt)
	return translateErr(err)
}

func (s *PlaceStore) GetByID(ctx context.Context, id string) (*models.Place, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+placeColumns+" FROM places WHERE id = ?", id)
	var place models.Place
	err := row.Scan(&place.ID, &place.Title, &place.Description, &place.Price, &place.Latitude, &place.Longitude, &place.OwnerID, &place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &place, nil
}

func (s *PlaceStore) List(ctx context.Context, filter storage.PlaceFilter) ([]models.Place, error) {
	query := "SELECT " + placeColumns + " FROM places"
	var (
		clauses []string
		args    []any
	)
	if filter.OwnerID != "" {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.AmenityID != "" {
		clauses = append(clauses, "id IN (SELECT place_id FROM place_amenity WHERE amenity_id = ?)")
		args = append(args, filter.AmenityID)
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	places := make([]models.Place, 0)
	for rows.Next() {
		var place models.Place
		if err := rows.Scan(&place.ID, &place.Title, &place.Description, &place.Price, &place.Latitude, &place.Longitude, &place.OwnerID, &place.CreatedAt, &place.UpdatedAt); err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}

func (s *PlaceStore) Update(ctx context.Context, place *models.Place) error {
	place.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		"UPDATE places SET title = ?, description = ?, price = ?, latitude = ?, longitude = ?, owner_id = ?, updated_at = ? WHERE id = ?",
		place.Title, place.Description, place.Price, place.Latitude, place.Longitude, place.OwnerID, place.UpdatedAt, place.ID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

// SetAmenities replaces the full amenity association of a place.
func (s *PlaceStore) SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM places WHERE id = ?", placeID).Scan(&exists); err != nil {
		return translateErr(err)
	}
	if exists == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM place_amenity WHERE place_id = ?", placeID); err != nil {
		return translateErr(err)
	}
	for _, amenityID := range amenityIDs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO place_amenity(place_id, amenity_id) VALUES(?, ?)", placeID, amenityID); err != nil {
			return translateErr(err)
		}
	}
	return tx.Commit()
}

// AmenityIDs returns the amenity ids associated with a place.
func (s *PlaceStore) AmenityIDs(ctx context.Context, placeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT amenity_id FROM place_amenity WHERE place_id = ?", placeID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
