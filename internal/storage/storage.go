// Package storage defines the persistence contracts the service layer is
// written against. A SQLite store and an in-memory store implement them,
// and callers must not be able to tell the two apart: both translate their
// native failures into the sentinel errors below, both maintain entity
// timestamps, and both cascade deletes across relationships the same way.
package storage

import (
	"context"
	"errors"

	"github.com/avenn/stayfinder-be/internal/models"
)

// ErrNotFound signals that no record matches the given identifier.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate signals a uniqueness-constraint violation.
var ErrDuplicate = errors.New("duplicate record")

// PlaceFilter narrows PlaceStore.List results. The zero value matches every
// place; price bounds are inclusive.
type PlaceFilter struct {
	OwnerID   string
	AmenityID string
	MinPrice  *float64
	MaxPrice  *float64
}

// UserStore persists user accounts. Emails are stored lowercase and are
// unique case-insensitively; GetByEmail expects a normalized address.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// PlaceStore persists places and their amenity associations. Deleting a
// place removes its reviews and associations.
type PlaceStore interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id string) (*models.Place, error)
	List(ctx context.Context, filter PlaceFilter) ([]models.Place, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id string) error

	// SetAmenities replaces the amenity set associated with a place.
	SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error

	// AmenityIDs returns the ids of the amenities associated with a place.
	AmenityIDs(ctx context.Context, placeID string) ([]string, error)
}

// ReviewStore persists reviews. The (user, place) pair is unique; Create
// reports ErrDuplicate when a second review would violate it.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*models.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}

// AmenityStore persists amenities, unique by name.
type AmenityStore interface {
	Create(ctx context.Context, amenity *models.Amenity) error
	GetByID(ctx context.Context, id string) (*models.Amenity, error)
	GetByName(ctx context.Context, name string) (*models.Amenity, error)
	List(ctx context.Context) ([]models.Amenity, error)
	Update(ctx context.Context, amenity *models.Amenity) error
	Delete(ctx context.Context, id string) error
}

// EventStore persists the audit trail.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
}
