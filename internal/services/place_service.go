package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/policy"
	"github.com/avenn/stayfinder-be/internal/storage"
)

// CreatePlaceInput is the payload for listing a new place. The owner is
// always the acting user.
type CreatePlaceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	AmenityIDs  []string `json:"amenity_ids"`
}

// UpdatePlaceInput carries a partial place update. Nil fields are left
// untouched; a non-nil AmenityIDs replaces the whole association.
type UpdatePlaceInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	AmenityIDs  *[]string `json:"amenity_ids"`
}

// PlaceServiceProvider defines the interface for place services.
type PlaceServiceProvider interface {
	Create(ctx context.Context, actor policy.Actor, input CreatePlaceInput) (models.Place, error)
	GetByID(ctx context.Context, id string) (models.Place, error)
	List(ctx context.Context, filter storage.PlaceFilter) ([]models.Place, error)
	Update(ctx context.Context, actor policy.Actor, id string, input UpdatePlaceInput) (models.Place, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

// PlaceService provides business logic for rental places.
type PlaceService struct {
	places    storage.PlaceStore
	amenities storage.AmenityStore
	events    EventServiceProvider
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(places storage.PlaceStore, amenities storage.AmenityStore, events EventServiceProvider) *PlaceService {
	return &PlaceService{places: places, amenities: amenities, events: events}
}

// Create lists a new place owned by the acting user.
func (s *PlaceService) Create(ctx context.Context, actor policy.Actor, input CreatePlaceInput) (models.Place, error) {
	if d := policy.RequireAuthenticated(actor); !d.Allowed {
		return models.Place{}, denyError(actor, d)
	}

	place := models.Place{
		Base:        models.Base{ID: uuid.New().String()},
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		OwnerID:     actor.ID,
	}
	if err := place.Validate(); err != nil {
		return models.Place{}, err
	}

	amenityIDs, err := s.checkAmenityIDs(ctx, input.AmenityIDs)
	if err != nil {
		return models.Place{}, err
	}

	if err := s.places.Create(ctx, &place); err != nil {
		return models.Place{}, apperrors.NewInternalError("failed to create place", err)
	}
	if len(amenityIDs) > 0 {
		if err := s.places.SetAmenities(ctx, place.ID, amenityIDs); err != nil {
			return models.Place{}, apperrors.NewInternalError("failed to attach amenities", err)
		}
	}

	if err := s.attachAmenities(ctx, &place); err != nil {
		return models.Place{}, err
	}

	s.events.CreateEvent(ctx, "place.create", "info", fmt.Sprintf("Place '%s' was listed.", place.Title), &place.ID)
	return place, nil
}

// GetByID retrieves a place with its amenities resolved.
func (s *PlaceService) GetByID(ctx context.Context, id string) (models.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Place{}, apperrors.NewNotFoundError("place not found")
		}
		return models.Place{}, apperrors.NewInternalError("failed to look up place", err)
	}

	if err := s.attachAmenities(ctx, place); err != nil {
		return models.Place{}, err
	}
	return *place, nil
}

// List retrieves places matching the filter. Amenities are not resolved on
// the list view; clients fetch a single place for the full detail.
func (s *PlaceService) List(ctx context.Context, filter storage.PlaceFilter) ([]models.Place, error) {
	places, err := s.places.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	return places, nil
}

// Update applies a partial update to a place owned by the actor, or to any
// place when the actor is an admin.
func (s *PlaceService) Update(ctx context.Context, actor policy.Actor, id string, input UpdatePlaceInput) (models.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Place{}, apperrors.NewNotFoundError("place not found")
		}
		return models.Place{}, apperrors.NewInternalError("failed to look up place", err)
	}

	if d := policy.CanModify(actor, place); !d.Allowed {
		return models.Place{}, denyError(actor, d)
	}

	if input.Title != nil {
		place.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		place.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		place.Price = *input.Price
	}
	if input.Latitude != nil {
		place.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		place.Longitude = *input.Longitude
	}
	if err := place.Validate(); err != nil {
		return models.Place{}, err
	}

	if input.AmenityIDs != nil {
		amenityIDs, err := s.checkAmenityIDs(ctx, *input.AmenityIDs)
		if err != nil {
			return models.Place{}, err
		}
		if err := s.places.SetAmenities(ctx, place.ID, amenityIDs); err != nil {
			return models.Place{}, apperrors.NewInternalError("failed to attach amenities", err)
		}
	}

	if err := s.places.Update(ctx, place); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Place{}, apperrors.NewNotFoundError("place not found")
		}
		return models.Place{}, apperrors.NewInternalError("failed to update place", err)
	}

	if err := s.attachAmenities(ctx, place); err != nil {
		return models.Place{}, err
	}

	s.events.CreateEvent(ctx, "place.update", "info", fmt.Sprintf("Place '%s' was updated.", place.Title), &place.ID)
	return *place, nil
}

// Delete removes a place. Its reviews and amenity associations go with it.
func (s *PlaceService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("place not found")
		}
		return apperrors.NewInternalError("failed to look up place", err)
	}

	if d := policy.CanModify(actor, place); !d.Allowed {
		return denyError(actor, d)
	}

	if err := s.places.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("place not found")
		}
		return apperrors.NewInternalError("failed to delete place", err)
	}

	s.events.CreateEvent(ctx, "place.delete", "warn", fmt.Sprintf("Place '%s' was permanently deleted.", place.Title), nil)
	return nil
}

// checkAmenityIDs deduplicates the ids and verifies each one exists.
func (s *PlaceService) checkAmenityIDs(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	checked := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := s.amenities.GetByID(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, apperrors.NewValidationError("amenity_ids", fmt.Sprintf("unknown amenity: %s", id))
			}
			return nil, apperrors.NewInternalError("failed to look up amenity", err)
		}
		checked = append(checked, id)
	}
	return checked, nil
}

// attachAmenities resolves the place's amenity association into the model.
func (s *PlaceService) attachAmenities(ctx context.Context, place *models.Place) error {
	ids, err := s.places.AmenityIDs(ctx, place.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to load amenities", err)
	}

	place.AmenityIDs = ids
	place.Amenities = make([]models.Amenity, 0, len(ids))
	for _, id := range ids {
		amenity, err := s.amenities.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return apperrors.NewInternalError("failed to load amenities", err)
		}
		place.Amenities = append(place.Amenities, *amenity)
	}
	return nil
}
