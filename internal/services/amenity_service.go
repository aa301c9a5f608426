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

// AmenityInput is the payload for creating or renaming an amenity.
type AmenityInput struct {
	Name string `json:"name"`
}

// AmenityServiceProvider defines the interface for amenity services.
type AmenityServiceProvider interface {
	Create(ctx context.Context, actor policy.Actor, input AmenityInput) (models.Amenity, error)
	GetByID(ctx context.Context, id string) (models.Amenity, error)
	List(ctx context.Context) ([]models.Amenity, error)
	Update(ctx context.Context, actor policy.Actor, id string, input AmenityInput) (models.Amenity, error)
}

// AmenityService provides business logic for the amenity catalog. The
// catalog is curated by admins; reading it is public.
type AmenityService struct {
	amenities storage.AmenityStore
	events    EventServiceProvider
}

// NewAmenityService creates a new AmenityService.
func NewAmenityService(amenities storage.AmenityStore, events EventServiceProvider) *AmenityService {
	return &AmenityService{amenities: amenities, events: events}
}

// Create adds an amenity to the catalog. Names are unique.
func (s *AmenityService) Create(ctx context.Context, actor policy.Actor, input AmenityInput) (models.Amenity, error) {
	if d := policy.RequireAdmin(actor); !d.Allowed {
		return models.Amenity{}, denyError(actor, d)
	}

	amenity := models.Amenity{
		Base: models.Base{ID: uuid.New().String()},
		Name: strings.TrimSpace(input.Name),
	}
	if err := amenity.Validate(); err != nil {
		return models.Amenity{}, err
	}

	// Optimistic pre-check; the store's unique constraint is the backstop.
	if _, err := s.amenities.GetByName(ctx, amenity.Name); err == nil {
		return models.Amenity{}, apperrors.NewConflictError("amenity already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Amenity{}, apperrors.NewInternalError("failed to look up amenity", err)
	}

	if err := s.amenities.Create(ctx, &amenity); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Amenity{}, apperrors.NewConflictError("amenity already exists")
		}
		return models.Amenity{}, apperrors.NewInternalError("failed to create amenity", err)
	}

	s.events.CreateEvent(ctx, "amenity.create", "info", fmt.Sprintf("Amenity '%s' was added to the catalog.", amenity.Name), &amenity.ID)
	return amenity, nil
}

// GetByID retrieves a single amenity.
func (s *AmenityService) GetByID(ctx context.Context, id string) (models.Amenity, error) {
	amenity, err := s.amenities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Amenity{}, apperrors.NewNotFoundError("amenity not found")
		}
		return models.Amenity{}, apperrors.NewInternalError("failed to look up amenity", err)
	}
	return *amenity, nil
}

// List retrieves the full catalog.
func (s *AmenityService) List(ctx context.Context) ([]models.Amenity, error) {
	amenities, err := s.amenities.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list amenities", err)
	}
	return amenities, nil
}

// Update renames an amenity.
func (s *AmenityService) Update(ctx context.Context, actor policy.Actor, id string, input AmenityInput) (models.Amenity, error) {
	if d := policy.RequireAdmin(actor); !d.Allowed {
		return models.Amenity{}, denyError(actor, d)
	}

	amenity, err := s.amenities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Amenity{}, apperrors.NewNotFoundError("amenity not found")
		}
		return models.Amenity{}, apperrors.NewInternalError("failed to look up amenity", err)
	}

	amenity.Name = strings.TrimSpace(input.Name)
	if err := amenity.Validate(); err != nil {
		return models.Amenity{}, err
	}

	if err := s.amenities.Update(ctx, amenity); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Amenity{}, apperrors.NewConflictError("amenity already exists")
		}
		if errors.Is(err, storage.ErrNotFound) {
			return models.Amenity{}, apperrors.NewNotFoundError("amenity not found")
		}
		return models.Amenity{}, apperrors.NewInternalError("failed to update amenity", err)
	}

	s.events.CreateEvent(ctx, "amenity.update", "info", fmt.Sprintf("Amenity '%s' was renamed.", amenity.Name), &amenity.ID)
	return *amenity, nil
}
