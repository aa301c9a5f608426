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

// CreateReviewInput is the payload for reviewing a place. The author is
// always the acting user.
type CreateReviewInput struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
}

// UpdateReviewInput carries a partial review update. Nil fields are left
// untouched; the author and place can never change.
type UpdateReviewInput struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// ReviewServiceProvider defines the interface for review services.
type ReviewServiceProvider interface {
	Create(ctx context.Context, actor policy.Actor, input CreateReviewInput) (models.Review, error)
	GetByID(ctx context.Context, id string) (models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]models.Review, error)
	Update(ctx context.Context, actor policy.Actor, id string, input UpdateReviewInput) (models.Review, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

// ReviewService provides business logic for reviews.
type ReviewService struct {
	reviews storage.ReviewStore
	places  storage.PlaceStore
	events  EventServiceProvider
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews storage.ReviewStore, places storage.PlaceStore, events EventServiceProvider) *ReviewService {
	return &ReviewService{reviews: reviews, places: places, events: events}
}

// Create records a review. Owners cannot review their own place and each
// user gets a single review per place.
func (s *ReviewService) Create(ctx context.Context, actor policy.Actor, input CreateReviewInput) (models.Review, error) {
	if d := policy.RequireAuthenticated(actor); !d.Allowed {
		return models.Review{}, denyError(actor, d)
	}

	place, err := s.places.GetByID(ctx, input.PlaceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Review{}, apperrors.NewNotFoundError("place not found")
		}
		return models.Review{}, apperrors.NewInternalError("failed to look up place", err)
	}

	alreadyReviewed := true
	if _, err := s.reviews.GetByUserAndPlace(ctx, actor.ID, place.ID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.Review{}, apperrors.NewInternalError("failed to look up review", err)
		}
		alreadyReviewed = false
	}

	if d := policy.CanCreateReview(actor, place.OwnerID, alreadyReviewed); !d.Allowed {
		return models.Review{}, denyError(actor, d)
	}

	review := models.Review{
		Base:    models.Base{ID: uuid.New().String()},
		Text:    strings.TrimSpace(input.Text),
		Rating:  input.Rating,
		UserID:  actor.ID,
		PlaceID: place.ID,
	}
	if err := review.Validate(); err != nil {
		return models.Review{}, err
	}

	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Review{}, apperrors.NewForbiddenError(string(policy.ReasonDuplicateReview), "you have already reviewed this place")
		}
		return models.Review{}, apperrors.NewInternalError("failed to create review", err)
	}

	s.events.CreateEvent(ctx, "review.create", "info", fmt.Sprintf("Review for place '%s' was posted.", place.Title), &review.ID)
	return review, nil
}

// GetByID retrieves a single review.
func (s *ReviewService) GetByID(ctx context.Context, id string) (models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Review{}, apperrors.NewNotFoundError("review not found")
		}
		return models.Review{}, apperrors.NewInternalError("failed to look up review", err)
	}
	return *review, nil
}

// List retrieves all reviews.
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// ListByPlace retrieves the reviews of one place, oldest first.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	if _, err := s.places.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("place not found")
		}
		return nil, apperrors.NewInternalError("failed to look up place", err)
	}

	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// Update applies a partial update to a review written by the actor, or to
// any review when the actor is an admin.
func (s *ReviewService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateReviewInput) (models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Review{}, apperrors.NewNotFoundError("review not found")
		}
		return models.Review{}, apperrors.NewInternalError("failed to look up review", err)
	}

	if d := policy.CanModify(actor, review); !d.Allowed {
		return models.Review{}, denyError(actor, d)
	}

	if input.Text != nil {
		review.Text = strings.TrimSpace(*input.Text)
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if err := review.Validate(); err != nil {
		return models.Review{}, err
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Review{}, apperrors.NewNotFoundError("review not found")
		}
		return models.Review{}, apperrors.NewInternalError("failed to update review", err)
	}

	s.events.CreateEvent(ctx, "review.update", "info", "A review was updated.", &review.ID)
	return *review, nil
}

// Delete removes a review written by the actor, or any review when the
// actor is an admin.
func (s *ReviewService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("review not found")
		}
		return apperrors.NewInternalError("failed to look up review", err)
	}

	if d := policy.CanModify(actor, review); !d.Allowed {
		return denyError(actor, d)
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("review not found")
		}
		return apperrors.NewInternalError("failed to delete review", err)
	}

	s.events.CreateEvent(ctx, "review.delete", "warn", "A review was deleted.", nil)
	return nil
}
