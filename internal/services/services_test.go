package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/policy"
	"github.com/avenn/stayfinder-be/internal/storage/memory"
)

// rootActor stands in for a bootstrapped admin in tests that need one.
var rootActor = policy.Actor{ID: "root", IsAdmin: true}

type testEnv struct {
	store     *memory.Store
	events    *EventService
	users     *UserService
	places    *PlaceService
	reviews   *ReviewService
	amenities *AmenityService
}

func newTestEnv() *testEnv {
	store := memory.New()
	events := NewEventService(store.Events())
	return &testEnv{
		store:     store,
		events:    events,
		users:     NewUserService(store.Users(), events),
		places:    NewPlaceService(store.Places(), store.Amenities(), events),
		reviews:   NewReviewService(store.Reviews(), store.Places(), events),
		amenities: NewAmenityService(store.Amenities(), events),
	}
}

func (e *testEnv) register(t *testing.T, email string) models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), RegisterUserInput{
		Email:     email,
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createAdmin(t *testing.T, email string) models.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), rootActor, CreateUserInput{
		Email:     email,
		Password:  "secret123",
		FirstName: "Admin",
		LastName:  "User",
		IsAdmin:   true,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createPlace(t *testing.T, actor policy.Actor, title string) models.Place {
	t.Helper()
	place, err := e.places.Create(context.Background(), actor, CreatePlaceInput{
		Title:     title,
		Price:     100,
		Latitude:  40.7,
		Longitude: -74.0,
	})
	require.NoError(t, err)
	return place
}

func actorFor(user models.User) policy.Actor {
	return policy.Actor{ID: user.ID, IsAdmin: user.IsAdmin}
}

func requireAppErr(t *testing.T, err error, want apperrors.ErrorType) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.From(err)
	require.NotNil(t, appErr)
	require.Equal(t, want, appErr.Type)
	return appErr
}
