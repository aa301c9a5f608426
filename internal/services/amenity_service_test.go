package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/policy"
)

func TestCreateAmenity(t *testing.T) {
	ctx := context.Background()

	t.Run("admins curate the catalog", func(t *testing.T) {
		env := newTestEnv()
		admin := env.createAdmin(t, "root@example.com")

		amenity, err := env.amenities.Create(ctx, actorFor(admin), AmenityInput{Name: " WiFi "})
		require.NoError(t, err)
		require.Equal(t, "WiFi", amenity.Name)
		require.NotEmpty(t, amenity.ID)
	})

	t.Run("regular users are denied", func(t *testing.T) {
		env := newTestEnv()
		alice := env.register(t, "alice@example.com")

		_, err := env.amenities.Create(ctx, actorFor(alice), AmenityInput{Name: "WiFi"})
		requireAppErr(t, err, apperrors.TypeForbidden)
	})

	t.Run("anonymous callers are asked to authenticate", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.amenities.Create(ctx, policy.Actor{}, AmenityInput{Name: "WiFi"})
		requireAppErr(t, err, apperrors.TypeAuth)
	})

	t.Run("names are unique", func(t *testing.T) {
		env := newTestEnv()
		admin := env.createAdmin(t, "root@example.com")
		actor := actorFor(admin)

		_, err := env.amenities.Create(ctx, actor, AmenityInput{Name: "WiFi"})
		require.NoError(t, err)

		_, err = env.amenities.Create(ctx, actor, AmenityInput{Name: "WiFi"})
		requireAppErr(t, err, apperrors.TypeConflict)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		env := newTestEnv()
		admin := env.createAdmin(t, "root@example.com")

		_, err := env.amenities.Create(ctx, actorFor(admin), AmenityInput{Name: "   "})
		appErr := requireAppErr(t, err, apperrors.TypeValidation)
		require.Equal(t, "name", appErr.Field)
	})
}

func TestUpdateAmenity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	admin := env.createAdmin(t, "root@example.com")
	actor := actorFor(admin)

	wifi, err := env.amenities.Create(ctx, actor, AmenityInput{Name: "WiFi"})
	require.NoError(t, err)
	_, err = env.amenities.Create(ctx, actor, AmenityInput{Name: "Pool"})
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		updated, err := env.amenities.Update(ctx, actor, wifi.ID, AmenityInput{Name: "Fast WiFi"})
		require.NoError(t, err)
		require.Equal(t, "Fast WiFi", updated.Name)
	})

	t.Run("rename onto an existing name conflicts", func(t *testing.T) {
		_, err := env.amenities.Update(ctx, actor, wifi.ID, AmenityInput{Name: "Pool"})
		requireAppErr(t, err, apperrors.TypeConflict)
	})

	t.Run("regular users are denied", func(t *testing.T) {
		alice := env.register(t, "alice@example.com")
		_, err := env.amenities.Update(ctx, actorFor(alice), wifi.ID, AmenityInput{Name: "Mine"})
		requireAppErr(t, err, apperrors.TypeForbidden)
	})

	t.Run("unknown amenity", func(t *testing.T) {
		_, err := env.amenities.Update(ctx, actor, "missing", AmenityInput{Name: "Sauna"})
		requireAppErr(t, err, apperrors.TypeNotFound)
	})
}

func TestReadAmenities(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	admin := env.createAdmin(t, "root@example.com")

	wifi, err := env.amenities.Create(ctx, actorFor(admin), AmenityInput{Name: "WiFi"})
	require.NoError(t, err)

	got, err := env.amenities.GetByID(ctx, wifi.ID)
	require.NoError(t, err)
	require.Equal(t, "WiFi", got.Name)

	_, err = env.amenities.GetByID(ctx, "missing")
	requireAppErr(t, err, apperrors.TypeNotFound)

	list, err := env.amenities.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
