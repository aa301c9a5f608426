package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/storage"
)

func newUser(id, email string) *models.User {
	return &models.User{
		Base:      models.Base{ID: id},
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}
}

func newPlace(id, ownerID string, price float64) *models.Place {
	return &models.Place{
		Base:    models.Base{ID: id},
		Title:   "Place " + id,
		Price:   price,
		OwnerID: ownerID,
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	t.Run("create and fetch", func(t *testing.T) {
		user := newUser("u1", "alice@example.com")
		require.NoError(t, store.Users().Create(ctx, user))
		require.False(t, user.CreatedAt.IsZero())
		require.Equal(t, user.CreatedAt, user.UpdatedAt)

		got, err := store.Users().GetByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)

		byEmail, err := store.Users().GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", byEmail.ID)
	})

	t.Run("duplicate email is rejected regardless of case", func(t *testing.T) {
		err := store.Users().Create(ctx, newUser("u2", "ALICE@example.com"))
		require.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("update refreshes timestamp and keeps creation time", func(t *testing.T) {
		user, err := store.Users().GetByID(ctx, "u1")
		require.NoError(t, err)
		created := user.CreatedAt

		user.FirstName = "Alice"
		require.NoError(t, store.Users().Update(ctx, user))
		require.Equal(t, created, user.CreatedAt)
		require.True(t, user.UpdatedAt.After(created) || user.UpdatedAt.Equal(created))

		got, err := store.Users().GetByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "Alice", got.FirstName)
	})

	t.Run("update to a taken email conflicts", func(t *testing.T) {
		require.NoError(t, store.Users().Create(ctx, newUser("u3", "bob@example.com")))

		user, err := store.Users().GetByID(ctx, "u3")
		require.NoError(t, err)
		user.Email = "alice@example.com"
		require.ErrorIs(t, store.Users().Update(ctx, user), storage.ErrDuplicate)
	})

	t.Run("missing records return the sentinel", func(t *testing.T) {
		_, err := store.Users().GetByID(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.ErrorIs(t, store.Users().Delete(ctx, "nope"), storage.ErrNotFound)
		require.ErrorIs(t, store.Users().Update(ctx, newUser("nope", "x@example.com")), storage.ErrNotFound)
	})

	t.Run("delete is idempotent after the first call", func(t *testing.T) {
		require.NoError(t, store.Users().Create(ctx, newUser("gone", "gone@example.com")))
		require.NoError(t, store.Users().Delete(ctx, "gone"))
		require.ErrorIs(t, store.Users().Delete(ctx, "gone"), storage.ErrNotFound)
		require.ErrorIs(t, store.Users().Delete(ctx, "gone"), storage.ErrNotFound)
	})
}

func TestPlaceStoreFiltering(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Users().Create(ctx, newUser("owner1", "o1@example.com")))
	require.NoError(t, store.Users().Create(ctx, newUser("owner2", "o2@example.com")))
	require.NoError(t, store.Places().Create(ctx, newPlace("p1", "owner1", 50)))
	require.NoError(t, store.Places().Create(ctx, newPlace("p2", "owner1", 150)))
	require.NoError(t, store.Places().Create(ctx, newPlace("p3", "owner2", 100)))

	require.NoError(t, store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a1"}, Name: "WiFi"}))
	require.NoError(t, store.Places().SetAmenities(ctx, "p2", []string{"a1"}))

	t.Run("no filter returns everything", func(t *testing.T) {
		places, err := store.Places().List(ctx, storage.PlaceFilter{})
		require.NoError(t, err)
		require.Len(t, places, 3)
	})

	t.Run("by owner", func(t *testing.T) {
		places, err := store.Places().List(ctx, storage.PlaceFilter{OwnerID: "owner1"})
		require.NoError(t, err)
		require.Len(t, places, 2)
	})

	t.Run("by price range", func(t *testing.T) {
		min, max := 60.0, 120.0
		places, err := store.Places().List(ctx, storage.PlaceFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Len(t, places, 1)
		require.Equal(t, "p3", places[0].ID)
	})

	t.Run("by amenity", func(t *testing.T) {
		places, err := store.Places().List(ctx, storage.PlaceFilter{AmenityID: "a1"})
		require.NoError(t, err)
		require.Len(t, places, 1)
		require.Equal(t, "p2", places[0].ID)
	})

	t.Run("amenity ids round trip", func(t *testing.T) {
		ids, err := store.Places().AmenityIDs(ctx, "p2")
		require.NoError(t, err)
		require.Equal(t, []string{"a1"}, ids)

		ids, err = store.Places().AmenityIDs(ctx, "p1")
		require.NoError(t, err)
		require.Empty(t, ids)
	})
}

func TestReviewStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Users().Create(ctx, newUser("u1", "u1@example.com")))
	require.NoError(t, store.Users().Create(ctx, newUser("u2", "u2@example.com")))
	require.NoError(t, store.Places().Create(ctx, newPlace("p1", "u1", 10)))

	first := &models.Review{Base: models.Base{ID: "r1"}, Text: "nice", Rating: 5, UserID: "u2", PlaceID: "p1"}
	require.NoError(t, store.Reviews().Create(ctx, first))

	t.Run("second review for same pair conflicts", func(t *testing.T) {
		dup := &models.Review{Base: models.Base{ID: "r2"}, Text: "again", Rating: 3, UserID: "u2", PlaceID: "p1"}
		require.ErrorIs(t, store.Reviews().Create(ctx, dup), storage.ErrDuplicate)
	})

	t.Run("lookup by pair", func(t *testing.T) {
		got, err := store.Reviews().GetByUserAndPlace(ctx, "u2", "p1")
		require.NoError(t, err)
		require.Equal(t, "r1", got.ID)

		_, err = store.Reviews().GetByUserAndPlace(ctx, "u1", "p1")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list by place", func(t *testing.T) {
		reviews, err := store.Reviews().ListByPlace(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, reviews, 1)
	})
}

func TestCascades(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a place removes its reviews and associations", func(t *testing.T) {
		store := New()
		require.NoError(t, store.Users().Create(ctx, newUser("host", "h@example.com")))
		require.NoError(t, store.Users().Create(ctx, newUser("guest", "g@example.com")))
		require.NoError(t, store.Places().Create(ctx, newPlace("p1", "host", 10)))
		require.NoError(t, store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a1"}, Name: "Pool"}))
		require.NoError(t, store.Places().SetAmenities(ctx, "p1", []string{"a1"}))
		require.NoError(t, store.Reviews().Create(ctx, &models.Review{Base: models.Base{ID: "r1"}, Text: "ok", Rating: 4, UserID: "guest", PlaceID: "p1"}))

		require.NoError(t, store.Places().Delete(ctx, "p1"))

		_, err := store.Reviews().GetByID(ctx, "r1")
		require.ErrorIs(t, err, storage.ErrNotFound)
		reviews, err := store.Reviews().List(ctx)
		require.NoError(t, err)
		require.Empty(t, reviews)
	})

	t.Run("deleting a user removes their places and reviews", func(t *testing.T) {
		store := New()
		require.NoError(t, store.Users().Create(ctx, newUser("host", "h@example.com")))
		require.NoError(t, store.Users().Create(ctx, newUser("guest", "g@example.com")))
		require.NoError(t, store.Places().Create(ctx, newPlace("p1", "host", 10)))
		require.NoError(t, store.Reviews().Create(ctx, &models.Review{Base: models.Base{ID: "r1"}, Text: "ok", Rating: 4, UserID: "guest", PlaceID: "p1"}))

		require.NoError(t, store.Users().Delete(ctx, "guest"))
		_, err := store.Reviews().GetByID(ctx, "r1")
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, store.Users().Delete(ctx, "host"))
		_, err = store.Places().GetByID(ctx, "p1")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("deleting an amenity strips it from places", func(t *testing.T) {
		store := New()
		require.NoError(t, store.Users().Create(ctx, newUser("host", "h@example.com")))
		require.NoError(t, store.Places().Create(ctx, newPlace("p1", "host", 10)))
		require.NoError(t, store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a1"}, Name: "Pool"}))
		require.NoError(t, store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a2"}, Name: "WiFi"}))
		require.NoError(t, store.Places().SetAmenities(ctx, "p1", []string{"a1", "a2"}))

		require.NoError(t, store.Amenities().Delete(ctx, "a1"))
		ids, err := store.Places().AmenityIDs(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, []string{"a2"}, ids)
	})
}

func TestAmenityNameUniqueness(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a1"}, Name: "WiFi"}))
	err := store.Amenities().Create(ctx, &models.Amenity{Base: models.Base{ID: "a2"}, Name: "WiFi"})
	require.ErrorIs(t, err, storage.ErrDuplicate)

	got, err := store.Amenities().GetByName(ctx, "WiFi")
	require.NoError(t, err)
	require.Equal(t, "a1", got.ID)
}

func TestEventStoreRecency(t *testing.T) {
	ctx := context.Background()
	store := New()

	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, store.Events().Create(ctx, &models.Event{ID: id, Type: "test", Level: "info", Message: id}))
	}

	events, err := store.Events().ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "e3", events[0].ID)
	require.Equal(t, "e2", events[1].ID)

	events, err = store.Events().ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
}
