package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenn/stayfinder-be/internal/apperrors"
)

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	user := User{
		Base:         Base{ID: "u1"},
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Alice",
		LastName:     "Smith",
		IsAdmin:      true,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret")
	require.NotContains(t, string(raw), "password")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "alice@example.com", decoded["email"])
	require.Equal(t, true, decoded["is_admin"])
}

func TestUserValidate(t *testing.T) {
	valid := User{Base: Base{ID: "u1"}, Email: "a@example.com", FirstName: "A", LastName: "B"}
	require.NoError(t, valid.Validate())

	t.Run("bad email", func(t *testing.T) {
		user := valid
		user.Email = "nope"
		err := user.Validate()
		appErr := apperrors.From(err)
		require.Equal(t, apperrors.TypeValidation, appErr.Type)
		require.Equal(t, "email", appErr.Field)
	})

	t.Run("missing name", func(t *testing.T) {
		user := valid
		user.LastName = ""
		err := user.Validate()
		require.Equal(t, "last_name", apperrors.From(err).Field)
	})
}

func TestPlaceValidate(t *testing.T) {
	valid := Place{
		Base:      Base{ID: "p1"},
		Title:     "Loft",
		Price:     50,
		Latitude:  40.0,
		Longitude: -74.0,
		OwnerID:   "u1",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name  string
		mod   func(*Place)
		field string
	}{
		{"missing title", func(p *Place) { p.Title = "" }, "title"},
		{"negative price", func(p *Place) { p.Price = -0.01 }, "price"},
		{"latitude too high", func(p *Place) { p.Latitude = 90.5 }, "latitude"},
		{"latitude too low", func(p *Place) { p.Latitude = -91 }, "latitude"},
		{"longitude too high", func(p *Place) { p.Longitude = 181 }, "longitude"},
		{"longitude too low", func(p *Place) { p.Longitude = -180.5 }, "longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			place := valid
			tc.mod(&place)
			err := place.Validate()
			appErr := apperrors.From(err)
			require.Equal(t, apperrors.TypeValidation, appErr.Type)
			require.Equal(t, tc.field, appErr.Field)
		})
	}

	t.Run("boundary coordinates pass", func(t *testing.T) {
		place := valid
		place.Latitude = 90
		place.Longitude = -180
		require.NoError(t, place.Validate())

		place.Latitude = -90
		place.Longitude = 180
		require.NoError(t, place.Validate())
	})

	t.Run("free place passes", func(t *testing.T) {
		place := valid
		place.Price = 0
		require.NoError(t, place.Validate())
	})
}

func TestReviewValidate(t *testing.T) {
	valid := Review{Base: Base{ID: "r1"}, Text: "Nice", Rating: 3, UserID: "u1", PlaceID: "p1"}
	require.NoError(t, valid.Validate())

	for _, rating := range []int{0, -1, 6} {
		review := valid
		review.Rating = rating
		err := review.Validate()
		require.Error(t, err)
		require.Equal(t, "rating", apperrors.From(err).Field)
	}

	for _, rating := range []int{1, 5} {
		review := valid
		review.Rating = rating
		require.NoError(t, review.Validate())
	}

	t.Run("missing text", func(t *testing.T) {
		review := valid
		review.Text = ""
		require.Equal(t, "text", apperrors.From(review.Validate()).Field)
	})
}

func TestAmenityValidate(t *testing.T) {
	amenity := Amenity{Base: Base{ID: "a1"}, Name: "WiFi"}
	require.NoError(t, amenity.Validate())

	amenity.Name = ""
	require.Equal(t, "name", apperrors.From(amenity.Validate()).Field)
}

func TestOwnershipAccessors(t *testing.T) {
	user := User{Base: Base{ID: "u1"}}
	require.Equal(t, "u1", user.ResourceOwnerID())

	place := Place{Base: Base{ID: "p1"}, OwnerID: "u1"}
	require.Equal(t, "u1", place.ResourceOwnerID())

	review := Review{Base: Base{ID: "r1"}, UserID: "u2"}
	require.Equal(t, "u2", review.ResourceOwnerID())
}
