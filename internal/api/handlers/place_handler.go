package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avenn/stayfinder-be/internal/auth"
	"github.com/avenn/stayfinder-be/internal/services"
	"github.com/avenn/stayfinder-be/internal/storage"
)

// PlaceHandler handles HTTP requests for places.
type PlaceHandler struct {
	service services.PlaceServiceProvider
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service services.PlaceServiceProvider) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// GetAll handles the public place listing with optional filters:
// owner_id, amenity_id, min_price and max_price.
func (h *PlaceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := storage.PlaceFilter{
		OwnerID:   r.URL.Query().Get("owner_id"),
		AmenityID: r.URL.Query().Get("amenity_id"),
	}

	if raw := r.URL.Query().Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "min_price must be a number")
			return
		}
		filter.MinPrice = &value
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "max_price must be a number")
			return
		}
		filter.MaxPrice = &value
	}

	places, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, places)
}

// Get handles retrieving a place with its amenities.
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	place, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// Create handles listing a new place owned by the caller.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	place, err := h.service.Create(r.Context(), auth.ActorFromContext(r.Context()), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, place)
}

// Update handles partial updates by the owner or an admin.
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.UpdatePlaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	place, err := h.service.Update(r.Context(), auth.ActorFromContext(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// Delete handles removing a place and everything attached to it.
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), auth.ActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
