package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avenn/stayfinder-be/internal/auth"
	"github.com/avenn/stayfinder-be/internal/services"
)

// AmenityHandler handles HTTP requests for the amenity catalog.
type AmenityHandler struct {
	service services.AmenityServiceProvider
}

// NewAmenityHandler creates a new AmenityHandler.
func NewAmenityHandler(service services.AmenityServiceProvider) *AmenityHandler {
	return &AmenityHandler{service: service}
}

// GetAll handles listing the catalog.
func (h *AmenityHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenities)
}

// Get handles retrieving an amenity by its ID.
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenity)
}

// Create handles adding an amenity to the catalog.
func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.AmenityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amenity, err := h.service.Create(r.Context(), auth.ActorFromContext(r.Context()), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, amenity)
}

// Update handles renaming an amenity.
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.AmenityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amenity, err := h.service.Update(r.Context(), auth.ActorFromContext(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenity)
}
