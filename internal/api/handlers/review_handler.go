package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avenn/stayfinder-be/internal/auth"
	"github.com/avenn/stayfinder-be/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service services.ReviewServiceProvider
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service services.ReviewServiceProvider) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// GetAll handles listing every review.
func (h *ReviewHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// Get handles retrieving a review by its ID.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// GetByPlace handles listing the reviews of one place.
func (h *ReviewHandler) GetByPlace(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// Create handles posting a review authored by the caller.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.Create(r.Context(), auth.ActorFromContext(r.Context()), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

// Update handles revisions by the author or an admin.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.Update(r.Context(), auth.ActorFromContext(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// Delete handles removing a review.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), auth.ActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
