package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/policy"
)

// respondWithJSON writes a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondWithError writes a JSON error body with the given status code.
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}

// respondWithAppError maps a facade error onto its HTTP status. Internal
// details are logged, never sent to the client.
func respondWithAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)

	if appErr == nil || appErr.Type == apperrors.TypeInternal {
		log.Error().Err(err).Msg("Request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	body := map[string]string{"error": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	respondWithJSON(w, httpStatus(appErr), body)
}

// httpStatus picks the status code for a facade error. Self-review and
// duplicate-review denials are client mistakes, not permission problems, so
// they map to 400 rather than 403.
func httpStatus(appErr *apperrors.AppError) int {
	switch appErr.Type {
	case apperrors.TypeValidation, apperrors.TypeConflict:
		return http.StatusBadRequest
	case apperrors.TypeAuth:
		return http.StatusUnauthorized
	case apperrors.TypeForbidden:
		switch appErr.Reason {
		case string(policy.ReasonSelfReview), string(policy.ReasonDuplicateReview):
			return http.StatusBadRequest
		}
		return http.StatusForbidden
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
