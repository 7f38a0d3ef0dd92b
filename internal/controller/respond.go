package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors to HTTP statuses. Not-found and
// validation errors carry their own message; anything else is a 500 with
// a generic body.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case appErrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case appErrors.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
