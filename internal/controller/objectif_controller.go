package controller

import (
	"encoding/json"
	"net/http"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

type ObjectifController struct {
	Objectifs *service.ObjectifService
}

func (c *ObjectifController) List(w http.ResponseWriter, r *http.Request) {
	objectifs, err := c.Objectifs.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"objectifs": objectifs,
		"count":     len(objectifs),
	})
}

// Create upserts by label: posting an existing label returns the existing
// row.
func (c *ObjectifController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label       string  `json:"label"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	objectif, err := c.Objectifs.Create(req.Label, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, objectif)
}
