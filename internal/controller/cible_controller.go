package controller

import (
	"encoding/json"
	"net/http"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

type CibleController struct {
	Cibles *service.CibleService
}

func (c *CibleController) List(w http.ResponseWriter, r *http.Request) {
	cibles, err := c.Cibles.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"cibles": cibles,
		"count":  len(cibles),
	})
}

func (c *CibleController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label   string  `json:"label"`
		Persona *string `json:"persona"`
		Segment *string `json:"segment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cible, err := c.Cibles.Create(req.Label, req.Persona, req.Segment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cible)
}
