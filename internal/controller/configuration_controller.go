package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

type ConfigurationController struct {
	Configurations *service.ConfigurationService
	Plans          *service.PlanService
}

func (c *ConfigurationController) Create(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	var req struct {
		Nom string `json:"nom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	configuration, err := c.Configurations.Create(scenarioID, req.Nom)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, configuration)
}

func (c *ConfigurationController) ListByScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	configurations, err := c.Configurations.ListByScenario(scenarioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"configurations": configurations,
		"count":          len(configurations),
	})
}

func (c *ConfigurationController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	detail, err := c.Configurations.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	canCreatePlan := len(detail.Objectifs) > 0 && len(detail.Cibles) > 0
	respondJSON(w, http.StatusOK, map[string]any{
		"configuration":   detail,
		"can_create_plan": canCreatePlan,
	})
}

func (c *ConfigurationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	if err := c.Configurations.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ConfigurationController) AddObjectif(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	var req struct {
		Label       string  `json:"label"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	objectif, err := c.Configurations.AddObjectif(id, req.Label, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, objectif)
}

func (c *ConfigurationController) RemoveObjectif(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	objectifID, err := strconv.Atoi(chi.URLParam(r, "objectif_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid objectif id")
		return
	}
	if err := c.Configurations.RemoveObjectif(id, objectifID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ConfigurationController) AddCible(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	var req struct {
		Label   string  `json:"label"`
		Persona *string `json:"persona"`
		Segment *string `json:"segment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cible, err := c.Configurations.AddCible(id, req.Label, req.Persona, req.Segment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cible)
}

func (c *ConfigurationController) RemoveCible(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	cibleID, err := strconv.Atoi(chi.URLParam(r, "cible_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cible id")
		return
	}
	if err := c.Configurations.RemoveCible(id, cibleID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GeneratePlan builds the editorial plan of articles for a configuration.
func (c *ConfigurationController) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid configuration id")
		return
	}
	result, err := c.Plans.GeneratePlanWithArticles(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	switch {
	case result.Success:
		respondJSON(w, http.StatusCreated, result)
	case len(result.Missing) > 0:
		respondJSON(w, http.StatusBadRequest, result)
	default:
		respondJSON(w, http.StatusServiceUnavailable, result)
	}
}
