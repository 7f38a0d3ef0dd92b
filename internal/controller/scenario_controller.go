package controller

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

type ScenarioController struct {
	Scenarios *service.ScenarioService
	Plans     *service.PlanService
	Objectifs *service.ObjectifService
	Cibles    *service.CibleService
}

func (c *ScenarioController) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	scenario, err := c.Scenarios.Create(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, scenario)
}

func (c *ScenarioController) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scenarios []service.ScenarioInput `json:"scenarios"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	scenarios, err := c.Scenarios.CreateBatch(req.Scenarios)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}

func (c *ScenarioController) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	scenarios, err := c.Scenarios.List(limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}

func (c *ScenarioController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	detail, err := c.Scenarios.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (c *ScenarioController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	if err := c.Scenarios.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ScenarioController) AddObjectif(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
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
	objectif, err := c.Scenarios.AddObjectif(id, req.Label, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, objectif)
}

func (c *ScenarioController) AddCible(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
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
	cible, err := c.Scenarios.AddCible(id, req.Label, req.Persona, req.Segment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cible)
}

func (c *ScenarioController) AddRessource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	var req struct {
		Type  string  `json:"type"`
		Titre string  `json:"titre"`
		URL   *string `json:"url"`
		Note  *string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ressource, err := c.Scenarios.AddRessource(id, req.Type, req.Titre, req.URL, req.Note)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ressource)
}

// GeneratePlan builds a diffusion plan. With ?regenerate=true the current
// plan is replaced.
func (c *ScenarioController) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	regenerate := r.URL.Query().Get("regenerate") == "true"

	result, err := c.Plans.GeneratePlan(r.Context(), id, regenerate)
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

func (c *ScenarioController) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	plan, err := c.Plans.GetLatest(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if plan == nil {
		respondError(w, http.StatusNotFound, "no plan for this scenario")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// Export dumps the scenario with its latest plan, as JSON by default or
// as a CSV of the plan items with ?format=csv.
func (c *ScenarioController) Export(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	detail, err := c.Scenarios.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	plan, err := c.Plans.GetLatest(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		respondJSON(w, http.StatusOK, map[string]any{
			"scenario": detail,
			"plan":     plan,
		})
		return
	}
	if format != "csv" {
		respondError(w, http.StatusBadRequest, "unsupported format "+format)
		return
	}

	if plan == nil {
		respondError(w, http.StatusNotFound, "no plan for this scenario")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scenario_%d_plan.csv", id))
	cw := csv.NewWriter(w)
	cw.Write([]string{"format", "message", "canal", "frequence", "kpi"})
	for _, it := range plan.Items {
		cw.Write([]string{it.Format, it.Message, it.Canal, strOrEmpty(it.Frequence), strOrEmpty(it.KPI)})
	}
	cw.Flush()
}

// SuggestObjectifs returns AI objective suggestions, excluding labels
// already in the catalog.
func (c *ScenarioController) SuggestObjectifs(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	suggestions, err := c.Objectifs.SuggestForScenario(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// SuggestCibles returns AI target suggestions for the scenario.
func (c *ScenarioController) SuggestCibles(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario id")
		return
	}
	suggestions, err := c.Cibles.SuggestForScenario(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
