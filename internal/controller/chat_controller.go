package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

type ChatController struct {
	Chat *service.ChatService
}

// PostChat is the single conversation entry point. The body carries
// either a typed message or an action type; actions always require a
// scenario.
func (c *ChatController) PostChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message    string          `json:"message"`
		Action     string          `json:"action"`
		Payload    json.RawMessage `json:"payload"`
		ScenarioID *int            `json:"scenario_id"`
		Intent     string          `json:"intent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" && req.Action == "" {
		respondError(w, http.StatusBadRequest, "message or action is required")
		return
	}

	if req.Action != "" {
		if req.ScenarioID == nil {
			respondError(w, http.StatusBadRequest, "scenario_id is required for actions")
			return
		}
		result := c.Chat.ProcessAction(r.Context(), *req.ScenarioID, req.Action, req.Payload)
		respondJSON(w, http.StatusOK, result)
		return
	}

	result := c.Chat.ProcessMessage(r.Context(), req.ScenarioID, req.Message, req.Intent)
	respondJSON(w, http.StatusOK, result)
}

// GetHistory returns the chronological transcript of a scenario.
func (c *ChatController) GetHistory(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := strconv.Atoi(chi.URLParam(r, "scenario_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario_id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	messages, err := c.Chat.History(scenarioID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"count":    len(messages),
	})
}

// GetActions lists the action buttons currently available for a scenario.
func (c *ChatController) GetActions(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := strconv.Atoi(chi.URLParam(r, "scenario_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scenario_id")
		return
	}
	actions, err := c.Chat.AvailableActions(scenarioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"actions": actions})
}
