package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
	"github.com/silenusdev/assistant-marketing/internal/repository"
)

const (
	defaultHistoryLimit = 10
	contextHistorySize  = 5
)

// Canned user messages substituted when the frontend triggers an action
// button instead of typing.
var actionMessages = map[string]string{
	"add_objective":      "Je veux ajouter un objectif à mon scénario.",
	"suggest_targets":    "Propose-moi des cibles pertinentes pour mon scénario.",
	"add_target":         "Je veux ajouter une cible à mon scénario.",
	"add_resource":       "Je veux ajouter une ressource existante.",
	"generate_plan":      "Génère-moi un plan de diffusion marketing complet.",
	"search_inspiration": "Recherche des inspirations pour mon scénario.",
}

// ChatResult is the orchestrator response. It always carries a displayable
// message, even when something broke internally.
type ChatResult struct {
	Message          string              `json:"message"`
	Actions          []ai.Action         `json:"actions"`
	EntitiesToCreate []ai.EntityToCreate `json:"entities_to_create"`
	ScenarioState    *ScenarioState      `json:"scenario_state,omitempty"`
	Errors           []string            `json:"errors,omitempty"`
	Error            string              `json:"error,omitempty"`
}

// ScenarioState is the snapshot of the active scenario echoed back with
// each turn so the frontend stays in sync.
type ScenarioState struct {
	Scenario   model.Scenario    `json:"scenario"`
	Objectifs  []model.Objectif  `json:"objectifs"`
	Cibles     []model.Cible     `json:"cibles"`
	Ressources []model.Ressource `json:"ressources"`
}

type ChatService struct {
	Scenarios repository.ScenarioRepositoryInterface
	Messages  repository.MessageRepositoryInterface
	Client    CompletionClient
	Logger    *zap.Logger
	TTLDays   int
}

// ProcessMessage runs one conversation turn. It never returns an error:
// any internal failure is folded into a result the frontend can display.
func (s *ChatService) ProcessMessage(ctx context.Context, scenarioID *int, message, intent string) *ChatResult {
	var state *ScenarioState
	if scenarioID != nil {
		loaded, err := s.loadState(*scenarioID)
		if err != nil {
			if appErrors.IsNotFound(err) {
				return &ChatResult{
					Message: "Scénario introuvable.",
					Actions: []ai.Action{},
					Error:   "Scenario not found",
				}
			}
			s.Logger.Error("load scenario state", zap.Int("scenario_id", *scenarioID), zap.Error(err))
			return &ChatResult{
				Message: "Une erreur est survenue lors du traitement de votre message.",
				Actions: []ai.Action{},
				Error:   err.Error(),
			}
		}
		state = loaded
	}

	// The history window is read before the turn is persisted so the
	// message being answered never shows up in its own context.
	var history []model.Message
	if scenarioID != nil {
		history = s.recentHistory(*scenarioID)
	}

	// Turns without a scenario are answered but never persisted.
	if scenarioID != nil {
		s.saveMessage(scenarioID, model.AuteurUser, message, nil)
	}

	response := s.complete(ctx, state, message, intent, history)

	if scenarioID != nil {
		s.saveMessage(scenarioID, model.AuteurAssistant, response.MessageMarkdown, roleActionOrNil(intent))
	}

	return &ChatResult{
		Message:          response.MessageMarkdown,
		Actions:          response.Actions,
		EntitiesToCreate: response.EntitiesToCreate,
		ScenarioState:    state,
		Errors:           response.Errors,
	}
}

// ProcessAction handles an action button click. The action type maps to a
// canned user message, a system note is recorded, then the turn runs like
// a typed message with the action type as intent.
func (s *ChatService) ProcessAction(ctx context.Context, scenarioID int, actionType string, payload json.RawMessage) *ChatResult {
	state, err := s.loadState(scenarioID)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return &ChatResult{
				Message: "Scénario introuvable.",
				Actions: []ai.Action{},
				Error:   "Scenario not found",
			}
		}
		s.Logger.Error("load scenario state", zap.Int("scenario_id", scenarioID), zap.Error(err))
		return &ChatResult{
			Message: "Une erreur est survenue lors du traitement de l'action.",
			Actions: []ai.Action{},
			Error:   err.Error(),
		}
	}

	message := actionMessages[actionType]
	if message == "" {
		message = "Action: " + actionType
	}

	label := payloadLabel(payload)
	if label != "" {
		message += " (" + label + ")"
	}

	history := s.recentHistory(scenarioID)

	note := "Action déclenchée: " + actionType
	if label != "" {
		note = "Action déclenchée: " + label
	}
	s.saveMessage(&scenarioID, model.AuteurSystem, note, &actionType)

	s.saveMessage(&scenarioID, model.AuteurUser, message, &actionType)

	response := s.complete(ctx, state, message, actionType, history)

	s.saveMessage(&scenarioID, model.AuteurAssistant, response.MessageMarkdown, &actionType)

	return &ChatResult{
		Message:          response.MessageMarkdown,
		Actions:          response.Actions,
		EntitiesToCreate: response.EntitiesToCreate,
		ScenarioState:    state,
		Errors:           response.Errors,
	}
}

// History returns the transcript of a scenario in chronological order.
func (s *ChatService) History(scenarioID, limit int) ([]model.Message, error) {
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	messages, err := s.Messages.ListRecent(scenarioID, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// AvailableActions lists the action buttons offered for a scenario. Plan
// generation only appears once the scenario has an objective, a target
// and a resource.
func (s *ChatService) AvailableActions(scenarioID int) ([]ai.Action, error) {
	state, err := s.loadState(scenarioID)
	if err != nil {
		return nil, err
	}

	actions := []ai.Action{
		{ID: "add_objective", Label: "Ajouter un objectif", Type: "add_objective"},
		{ID: "suggest_targets", Label: "Proposer des cibles", Type: "suggest_targets"},
		{ID: "add_resource", Label: "Ajouter une ressource", Type: "add_resource"},
	}
	if len(state.Objectifs) > 0 && len(state.Cibles) > 0 && len(state.Ressources) > 0 {
		actions = append(actions, ai.Action{ID: "generate_plan", Label: "Générer le plan marketing", Type: "generate_plan"})
	}
	actions = append(actions, ai.Action{ID: "search_inspiration", Label: "Rechercher des inspirations", Type: "search_inspiration"})
	return actions, nil
}

func (s *ChatService) complete(ctx context.Context, state *ScenarioState, message, intent string, history []model.Message) *ai.ChatResponse {
	contextBlock := ""
	if state != nil {
		snap := ai.ContextSnapshot{
			ScenarioNom: state.Scenario.Nom,
			Thematique:  state.Scenario.Thematique,
			Statut:      state.Scenario.Statut,
		}
		for _, o := range state.Objectifs {
			snap.Objectifs = append(snap.Objectifs, o.Label)
		}
		for _, c := range state.Cibles {
			snap.Cibles = append(snap.Cibles, ai.FormatCible(c.Label, strValue(c.Segment)))
		}
		for _, re := range state.Ressources {
			snap.Ressources = append(snap.Ressources, ai.FormatRessource(re.Titre, re.Type))
		}
		for i := len(history) - 1; i >= 0; i-- {
			snap.Historique = append(snap.Historique, ai.HistoryEntry{Auteur: history[i].Auteur, Contenu: history[i].Contenu})
		}
		contextBlock = ai.FormatContext(snap)
	}

	response, err := s.Client.CompleteChat(ctx, ai.BuildSystemPrompt(intent), message, contextBlock)
	if err != nil {
		s.Logger.Error("chat completion failed", zap.String("intent", intent), zap.Error(err))
		return ai.Fallback(fmt.Sprintf("Erreur IA: %v", err))
	}
	return response
}

// recentHistory fetches the last turns used as model context. A fetch
// failure degrades to an empty window rather than failing the turn.
func (s *ChatService) recentHistory(scenarioID int) []model.Message {
	history, err := s.Messages.ListRecent(scenarioID, contextHistorySize)
	if err != nil {
		s.Logger.Warn("load chat history for context", zap.Int("scenario_id", scenarioID), zap.Error(err))
		return nil
	}
	return history
}

func (s *ChatService) loadState(scenarioID int) (*ScenarioState, error) {
	scenario, err := s.Scenarios.GetByID(scenarioID)
	if err != nil {
		return nil, err
	}
	objectifs, err := s.Scenarios.ListObjectifs(scenarioID)
	if err != nil {
		return nil, err
	}
	cibles, err := s.Scenarios.ListCibles(scenarioID)
	if err != nil {
		return nil, err
	}
	ressources, err := s.Scenarios.ListRessources(scenarioID)
	if err != nil {
		return nil, err
	}
	return &ScenarioState{
		Scenario:   *scenario,
		Objectifs:  objectifs,
		Cibles:     cibles,
		Ressources: ressources,
	}, nil
}

// saveMessage persists a conversation message with its retention TTL.
// Persistence failures are logged, not surfaced: losing a transcript row
// must not break the turn.
func (s *ChatService) saveMessage(scenarioID *int, auteur, contenu string, roleAction *string) {
	if contenu == "" {
		return
	}
	ttl := time.Now().UTC().AddDate(0, 0, s.TTLDays)
	m := &model.Message{
		ScenarioID: scenarioID,
		Auteur:     auteur,
		Contenu:    contenu,
		RoleAction: roleAction,
		TTL:        &ttl,
	}
	if err := s.Messages.Append(m); err != nil {
		s.Logger.Error("persist message", zap.String("auteur", auteur), zap.Error(err))
	}
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func roleActionOrNil(intent string) *string {
	if intent == "" {
		return nil
	}
	return &intent
}

func payloadLabel(payload json.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	var p struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	return p.Label
}
