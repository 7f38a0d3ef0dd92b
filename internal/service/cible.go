package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
	"github.com/silenusdev/assistant-marketing/internal/repository"
)

type CibleService struct {
	Scenarios repository.ScenarioRepositoryInterface
	Cibles    repository.CibleRepositoryInterface
	Client    CompletionClient
	Logger    *zap.Logger
}

func (s *CibleService) List() ([]model.Cible, error) {
	return s.Cibles.ListAll()
}

func (s *CibleService) Create(label string, persona, segment *string) (*model.Cible, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	return s.Cibles.Upsert(label, persona, segment)
}

// SuggestForScenario asks the AI for targets fitting the scenario and its
// attached objectives. Catalog labels are passed as exclusions. Provider
// errors propagate to the caller.
func (s *CibleService) SuggestForScenario(ctx context.Context, scenarioID int) ([]ai.CibleSuggestion, error) {
	scenario, err := s.Scenarios.GetByID(scenarioID)
	if err != nil {
		return nil, err
	}
	objectifs, err := s.Scenarios.ListObjectifs(scenarioID)
	if err != nil {
		return nil, err
	}
	objectifLabels := make([]string, len(objectifs))
	for i, o := range objectifs {
		objectifLabels[i] = o.Label
	}

	existing, err := s.Cibles.ListAll()
	if err != nil {
		return nil, err
	}
	existingLabels := make([]string, len(existing))
	for i, c := range existing {
		existingLabels[i] = c.Label
	}

	description := ""
	if scenario.Description != nil {
		description = *scenario.Description
	}
	prompt := ai.BuildCibleSuggestionPrompt(scenario.Nom, scenario.Thematique, description, objectifLabels, existingLabels)

	suggestions, err := s.Client.CompleteCibleSuggestions(ctx, prompt)
	if err != nil {
		s.Logger.Error("cible suggestion failed", zap.Int("scenario_id", scenarioID), zap.Error(err))
		return nil, err
	}
	return suggestions, nil
}
