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

type ObjectifService struct {
	Scenarios repository.ScenarioRepositoryInterface
	Objectifs repository.ObjectifRepositoryInterface
	Client    CompletionClient
	Logger    *zap.Logger
}

func (s *ObjectifService) List() ([]model.Objectif, error) {
	return s.Objectifs.ListAll()
}

func (s *ObjectifService) Create(label string, description *string) (*model.Objectif, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	return s.Objectifs.Upsert(label, description)
}

// SuggestForScenario asks the AI for objectives tailored to the scenario.
// Every label already in the catalog is passed as an exclusion so the
// suggestions are new. Provider errors propagate to the caller.
func (s *ObjectifService) SuggestForScenario(ctx context.Context, scenarioID int) ([]ai.ObjectifSuggestion, error) {
	scenario, err := s.Scenarios.GetByID(scenarioID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Objectifs.ListAll()
	if err != nil {
		return nil, err
	}
	existingLabels := make([]string, len(existing))
	for i, o := range existing {
		existingLabels[i] = o.Label
	}

	description := ""
	if scenario.Description != nil {
		description = *scenario.Description
	}
	prompt := ai.BuildObjectifSuggestionPrompt(scenario.Nom, scenario.Thematique, description, existingLabels)

	suggestions, err := s.Client.CompleteObjectifSuggestions(ctx, prompt)
	if err != nil {
		s.Logger.Error("objectif suggestion failed", zap.Int("scenario_id", scenarioID), zap.Error(err))
		return nil, err
	}
	return suggestions, nil
}
