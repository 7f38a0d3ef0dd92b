package service

import (
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
	"github.com/silenusdev/assistant-marketing/internal/repository"
)

// ConfigurationService manages named objective/target groupings inside a
// scenario, used to drive editorial plan generation.
type ConfigurationService struct {
	Scenarios      repository.ScenarioRepositoryInterface
	Configurations repository.ConfigurationRepositoryInterface
	Objectifs      repository.ObjectifRepositoryInterface
	Cibles         repository.CibleRepositoryInterface
	Logger         *zap.Logger
}

func (s *ConfigurationService) Create(scenarioID int, nom string) (*model.Configuration, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return nil, appErrors.NewValidation("nom is required")
	}
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	configuration := &model.Configuration{ScenarioID: scenarioID, Nom: nom}
	if err := s.Configurations.Create(configuration); err != nil {
		return nil, err
	}
	return configuration, nil
}

func (s *ConfigurationService) Get(id int) (*model.ConfigurationDetail, error) {
	configuration, err := s.Configurations.GetByID(id)
	if err != nil {
		return nil, err
	}
	objectifs, err := s.Configurations.ListObjectifs(id)
	if err != nil {
		return nil, err
	}
	cibles, err := s.Configurations.ListCibles(id)
	if err != nil {
		return nil, err
	}
	return &model.ConfigurationDetail{
		Configuration: *configuration,
		Objectifs:     objectifs,
		Cibles:        cibles,
	}, nil
}

func (s *ConfigurationService) ListByScenario(scenarioID int) ([]model.Configuration, error) {
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	return s.Configurations.ListByScenario(scenarioID)
}

func (s *ConfigurationService) Delete(id int) error {
	return s.Configurations.Delete(id)
}

func (s *ConfigurationService) AddObjectif(configurationID int, label string, description *string) (*model.Objectif, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	if _, err := s.Configurations.GetByID(configurationID); err != nil {
		return nil, err
	}
	objectif, err := s.Objectifs.Upsert(label, description)
	if err != nil {
		return nil, err
	}
	if err := s.Configurations.AddObjectif(configurationID, objectif.ID); err != nil {
		return nil, err
	}
	return objectif, nil
}

func (s *ConfigurationService) RemoveObjectif(configurationID, objectifID int) error {
	if _, err := s.Configurations.GetByID(configurationID); err != nil {
		return err
	}
	return s.Configurations.RemoveObjectif(configurationID, objectifID)
}

func (s *ConfigurationService) AddCible(configurationID int, label string, persona, segment *string) (*model.Cible, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	if _, err := s.Configurations.GetByID(configurationID); err != nil {
		return nil, err
	}
	cible, err := s.Cibles.Upsert(label, persona, segment)
	if err != nil {
		return nil, err
	}
	if err := s.Configurations.AddCible(configurationID, cible.ID); err != nil {
		return nil, err
	}
	return cible, nil
}

func (s *ConfigurationService) RemoveCible(configurationID, cibleID int) error {
	if _, err := s.Configurations.GetByID(configurationID); err != nil {
		return err
	}
	return s.Configurations.RemoveCible(configurationID, cibleID)
}

// CanCreatePlan reports whether the configuration holds at least one
// objective and one target.
func (s *ConfigurationService) CanCreatePlan(id int) (bool, error) {
	detail, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return len(detail.Objectifs) > 0 && len(detail.Cibles) > 0, nil
}
