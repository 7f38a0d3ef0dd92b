package service

import (
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
	"github.com/silenusdev/assistant-marketing/internal/repository"
)

// ScenarioInput is the payload for creating a scenario.
type ScenarioInput struct {
	Nom         string  `json:"nom"`
	Thematique  string  `json:"thematique"`
	Description *string `json:"description"`
}

type ScenarioService struct {
	Scenarios  repository.ScenarioRepositoryInterface
	Objectifs  repository.ObjectifRepositoryInterface
	Cibles     repository.CibleRepositoryInterface
	Ressources repository.RessourceRepositoryInterface
	Logger     *zap.Logger
}

func (s *ScenarioService) Create(input ScenarioInput) (*model.Scenario, error) {
	nom := strings.TrimSpace(input.Nom)
	thematique := strings.TrimSpace(input.Thematique)
	if nom == "" {
		return nil, appErrors.NewValidation("nom is required")
	}
	if thematique == "" {
		return nil, appErrors.NewValidation("thematique is required")
	}

	scenario := &model.Scenario{
		Nom:         nom,
		Thematique:  thematique,
		Description: input.Description,
		Statut:      model.StatutDraft,
	}
	if err := s.Scenarios.Create(scenario); err != nil {
		return nil, err
	}
	s.Logger.Info("scenario created", zap.Int("scenario_id", scenario.ID), zap.String("nom", scenario.Nom))
	return scenario, nil
}

// CreateBatch creates several scenarios in order. The whole batch is
// validated before any insert so a bad entry rejects the request.
func (s *ScenarioService) CreateBatch(inputs []ScenarioInput) ([]*model.Scenario, error) {
	if len(inputs) == 0 {
		return nil, appErrors.NewValidation("scenarios list is empty")
	}
	for i, input := range inputs {
		if strings.TrimSpace(input.Nom) == "" {
			return nil, appErrors.NewValidation("scenario %d: nom is required", i)
		}
		if strings.TrimSpace(input.Thematique) == "" {
			return nil, appErrors.NewValidation("scenario %d: thematique is required", i)
		}
	}

	scenarios := make([]*model.Scenario, 0, len(inputs))
	for _, input := range inputs {
		scenario, err := s.Create(input)
		if err != nil {
			return scenarios, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// Get returns the scenario with its attached objectives, targets and
// resources.
func (s *ScenarioService) Get(id int) (*model.ScenarioDetail, error) {
	scenario, err := s.Scenarios.GetByID(id)
	if err != nil {
		return nil, err
	}
	objectifs, err := s.Scenarios.ListObjectifs(id)
	if err != nil {
		return nil, err
	}
	cibles, err := s.Scenarios.ListCibles(id)
	if err != nil {
		return nil, err
	}
	ressources, err := s.Scenarios.ListRessources(id)
	if err != nil {
		return nil, err
	}
	return &model.ScenarioDetail{
		Scenario:   *scenario,
		Objectifs:  objectifs,
		Cibles:     cibles,
		Ressources: ressources,
	}, nil
}

func (s *ScenarioService) List(limit int) ([]*model.Scenario, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return s.Scenarios.List(limit)
}

func (s *ScenarioService) Delete(id int) error {
	return s.Scenarios.Delete(id)
}

// AddObjectif attaches an objective to the scenario, reusing an existing
// objective when the label is already known.
func (s *ScenarioService) AddObjectif(scenarioID int, label string, description *string) (*model.Objectif, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	objectif, err := s.Objectifs.Upsert(label, description)
	if err != nil {
		return nil, err
	}
	if err := s.Scenarios.AddObjectif(scenarioID, objectif.ID); err != nil {
		return nil, err
	}
	return objectif, nil
}

// AddCible attaches a target to the scenario, reusing an existing target
// when the label is already known.
func (s *ScenarioService) AddCible(scenarioID int, label string, persona, segment *string) (*model.Cible, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, appErrors.NewValidation("label is required")
	}
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	cible, err := s.Cibles.Upsert(label, persona, segment)
	if err != nil {
		return nil, err
	}
	if err := s.Scenarios.AddCible(scenarioID, cible.ID); err != nil {
		return nil, err
	}
	return cible, nil
}

// AddRessource creates a resource and attaches it to the scenario.
// Resources are never deduplicated.
func (s *ScenarioService) AddRessource(scenarioID int, typ, titre string, url, note *string) (*model.Ressource, error) {
	titre = strings.TrimSpace(titre)
	if titre == "" {
		return nil, appErrors.NewValidation("titre is required")
	}
	if !model.ValidRessourceType(typ) {
		return nil, appErrors.NewValidation("invalid ressource type %q", typ)
	}
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	ressource := &model.Ressource{Type: typ, Titre: titre, URL: url, Note: note}
	if err := s.Ressources.Create(ressource); err != nil {
		return nil, err
	}
	if err := s.Scenarios.AddRessource(scenarioID, ressource.ID); err != nil {
		return nil, err
	}
	return ressource, nil
}
