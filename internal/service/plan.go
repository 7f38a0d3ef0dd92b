package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	"github.com/silenusdev/assistant-marketing/internal/events"
	"github.com/silenusdev/assistant-marketing/internal/model"
	"github.com/silenusdev/assistant-marketing/internal/repository"
)

const maxArticlesPerPlan = 5

// PlanResult reports the outcome of a plan generation request. A false
// Success with Missing set means the scenario is not ready; a false
// Success without Missing means the AI provider is unavailable.
type PlanResult struct {
	Success bool              `json:"success"`
	Plan    *model.PlanDetail `json:"plan,omitempty"`
	Error   string            `json:"error,omitempty"`
	Missing []string          `json:"missing,omitempty"`
}

type PlanService struct {
	Scenarios      repository.ScenarioRepositoryInterface
	Plans          repository.PlanRepositoryInterface
	Configurations repository.ConfigurationRepositoryInterface
	Client         CompletionClient
	Publisher      events.Publisher
	Logger         *zap.Logger
}

// GeneratePlan produces and persists a diffusion plan for the scenario.
// The scenario must hold at least one objective, one target and one
// resource; that is checked before any AI call. When regenerate is set,
// the existing plan is deleted first, so a provider failure after the
// delete leaves the scenario planless.
func (s *PlanService) GeneratePlan(ctx context.Context, scenarioID int, regenerate bool) (*PlanResult, error) {
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

	missing := []string{}
	if len(objectifs) == 0 {
		missing = append(missing, "objectifs")
	}
	if len(cibles) == 0 {
		missing = append(missing, "cibles")
	}
	if len(ressources) == 0 {
		missing = append(missing, "ressources")
	}
	if len(missing) > 0 {
		return &PlanResult{
			Success: false,
			Error:   "Le scénario doit avoir au moins un objectif, une cible et une ressource. Manquant: " + strings.Join(missing, ", "),
			Missing: missing,
		}, nil
	}

	if regenerate {
		existing, err := s.Plans.GetLatest(scenarioID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := s.Plans.Delete(existing.ID); err != nil {
				return nil, err
			}
		}
	}

	objectifLabels := make([]string, len(objectifs))
	for i, o := range objectifs {
		objectifLabels[i] = o.Label
	}
	cibleLabels := make([]string, len(cibles))
	for i, c := range cibles {
		cibleLabels[i] = ai.FormatCible(c.Label, strValue(c.Segment))
	}
	ressourceTitres := make([]string, len(ressources))
	for i, re := range ressources {
		ressourceTitres[i] = ai.FormatRessource(re.Titre, re.Type)
	}

	summary := ai.BuildContextSummary(scenario.Nom, scenario.Thematique, scenario.Statut, objectifLabels, cibleLabels, ressourceTitres)
	userMessage := "Génère un plan de diffusion marketing complet pour ce scénario.\n\n" +
		summary +
		"\n\nLe plan doit contenir entre 5 et 10 actions concrètes adaptées aux objectifs, cibles et ressources disponibles."

	generation, err := s.Client.CompletePlan(ctx, ai.BuildSystemPrompt("generate_plan"), userMessage)
	if err != nil {
		s.Logger.Error("plan completion failed", zap.Int("scenario_id", scenarioID), zap.Error(err))
		return &PlanResult{
			Success: false,
			Error:   "Impossible de générer le plan. Service IA indisponible.",
		}, nil
	}

	plan := &model.Plan{ScenarioID: scenarioID, Resume: &generation.Resume}
	items := make([]model.PlanItem, len(generation.Items))
	for i, it := range generation.Items {
		items[i] = model.PlanItem{
			Format:    it.Format,
			Message:   it.Message,
			Canal:     it.Canal,
			Frequence: it.Frequence,
			KPI:       it.KPI,
		}
	}
	if err := s.Plans.CreateWithItems(plan, items); err != nil {
		return nil, err
	}

	if err := s.Scenarios.UpdateStatut(scenarioID, model.StatutReady); err != nil {
		s.Logger.Warn("update scenario statut", zap.Int("scenario_id", scenarioID), zap.Error(err))
	}

	s.publish(events.PlanGenerated{
		PlanID:      plan.ID,
		ScenarioID:  scenarioID,
		ItemCount:   len(items),
		GeneratedAt: plan.GeneratedAt,
	})

	s.Logger.Info("plan generated",
		zap.Int("scenario_id", scenarioID),
		zap.Int("plan_id", plan.ID),
		zap.Int("item_count", len(items)))

	return &PlanResult{
		Success: true,
		Plan:    &model.PlanDetail{Plan: *plan, Items: items, Articles: []model.Article{}},
	}, nil
}

// GeneratePlanWithArticles produces an editorial plan of five articles
// from a configuration's objectives and targets. The plan is attached to
// the configuration's parent scenario.
func (s *PlanService) GeneratePlanWithArticles(ctx context.Context, configurationID int) (*PlanResult, error) {
	configuration, err := s.Configurations.GetByID(configurationID)
	if err != nil {
		return nil, err
	}
	scenario, err := s.Scenarios.GetByID(configuration.ScenarioID)
	if err != nil {
		return nil, err
	}

	objectifs, err := s.Configurations.ListObjectifs(configurationID)
	if err != nil {
		return nil, err
	}
	cibles, err := s.Configurations.ListCibles(configurationID)
	if err != nil {
		return nil, err
	}

	missing := []string{}
	if len(objectifs) == 0 {
		missing = append(missing, "objectifs")
	}
	if len(cibles) == 0 {
		missing = append(missing, "cibles")
	}
	if len(missing) > 0 {
		return &PlanResult{
			Success: false,
			Error:   "La configuration doit avoir au moins un objectif et une cible. Manquant: " + strings.Join(missing, ", "),
			Missing: missing,
		}, nil
	}

	objectifLabels := make([]string, len(objectifs))
	for i, o := range objectifs {
		objectifLabels[i] = o.Label
	}
	cibleLabels := make([]string, len(cibles))
	for i, c := range cibles {
		cibleLabels[i] = ai.FormatCible(c.Label, strValue(c.Segment))
	}

	description := ""
	if scenario.Description != nil {
		description = *scenario.Description
	}
	prompt := ai.BuildArticlePlanPrompt(scenario.Nom, scenario.Thematique, description, objectifLabels, cibleLabels)

	generation, err := s.Client.CompleteArticlePlan(ctx, prompt)
	if err != nil {
		s.Logger.Error("article plan completion failed", zap.Int("configuration_id", configurationID), zap.Error(err))
		return &PlanResult{
			Success: false,
			Error:   "Impossible de générer le plan. Service IA indisponible.",
		}, nil
	}

	suggestions := generation.Articles
	if len(suggestions) > maxArticlesPerPlan {
		suggestions = suggestions[:maxArticlesPerPlan]
	}

	plan := &model.Plan{ScenarioID: scenario.ID, ConfigurationID: &configuration.ID, Resume: &generation.Resume}
	articles := make([]model.Article, len(suggestions))
	for i, a := range suggestions {
		resume := a.Resume
		articles[i] = model.Article{Nom: a.Nom, Resume: &resume}
	}
	if err := s.Plans.CreateWithArticles(plan, articles); err != nil {
		return nil, err
	}

	s.publish(events.PlanGenerated{
		PlanID:      plan.ID,
		ScenarioID:  scenario.ID,
		ItemCount:   len(articles),
		GeneratedAt: plan.GeneratedAt,
	})

	return &PlanResult{
		Success: true,
		Plan:    &model.PlanDetail{Plan: *plan, Items: []model.PlanItem{}, Articles: articles},
	}, nil
}

// GetLatest returns the newest plan of the scenario, or nil when none
// exists.
func (s *PlanService) GetLatest(scenarioID int) (*model.PlanDetail, error) {
	if _, err := s.Scenarios.GetByID(scenarioID); err != nil {
		return nil, err
	}
	return s.Plans.GetLatest(scenarioID)
}

// publish emits the plan event best-effort. Plans live in the database;
// a lost notification is logged and forgotten.
func (s *PlanService) publish(event events.PlanGenerated) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishPlanGenerated(event); err != nil {
		s.Logger.Warn("publish plan event", zap.Int("plan_id", event.PlanID), zap.Error(err))
	}
}
