package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/events"
	"github.com/silenusdev/assistant-marketing/internal/model"
)

type recordingPublisher struct {
	published []events.PlanGenerated
	err       error
}

func (p *recordingPublisher) PublishPlanGenerated(event events.PlanGenerated) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func readyScenario(scenarios *mockScenarioRepo) *model.Scenario {
	s := scenarios.add(model.Scenario{Nom: "Lancement", Thematique: "RH", Statut: model.StatutDraft})
	segment := "PME Tech"
	scenarios.objectifs[s.ID] = []model.Objectif{{ID: 1, Label: "Leads"}}
	scenarios.cibles[s.ID] = []model.Cible{{ID: 1, Label: "DRH", Segment: &segment}}
	scenarios.ressources[s.ID] = []model.Ressource{{ID: 1, Titre: "Guide", Type: model.RessourceArticle}}
	return s
}

func newPlanService(scenarios *mockScenarioRepo, plans *mockPlanRepo, configurations *mockConfigurationRepo, client *mockClient, publisher events.Publisher) *PlanService {
	return &PlanService{
		Scenarios:      scenarios,
		Plans:          plans,
		Configurations: configurations,
		Client:         client,
		Publisher:      publisher,
		Logger:         zap.NewNop(),
	}
}

func threeItemPlan() *ai.PlanGeneration {
	return &ai.PlanGeneration{
		Resume: "Plan en trois actions",
		Items: []ai.PlanItemGeneration{
			{Format: "post", Message: "m1", Canal: "linkedin"},
			{Format: "email", Message: "m2", Canal: "newsletter"},
			{Format: "webinar", Message: "m3", Canal: "zoom"},
		},
	}
}

func TestGeneratePlanAllPrereqsMissing(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := scenarios.add(model.Scenario{Nom: "Vide", Thematique: "T"})
	client := &mockClient{}
	svc := newPlanService(scenarios, newMockPlanRepo(), newMockConfigurationRepo(), client, &recordingPublisher{})

	result, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"objectifs", "cibles", "ressources"}, result.Missing)
	assert.Equal(t, "Le scénario doit avoir au moins un objectif, une cible et une ressource. Manquant: objectifs, cibles, ressources", result.Error)
	assert.Zero(t, client.planCalls, "the AI must not be called")
}

func TestGeneratePlanOneCategoryMissing(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := scenarios.add(model.Scenario{Nom: "Partiel", Thematique: "T"})
	scenarios.objectifs[s.ID] = []model.Objectif{{ID: 1, Label: "o"}}
	scenarios.ressources[s.ID] = []model.Ressource{{ID: 1, Titre: "r", Type: model.RessourceArticle}}
	svc := newPlanService(scenarios, newMockPlanRepo(), newMockConfigurationRepo(), &mockClient{}, &recordingPublisher{})

	result, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"cibles"}, result.Missing)
	assert.Contains(t, result.Error, "Manquant: cibles")
}

func TestGeneratePlanSuccess(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := readyScenario(scenarios)
	plans := newMockPlanRepo()
	publisher := &recordingPublisher{}

	var seenUserMessage string
	client := &mockClient{
		planFn: func(systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
			seenUserMessage = userMessage
			return threeItemPlan(), nil
		},
	}
	svc := newPlanService(scenarios, plans, newMockConfigurationRepo(), client, publisher)

	result, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Plan)
	assert.Len(t, result.Plan.Items, 3)
	assert.Equal(t, "Plan en trois actions", *result.Plan.Resume)

	assert.Contains(t, seenUserMessage, "SCÉNARIO: Lancement")
	assert.Contains(t, seenUserMessage, "DRH (PME Tech)")
	assert.Contains(t, seenUserMessage, "Guide [article]")
	assert.Contains(t, seenUserMessage, "entre 5 et 10 actions")

	require.Len(t, plans.plans, 1)
	assert.Equal(t, []string{model.StatutReady}, scenarios.statutUpdates)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, result.Plan.ID, publisher.published[0].PlanID)
	assert.Equal(t, 3, publisher.published[0].ItemCount)
}

func TestGeneratePlanAIUnavailable(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := readyScenario(scenarios)
	plans := newMockPlanRepo()
	client := &mockClient{
		planFn: func(systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
			return nil, errors.New("provider down")
		},
	}
	svc := newPlanService(scenarios, plans, newMockConfigurationRepo(), client, &recordingPublisher{})

	result, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Impossible de générer le plan. Service IA indisponible.", result.Error)
	assert.Empty(t, result.Missing)
	assert.Empty(t, plans.plans)
	assert.Empty(t, scenarios.statutUpdates)
}

func TestGeneratePlanRegenerateReplacesExisting(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := readyScenario(scenarios)
	plans := newMockPlanRepo()
	client := &mockClient{
		planFn: func(systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
			return threeItemPlan(), nil
		},
	}
	svc := newPlanService(scenarios, plans, newMockConfigurationRepo(), client, &recordingPublisher{})

	first, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.GeneratePlan(context.Background(), s.ID, true)
	require.NoError(t, err)
	require.True(t, second.Success)

	assert.Equal(t, []int{first.Plan.ID}, plans.deleted)
	require.Len(t, plans.plans, 1)
	assert.Equal(t, second.Plan.ID, plans.plans[0].ID)
}

func TestGeneratePlanWithoutRegenerateKeepsExisting(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := readyScenario(scenarios)
	plans := newMockPlanRepo()
	client := &mockClient{
		planFn: func(systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
			return threeItemPlan(), nil
		},
	}
	svc := newPlanService(scenarios, plans, newMockConfigurationRepo(), client, &recordingPublisher{})

	_, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	_, err = svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)

	assert.Empty(t, plans.deleted)
	assert.Len(t, plans.plans, 2)
}

func TestGeneratePlanScenarioNotFound(t *testing.T) {
	svc := newPlanService(newMockScenarioRepo(), newMockPlanRepo(), newMockConfigurationRepo(), &mockClient{}, &recordingPublisher{})

	_, err := svc.GeneratePlan(context.Background(), 42, false)
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestGeneratePlanPublisherFailureIsNotFatal(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := readyScenario(scenarios)
	client := &mockClient{
		planFn: func(systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
			return threeItemPlan(), nil
		},
	}
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newPlanService(scenarios, newMockPlanRepo(), newMockConfigurationRepo(), client, publisher)

	result, err := svc.GeneratePlan(context.Background(), s.ID, false)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGeneratePlanWithArticlesTruncatesToFive(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := scenarios.add(model.Scenario{Nom: "Lancement", Thematique: "RH"})
	configurations := newMockConfigurationRepo()
	cfg := &model.Configuration{ScenarioID: s.ID, Nom: "Volet éditorial"}
	require.NoError(t, configurations.Create(cfg))
	configurations.objectifs[cfg.ID] = []model.Objectif{{ID: 1, Label: "Leads"}}
	configurations.cibles[cfg.ID] = []model.Cible{{ID: 1, Label: "DRH"}}

	generation := &ai.ArticlePlanGeneration{Resume: "Plan éditorial"}
	for i := 0; i < 7; i++ {
		generation.Articles = append(generation.Articles, ai.ArticleSuggestion{Nom: "Article", Resume: "r"})
	}
	client := &mockClient{
		articles: func(prompt string) (*ai.ArticlePlanGeneration, error) {
			return generation, nil
		},
	}
	plans := newMockPlanRepo()
	svc := newPlanService(scenarios, plans, configurations, client, &recordingPublisher{})

	result, err := svc.GeneratePlanWithArticles(context.Background(), cfg.ID)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Plan.Articles, 5)
	assert.Equal(t, s.ID, result.Plan.ScenarioID)
	require.NotNil(t, result.Plan.ConfigurationID)
	assert.Equal(t, cfg.ID, *result.Plan.ConfigurationID)
}

func TestGeneratePlanWithArticlesMissingPrereqs(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := scenarios.add(model.Scenario{Nom: "Lancement", Thematique: "RH"})
	configurations := newMockConfigurationRepo()
	cfg := &model.Configuration{ScenarioID: s.ID, Nom: "Vide"}
	require.NoError(t, configurations.Create(cfg))

	svc := newPlanService(scenarios, newMockPlanRepo(), configurations, &mockClient{}, &recordingPublisher{})

	result, err := svc.GeneratePlanWithArticles(context.Background(), cfg.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"objectifs", "cibles"}, result.Missing)
}

func TestGetLatestNoPlan(t *testing.T) {
	scenarios := newMockScenarioRepo()
	s := scenarios.add(model.Scenario{Nom: "S", Thematique: "T"})
	svc := newPlanService(scenarios, newMockPlanRepo(), newMockConfigurationRepo(), &mockClient{}, &recordingPublisher{})

	plan, err := svc.GetLatest(s.ID)
	require.NoError(t, err)
	assert.Nil(t, plan)
}
