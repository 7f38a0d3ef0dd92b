package controller

import (
	"context"
	"errors"
	"time"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
)

// In-memory repositories backing the real services under test.

type stubScenarioRepo struct {
	scenarios  map[int]*model.Scenario
	objectifs  map[int][]model.Objectif
	cibles     map[int][]model.Cible
	ressources map[int][]model.Ressource
	nextID     int
}

func newStubScenarioRepo() *stubScenarioRepo {
	return &stubScenarioRepo{
		scenarios:  map[int]*model.Scenario{},
		objectifs:  map[int][]model.Objectif{},
		cibles:     map[int][]model.Cible{},
		ressources: map[int][]model.Ressource{},
		nextID:     1,
	}
}

func (m *stubScenarioRepo) add(s model.Scenario) *model.Scenario {
	s.ID = m.nextID
	m.nextID++
	m.scenarios[s.ID] = &s
	return &s
}

func (m *stubScenarioRepo) Create(s *model.Scenario) error {
	s.ID = m.nextID
	m.nextID++
	copied := *s
	m.scenarios[s.ID] = &copied
	return nil
}

func (m *stubScenarioRepo) GetByID(id int) (*model.Scenario, error) {
	s, ok := m.scenarios[id]
	if !ok {
		return nil, appErrors.NewScenarioNotFound(id)
	}
	copied := *s
	return &copied, nil
}

func (m *stubScenarioRepo) List(limit int) ([]*model.Scenario, error) {
	out := []*model.Scenario{}
	for _, s := range m.scenarios {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *stubScenarioRepo) Delete(id int) error {
	if _, ok := m.scenarios[id]; !ok {
		return appErrors.NewScenarioNotFound(id)
	}
	delete(m.scenarios, id)
	return nil
}

func (m *stubScenarioRepo) UpdateStatut(id int, statut string) error {
	if s, ok := m.scenarios[id]; ok {
		s.Statut = statut
	}
	return nil
}

func (m *stubScenarioRepo) ListObjectifs(id int) ([]model.Objectif, error)   { return m.objectifs[id], nil }
func (m *stubScenarioRepo) ListCibles(id int) ([]model.Cible, error)         { return m.cibles[id], nil }
func (m *stubScenarioRepo) ListRessources(id int) ([]model.Ressource, error) { return m.ressources[id], nil }
func (m *stubScenarioRepo) AddObjectif(scenarioID, objectifID int) error     { return nil }
func (m *stubScenarioRepo) AddCible(scenarioID, cibleID int) error           { return nil }
func (m *stubScenarioRepo) AddRessource(scenarioID, ressourceID int) error   { return nil }

type stubMessageRepo struct {
	messages []model.Message
	nextID   int
}

func (m *stubMessageRepo) Append(msg *model.Message) error {
	m.nextID++
	msg.ID = m.nextID
	msg.CreatedAt = time.Now().UTC()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *stubMessageRepo) ListRecent(scenarioID, limit int) ([]model.Message, error) {
	out := []model.Message{}
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		msg := m.messages[i]
		if msg.ScenarioID != nil && *msg.ScenarioID == scenarioID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *stubMessageRepo) PurgeExpired(now time.Time) (int, error) { return 0, nil }

type stubPlanRepo struct {
	plans  []*model.PlanDetail
	nextID int
}

func (m *stubPlanRepo) CreateWithItems(plan *model.Plan, items []model.PlanItem) error {
	m.nextID++
	plan.ID = m.nextID
	plan.GeneratedAt = time.Now().UTC()
	for i := range items {
		items[i].PlanID = plan.ID
	}
	m.plans = append(m.plans, &model.PlanDetail{Plan: *plan, Items: append([]model.PlanItem{}, items...)})
	return nil
}

func (m *stubPlanRepo) CreateWithArticles(plan *model.Plan, articles []model.Article) error {
	m.nextID++
	plan.ID = m.nextID
	plan.GeneratedAt = time.Now().UTC()
	m.plans = append(m.plans, &model.PlanDetail{Plan: *plan, Articles: append([]model.Article{}, articles...)})
	return nil
}

func (m *stubPlanRepo) GetLatest(scenarioID int) (*model.PlanDetail, error) {
	for i := len(m.plans) - 1; i >= 0; i-- {
		if m.plans[i].ScenarioID == scenarioID {
			return m.plans[i], nil
		}
	}
	return nil, nil
}

func (m *stubPlanRepo) Delete(planID int) error                          { return nil }
func (m *stubPlanRepo) ListItems(planID int) ([]model.PlanItem, error)   { return nil, nil }
func (m *stubPlanRepo) ListArticles(planID int) ([]model.Article, error) { return nil, nil }

type stubObjectifRepo struct {
	byLabel map[string]*model.Objectif
	nextID  int
}

func newStubObjectifRepo() *stubObjectifRepo {
	return &stubObjectifRepo{byLabel: map[string]*model.Objectif{}}
}

func (m *stubObjectifRepo) Upsert(label string, description *string) (*model.Objectif, error) {
	if o, ok := m.byLabel[label]; ok {
		return o, nil
	}
	m.nextID++
	o := &model.Objectif{ID: m.nextID, Label: label, Description: description}
	m.byLabel[label] = o
	return o, nil
}

func (m *stubObjectifRepo) ListAll() ([]model.Objectif, error) {
	out := []model.Objectif{}
	for _, o := range m.byLabel {
		out = append(out, *o)
	}
	return out, nil
}

type stubCibleRepo struct {
	byLabel map[string]*model.Cible
	nextID  int
}

func newStubCibleRepo() *stubCibleRepo {
	return &stubCibleRepo{byLabel: map[string]*model.Cible{}}
}

func (m *stubCibleRepo) Upsert(label string, persona, segment *string) (*model.Cible, error) {
	if c, ok := m.byLabel[label]; ok {
		return c, nil
	}
	m.nextID++
	c := &model.Cible{ID: m.nextID, Label: label, Persona: persona, Segment: segment}
	m.byLabel[label] = c
	return c, nil
}

func (m *stubCibleRepo) ListAll() ([]model.Cible, error) {
	out := []model.Cible{}
	for _, c := range m.byLabel {
		out = append(out, *c)
	}
	return out, nil
}

type stubRessourceRepo struct {
	nextID int
}

func (m *stubRessourceRepo) Create(re *model.Ressource) error {
	m.nextID++
	re.ID = m.nextID
	re.CreatedAt = time.Now().UTC()
	return nil
}

// stubClient answers every completion with fixed values.
type stubClient struct {
	chat *ai.ChatResponse
	plan *ai.PlanGeneration
	err  error
}

func (c *stubClient) CompleteChat(ctx context.Context, systemPrompt, userMessage, contextBlock string) (*ai.ChatResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.chat == nil {
		return nil, errors.New("no chat response configured")
	}
	return c.chat, nil
}

func (c *stubClient) CompletePlan(ctx context.Context, systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.plan == nil {
		return nil, errors.New("no plan response configured")
	}
	return c.plan, nil
}

func (c *stubClient) CompleteObjectifSuggestions(ctx context.Context, prompt string) ([]ai.ObjectifSuggestion, error) {
	return nil, errors.New("not configured")
}

func (c *stubClient) CompleteCibleSuggestions(ctx context.Context, prompt string) ([]ai.CibleSuggestion, error) {
	return nil, errors.New("not configured")
}

func (c *stubClient) CompleteArticlePlan(ctx context.Context, prompt string) (*ai.ArticlePlanGeneration, error) {
	return nil, errors.New("not configured")
}
