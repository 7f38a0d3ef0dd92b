package service

import (
	"context"
	"errors"
	"time"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
)

type mockScenarioRepo struct {
	scenarios  map[int]*model.Scenario
	objectifs  map[int][]model.Objectif
	cibles     map[int][]model.Cible
	ressources map[int][]model.Ressource

	statutUpdates  []string
	objectifLinks  [][2]int
	cibleLinks     [][2]int
	ressourceLinks [][2]int
	nextID         int
}

func newMockScenarioRepo() *mockScenarioRepo {
	return &mockScenarioRepo{
		scenarios:  map[int]*model.Scenario{},
		objectifs:  map[int][]model.Objectif{},
		cibles:     map[int][]model.Cible{},
		ressources: map[int][]model.Ressource{},
		nextID:     1,
	}
}

func (m *mockScenarioRepo) add(s model.Scenario) *model.Scenario {
	s.ID = m.nextID
	m.nextID++
	m.scenarios[s.ID] = &s
	return &s
}

func (m *mockScenarioRepo) Create(s *model.Scenario) error {
	s.ID = m.nextID
	m.nextID++
	copied := *s
	m.scenarios[s.ID] = &copied
	return nil
}

func (m *mockScenarioRepo) GetByID(id int) (*model.Scenario, error) {
	s, ok := m.scenarios[id]
	if !ok {
		return nil, appErrors.NewScenarioNotFound(id)
	}
	copied := *s
	return &copied, nil
}

func (m *mockScenarioRepo) List(limit int) ([]*model.Scenario, error) {
	out := []*model.Scenario{}
	for _, s := range m.scenarios {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockScenarioRepo) Delete(id int) error {
	if _, ok := m.scenarios[id]; !ok {
		return appErrors.NewScenarioNotFound(id)
	}
	delete(m.scenarios, id)
	return nil
}

func (m *mockScenarioRepo) UpdateStatut(id int, statut string) error {
	if s, ok := m.scenarios[id]; ok {
		s.Statut = statut
	}
	m.statutUpdates = append(m.statutUpdates, statut)
	return nil
}

func (m *mockScenarioRepo) ListObjectifs(scenarioID int) ([]model.Objectif, error) {
	return m.objectifs[scenarioID], nil
}

func (m *mockScenarioRepo) ListCibles(scenarioID int) ([]model.Cible, error) {
	return m.cibles[scenarioID], nil
}

func (m *mockScenarioRepo) ListRessources(scenarioID int) ([]model.Ressource, error) {
	return m.ressources[scenarioID], nil
}

func (m *mockScenarioRepo) AddObjectif(scenarioID, objectifID int) error {
	m.objectifLinks = append(m.objectifLinks, [2]int{scenarioID, objectifID})
	return nil
}

func (m *mockScenarioRepo) AddCible(scenarioID, cibleID int) error {
	m.cibleLinks = append(m.cibleLinks, [2]int{scenarioID, cibleID})
	return nil
}

func (m *mockScenarioRepo) AddRessource(scenarioID, ressourceID int) error {
	m.ressourceLinks = append(m.ressourceLinks, [2]int{scenarioID, ressourceID})
	return nil
}

type mockMessageRepo struct {
	messages []model.Message
	nextID   int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{nextID: 1}
}

func (m *mockMessageRepo) Append(msg *model.Message) error {
	msg.ID = m.nextID
	msg.CreatedAt = time.Now().UTC()
	m.nextID++
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageRepo) ListRecent(scenarioID, limit int) ([]model.Message, error) {
	out := []model.Message{}
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		msg := m.messages[i]
		if msg.ScenarioID != nil && *msg.ScenarioID == scenarioID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) PurgeExpired(now time.Time) (int, error) {
	kept := m.messages[:0]
	deleted := 0
	for _, msg := range m.messages {
		if msg.TTL != nil && msg.TTL.Before(now) {
			deleted++
			continue
		}
		kept = append(kept, msg)
	}
	m.messages = kept
	return deleted, nil
}

type mockObjectifRepo struct {
	byLabel map[string]*model.Objectif
	nextID  int
}

func newMockObjectifRepo() *mockObjectifRepo {
	return &mockObjectifRepo{byLabel: map[string]*model.Objectif{}, nextID: 1}
}

func (m *mockObjectifRepo) Upsert(label string, description *string) (*model.Objectif, error) {
	if o, ok := m.byLabel[label]; ok {
		copied := *o
		return &copied, nil
	}
	o := &model.Objectif{ID: m.nextID, Label: label, Description: description}
	m.nextID++
	m.byLabel[label] = o
	copied := *o
	return &copied, nil
}

func (m *mockObjectifRepo) ListAll() ([]model.Objectif, error) {
	out := []model.Objectif{}
	for _, o := range m.byLabel {
		out = append(out, *o)
	}
	return out, nil
}

type mockCibleRepo struct {
	byLabel map[string]*model.Cible
	nextID  int
}

func newMockCibleRepo() *mockCibleRepo {
	return &mockCibleRepo{byLabel: map[string]*model.Cible{}, nextID: 1}
}

func (m *mockCibleRepo) Upsert(label string, persona, segment *string) (*model.Cible, error) {
	if c, ok := m.byLabel[label]; ok {
		copied := *c
		return &copied, nil
	}
	c := &model.Cible{ID: m.nextID, Label: label, Persona: persona, Segment: segment}
	m.nextID++
	m.byLabel[label] = c
	copied := *c
	return &copied, nil
}

func (m *mockCibleRepo) ListAll() ([]model.Cible, error) {
	out := []model.Cible{}
	for _, c := range m.byLabel {
		out = append(out, *c)
	}
	return out, nil
}

type mockRessourceRepo struct {
	created []model.Ressource
	nextID  int
}

func newMockRessourceRepo() *mockRessourceRepo {
	return &mockRessourceRepo{nextID: 1}
}

func (m *mockRessourceRepo) Create(re *model.Ressource) error {
	re.ID = m.nextID
	re.CreatedAt = time.Now().UTC()
	m.nextID++
	m.created = append(m.created, *re)
	return nil
}

type mockPlanRepo struct {
	plans   []*model.PlanDetail
	deleted []int
	nextID  int
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{nextID: 1}
}

func (m *mockPlanRepo) CreateWithItems(plan *model.Plan, items []model.PlanItem) error {
	plan.ID = m.nextID
	plan.GeneratedAt = time.Now().UTC()
	m.nextID++
	for i := range items {
		items[i].PlanID = plan.ID
	}
	m.plans = append(m.plans, &model.PlanDetail{Plan: *plan, Items: append([]model.PlanItem{}, items...)})
	return nil
}

func (m *mockPlanRepo) CreateWithArticles(plan *model.Plan, articles []model.Article) error {
	plan.ID = m.nextID
	plan.GeneratedAt = time.Now().UTC()
	m.nextID++
	for i := range articles {
		articles[i].PlanID = plan.ID
	}
	m.plans = append(m.plans, &model.PlanDetail{Plan: *plan, Articles: append([]model.Article{}, articles...)})
	return nil
}

func (m *mockPlanRepo) GetLatest(scenarioID int) (*model.PlanDetail, error) {
	for i := len(m.plans) - 1; i >= 0; i-- {
		if m.plans[i].ScenarioID == scenarioID {
			return m.plans[i], nil
		}
	}
	return nil, nil
}

func (m *mockPlanRepo) Delete(planID int) error {
	m.deleted = append(m.deleted, planID)
	kept := m.plans[:0]
	for _, p := range m.plans {
		if p.ID != planID {
			kept = append(kept, p)
		}
	}
	m.plans = kept
	return nil
}

func (m *mockPlanRepo) ListItems(planID int) ([]model.PlanItem, error) {
	for _, p := range m.plans {
		if p.ID == planID {
			return p.Items, nil
		}
	}
	return nil, nil
}

func (m *mockPlanRepo) ListArticles(planID int) ([]model.Article, error) {
	for _, p := range m.plans {
		if p.ID == planID {
			return p.Articles, nil
		}
	}
	return nil, nil
}

type mockConfigurationRepo struct {
	configurations map[int]*model.Configuration
	objectifs      map[int][]model.Objectif
	cibles         map[int][]model.Cible
	nextID         int
}

func newMockConfigurationRepo() *mockConfigurationRepo {
	return &mockConfigurationRepo{
		configurations: map[int]*model.Configuration{},
		objectifs:      map[int][]model.Objectif{},
		cibles:         map[int][]model.Cible{},
		nextID:         1,
	}
}

func (m *mockConfigurationRepo) Create(c *model.Configuration) error {
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.configurations[c.ID] = &copied
	return nil
}

func (m *mockConfigurationRepo) GetByID(id int) (*model.Configuration, error) {
	c, ok := m.configurations[id]
	if !ok {
		return nil, appErrors.NewConfigurationNotFound(id)
	}
	copied := *c
	return &copied, nil
}

func (m *mockConfigurationRepo) ListByScenario(scenarioID int) ([]model.Configuration, error) {
	out := []model.Configuration{}
	for _, c := range m.configurations {
		if c.ScenarioID == scenarioID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockConfigurationRepo) Delete(id int) error {
	if _, ok := m.configurations[id]; !ok {
		return appErrors.NewConfigurationNotFound(id)
	}
	delete(m.configurations, id)
	return nil
}

func (m *mockConfigurationRepo) AddObjectif(configurationID, objectifID int) error {
	m.objectifs[configurationID] = append(m.objectifs[configurationID], model.Objectif{ID: objectifID})
	return nil
}

func (m *mockConfigurationRepo) RemoveObjectif(configurationID, objectifID int) error {
	kept := []model.Objectif{}
	for _, o := range m.objectifs[configurationID] {
		if o.ID != objectifID {
			kept = append(kept, o)
		}
	}
	m.objectifs[configurationID] = kept
	return nil
}

func (m *mockConfigurationRepo) AddCible(configurationID, cibleID int) error {
	m.cibles[configurationID] = append(m.cibles[configurationID], model.Cible{ID: cibleID})
	return nil
}

func (m *mockConfigurationRepo) RemoveCible(configurationID, cibleID int) error {
	kept := []model.Cible{}
	for _, c := range m.cibles[configurationID] {
		if c.ID != cibleID {
			kept = append(kept, c)
		}
	}
	m.cibles[configurationID] = kept
	return nil
}

func (m *mockConfigurationRepo) ListObjectifs(configurationID int) ([]model.Objectif, error) {
	return m.objectifs[configurationID], nil
}

func (m *mockConfigurationRepo) ListCibles(configurationID int) ([]model.Cible, error) {
	return m.cibles[configurationID], nil
}

// mockClient stubs the AI client. Unset functions fail loudly so tests
// that must not reach the provider catch accidental calls.
type mockClient struct {
	chatFn    func(systemPrompt, userMessage, contextBlock string) (*ai.ChatResponse, error)
	planFn    func(systemPrompt, userMessage string) (*ai.PlanGeneration, error)
	objectifs func(prompt string) ([]ai.ObjectifSuggestion, error)
	cibles    func(prompt string) ([]ai.CibleSuggestion, error)
	articles  func(prompt string) (*ai.ArticlePlanGeneration, error)

	chatCalls int
	planCalls int
}

var errUnexpectedCall = errors.New("unexpected AI call")

func (m *mockClient) CompleteChat(ctx context.Context, systemPrompt, userMessage, contextBlock string) (*ai.ChatResponse, error) {
	m.chatCalls++
	if m.chatFn == nil {
		return nil, errUnexpectedCall
	}
	return m.chatFn(systemPrompt, userMessage, contextBlock)
}

func (m *mockClient) CompletePlan(ctx context.Context, systemPrompt, userMessage string) (*ai.PlanGeneration, error) {
	m.planCalls++
	if m.planFn == nil {
		return nil, errUnexpectedCall
	}
	return m.planFn(systemPrompt, userMessage)
}

func (m *mockClient) CompleteObjectifSuggestions(ctx context.Context, prompt string) ([]ai.ObjectifSuggestion, error) {
	if m.objectifs == nil {
		return nil, errUnexpectedCall
	}
	return m.objectifs(prompt)
}

func (m *mockClient) CompleteCibleSuggestions(ctx context.Context, prompt string) ([]ai.CibleSuggestion, error) {
	if m.cibles == nil {
		return nil, errUnexpectedCall
	}
	return m.cibles(prompt)
}

func (m *mockClient) CompleteArticlePlan(ctx context.Context, prompt string) (*ai.ArticlePlanGeneration, error) {
	if m.articles == nil {
		return nil, errUnexpectedCall
	}
	return m.articles(prompt)
}
