package ai

import (
	"encoding/json"
	"fmt"
)

// Action is a contextual action the assistant proposes to the user as a
// button.
type Action struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EntityToCreate is an entity the assistant asks the caller to create.
type EntityToCreate struct {
	EntityType string          `json:"entity_type"`
	Data       json.RawMessage `json:"data"`
}

// ChatResponse is the structured free-form chat reply.
type ChatResponse struct {
	MessageMarkdown  string           `json:"message_markdown"`
	Actions          []Action         `json:"actions"`
	EntitiesToCreate []EntityToCreate `json:"entities_to_create"`
	Errors           []string         `json:"errors"`
}

func (r *ChatResponse) Validate() error {
	if r.MessageMarkdown == "" {
		return fmt.Errorf("message_markdown is required")
	}
	for i, a := range r.Actions {
		if a.Type == "" {
			return fmt.Errorf("actions[%d]: type is required", i)
		}
	}
	return nil
}

// PlanItemGeneration is one diffusion action of a generated plan.
type PlanItemGeneration struct {
	Format    string  `json:"format"`
	Message   string  `json:"message"`
	Canal     string  `json:"canal"`
	Frequence *string `json:"frequence,omitempty"`
	KPI       *string `json:"kpi,omitempty"`
}

// PlanGeneration is a complete generated diffusion plan.
type PlanGeneration struct {
	Resume string               `json:"resume"`
	Items  []PlanItemGeneration `json:"items"`
}

func (p *PlanGeneration) Validate() error {
	if p.Resume == "" {
		return fmt.Errorf("resume is required")
	}
	if len(p.Items) < 3 {
		return fmt.Errorf("plan must contain at least 3 items, got %d", len(p.Items))
	}
	for i, item := range p.Items {
		if item.Format == "" || item.Message == "" || item.Canal == "" {
			return fmt.Errorf("items[%d]: format, message and canal are required", i)
		}
	}
	return nil
}

// ObjectifSuggestion is one suggested marketing goal.
type ObjectifSuggestion struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ObjectifSuggestions is the response shape of the objective suggestion
// round trip.
type ObjectifSuggestions struct {
	Objectifs []ObjectifSuggestion `json:"objectifs"`
}

func (s *ObjectifSuggestions) Validate() error {
	if len(s.Objectifs) == 0 {
		return fmt.Errorf("objectifs is empty")
	}
	for i, o := range s.Objectifs {
		if o.Label == "" {
			return fmt.Errorf("objectifs[%d]: label is required", i)
		}
	}
	return nil
}

// CibleSuggestion is one suggested persona.
type CibleSuggestion struct {
	Label   string `json:"label"`
	Persona string `json:"persona"`
	Segment string `json:"segment"`
}

// CibleSuggestions is the response shape of the target suggestion round trip.
type CibleSuggestions struct {
	Cibles []CibleSuggestion `json:"cibles"`
}

func (s *CibleSuggestions) Validate() error {
	if len(s.Cibles) == 0 {
		return fmt.Errorf("cibles is empty")
	}
	for i, c := range s.Cibles {
		if c.Label == "" {
			return fmt.Errorf("cibles[%d]: label is required", i)
		}
	}
	return nil
}

// ArticleSuggestion is one content suggestion of the article pipeline.
type ArticleSuggestion struct {
	Nom    string `json:"nom"`
	Resume string `json:"resume"`
}

// ArticlePlanGeneration is the response shape of the plan-with-articles
// round trip.
type ArticlePlanGeneration struct {
	Resume   string              `json:"resume"`
	Articles []ArticleSuggestion `json:"articles"`
}

func (p *ArticlePlanGeneration) Validate() error {
	if len(p.Articles) == 0 {
		return fmt.Errorf("articles is empty")
	}
	for i, a := range p.Articles {
		if a.Nom == "" {
			return fmt.Errorf("articles[%d]: nom is required", i)
		}
	}
	return nil
}
