package model

import "time"

// Scenario statuses. A scenario becomes ready exactly once a plan has been
// generated for it; it is never reverted automatically.
const (
	StatutDraft = "draft"
	StatutReady = "ready"
)

type Scenario struct {
	ID          int        `db:"id" json:"id"`
	Nom         string     `db:"nom" json:"nom"`
	Thematique  string     `db:"thematique" json:"thematique"`
	Description *string    `db:"description" json:"description,omitempty"`
	Statut      string     `db:"statut" json:"statut"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ScenarioDetail is the API-facing shape of a scenario with its attached
// entities resolved.
type ScenarioDetail struct {
	Scenario
	Objectifs  []Objectif  `json:"objectifs"`
	Cibles     []Cible     `json:"cibles"`
	Ressources []Ressource `json:"ressources"`
}
