package model

import "time"

// Plan is a generated diffusion plan owned by a scenario. ConfigurationID is
// set only for plans produced by the article pipeline, which is scoped to a
// configuration of the owning scenario.
type Plan struct {
	ID              int       `db:"id" json:"id"`
	ScenarioID      int       `db:"scenario_id" json:"scenario_id"`
	ConfigurationID *int      `db:"configuration_id" json:"configuration_id,omitempty"`
	Resume          *string   `db:"resume" json:"resume,omitempty"`
	GeneratedAt     time.Time `db:"generated_at" json:"generated_at"`
}

// PlanItem is one concrete diffusion action of a plan.
type PlanItem struct {
	ID        int     `db:"id" json:"id"`
	PlanID    int     `db:"plan_id" json:"plan_id"`
	Format    string  `db:"format" json:"format"`
	Message   string  `db:"message" json:"message"`
	Canal     string  `db:"canal" json:"canal"`
	Frequence *string `db:"frequence" json:"frequence,omitempty"`
	KPI       *string `db:"kpi" json:"kpi,omitempty"`
}

// Article is one content suggestion attached to a plan by the
// plan-with-articles pipeline.
type Article struct {
	ID     int     `db:"id" json:"id"`
	PlanID int     `db:"plan_id" json:"plan_id"`
	Nom    string  `db:"nom" json:"nom"`
	Resume *string `db:"resume" json:"resume,omitempty"`
}

// PlanDetail is the API-facing shape of a plan with its items and articles.
type PlanDetail struct {
	Plan
	Items    []PlanItem `json:"items"`
	Articles []Article  `json:"articles,omitempty"`
}
