package model

import "time"

// Configuration is a named sub-grouping of objectifs and cibles beneath a
// scenario, used by the plan-with-articles pipeline.
type Configuration struct {
	ID         int       `db:"id" json:"id"`
	ScenarioID int       `db:"scenario_id" json:"scenario_id"`
	Nom        string    `db:"nom" json:"nom"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ConfigurationDetail is the API-facing shape with memberships resolved.
type ConfigurationDetail struct {
	Configuration
	Objectifs []Objectif `json:"objectifs"`
	Cibles    []Cible    `json:"cibles"`
}
