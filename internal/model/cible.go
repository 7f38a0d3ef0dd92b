package model

import "time"

// Cible is a persona/audience segment, deduplicated by label like Objectif.
type Cible struct {
	ID        int       `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	Persona   *string   `db:"persona" json:"persona,omitempty"`
	Segment   *string   `db:"segment" json:"segment,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
