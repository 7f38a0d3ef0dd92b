package model

import "time"

// Objectif is a marketing goal shared across scenarios. The label is a
// natural key: two scenarios referencing the same goal share one row.
type Objectif struct {
	ID          int       `db:"id" json:"id"`
	Label       string    `db:"label" json:"label"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
