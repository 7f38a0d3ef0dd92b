package model

import "time"

// Message authors.
const (
	AuteurUser      = "user"
	AuteurAssistant = "assistant"
	AuteurSystem    = "system"
)

// Message is one turn of conversation. ScenarioID is nil for global
// messages. TTL is the absolute expiry timestamp after which the row becomes
// eligible for the nightly purge; a nil TTL means the message is never purged.
type Message struct {
	ID         int        `db:"id" json:"id"`
	ScenarioID *int       `db:"scenario_id" json:"scenario_id,omitempty"`
	Auteur     string     `db:"auteur" json:"auteur"`
	Contenu    string     `db:"contenu" json:"contenu"`
	RoleAction *string    `db:"role_action" json:"role_action,omitempty"`
	TTL        *time.Time `db:"ttl" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
