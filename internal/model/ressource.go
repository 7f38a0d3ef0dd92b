package model

import "time"

// Ressource types. Open in the database but validated at the write boundary.
const (
	RessourceArticle   = "article"
	RessourceVideo     = "video"
	RessourceWebinar   = "webinar"
	RessourceCasClient = "cas_client"
	RessourceAutre     = "autre"
)

// ValidRessourceType reports whether t is one of the known resource types.
func ValidRessourceType(t string) bool {
	switch t {
	case RessourceArticle, RessourceVideo, RessourceWebinar, RessourceCasClient, RessourceAutre:
		return true
	}
	return false
}

// Ressource is an existing marketing asset. Unlike objectifs and cibles,
// ressources are not deduplicated: every add creates a new row.
type Ressource struct {
	ID        int       `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Titre     string    `db:"titre" json:"titre"`
	URL       *string   `db:"url" json:"url,omitempty"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
