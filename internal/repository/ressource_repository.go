package repository

import (
	"database/sql"

	"github.com/silenusdev/assistant-marketing/internal/model"
)

type RessourceRepositoryInterface interface {
	Create(re *model.Ressource) error
}

type RessourceRepository struct {
	DB *sql.DB
}

// Create always inserts a new row. Two resources may share a title; only
// objectifs and cibles deduplicate by label.
func (r *RessourceRepository) Create(re *model.Ressource) error {
	query := `
        INSERT INTO ressources (type, titre, url, note)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, re.Type, re.Titre, re.URL, re.Note).Scan(&re.ID, &re.CreatedAt)
}

var _ RessourceRepositoryInterface = (*RessourceRepository)(nil)
