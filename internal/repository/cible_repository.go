package repository

import (
	"database/sql"

	"github.com/silenusdev/assistant-marketing/internal/model"
)

type CibleRepositoryInterface interface {
	Upsert(label string, persona, segment *string) (*model.Cible, error)
	ListAll() ([]model.Cible, error)
}

type CibleRepository struct {
	DB *sql.DB
}

// Upsert creates the cible or returns the existing row for the label.
func (r *CibleRepository) Upsert(label string, persona, segment *string) (*model.Cible, error) {
	query := `
        INSERT INTO cibles (label, persona, segment)
        VALUES ($1, $2, $3)
        ON CONFLICT (label) DO UPDATE SET label = EXCLUDED.label
        RETURNING id, label, persona, segment, created_at
    `
	var c model.Cible
	err := r.DB.QueryRow(query, label, persona, segment).Scan(&c.ID, &c.Label, &c.Persona, &c.Segment, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CibleRepository) ListAll() ([]model.Cible, error) {
	rows, err := r.DB.Query(`SELECT id, label, persona, segment, created_at FROM cibles ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cibles := []model.Cible{}
	for rows.Next() {
		var c model.Cible
		if err := rows.Scan(&c.ID, &c.Label, &c.Persona, &c.Segment, &c.CreatedAt); err != nil {
			return nil, err
		}
		cibles = append(cibles, c)
	}
	return cibles, rows.Err()
}

var _ CibleRepositoryInterface = (*CibleRepository)(nil)
