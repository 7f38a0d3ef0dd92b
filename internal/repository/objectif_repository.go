package repository

import (
	"database/sql"

	"github.com/silenusdev/assistant-marketing/internal/model"
)

type ObjectifRepositoryInterface interface {
	Upsert(label string, description *string) (*model.Objectif, error)
	ListAll() ([]model.Objectif, error)
}

type ObjectifRepository struct {
	DB *sql.DB
}

// Upsert creates the objectif or returns the existing row for the label.
// Labels are unique system-wide, so two scenarios sharing an objective
// share one row.
func (r *ObjectifRepository) Upsert(label string, description *string) (*model.Objectif, error) {
	query := `
        INSERT INTO objectifs (label, description)
        VALUES ($1, $2)
        ON CONFLICT (label) DO UPDATE SET label = EXCLUDED.label
        RETURNING id, label, description, created_at
    `
	var o model.Objectif
	err := r.DB.QueryRow(query, label, description).Scan(&o.ID, &o.Label, &o.Description, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObjectifRepository) ListAll() ([]model.Objectif, error) {
	rows, err := r.DB.Query(`SELECT id, label, description, created_at FROM objectifs ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objectifs := []model.Objectif{}
	for rows.Next() {
		var o model.Objectif
		if err := rows.Scan(&o.ID, &o.Label, &o.Description, &o.CreatedAt); err != nil {
			return nil, err
		}
		objectifs = append(objectifs, o)
	}
	return objectifs, rows.Err()
}

var _ ObjectifRepositoryInterface = (*ObjectifRepository)(nil)
