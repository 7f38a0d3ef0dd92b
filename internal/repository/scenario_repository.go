package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
)

type ScenarioRepositoryInterface interface {
	Create(s *model.Scenario) error
	GetByID(id int) (*model.Scenario, error)
	List(limit int) ([]*model.Scenario, error)
	Delete(id int) error
	UpdateStatut(id int, statut string) error

	// Associations
	ListObjectifs(scenarioID int) ([]model.Objectif, error)
	ListCibles(scenarioID int) ([]model.Cible, error)
	ListRessources(scenarioID int) ([]model.Ressource, error)
	AddObjectif(scenarioID, objectifID int) error
	AddCible(scenarioID, cibleID int) error
	AddRessource(scenarioID, ressourceID int) error
}

type ScenarioRepository struct {
	DB *sql.DB
}

func (r *ScenarioRepository) Create(s *model.Scenario) error {
	s.CreatedAt = time.Now().UTC()
	if s.Statut == "" {
		s.Statut = model.StatutDraft
	}
	query := `
        INSERT INTO scenarios (nom, thematique, description, statut, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, s.Nom, s.Thematique, s.Description, s.Statut, s.CreatedAt).Scan(&s.ID)
}

func (r *ScenarioRepository) GetByID(id int) (*model.Scenario, error) {
	query := `
        SELECT id, nom, thematique, description, statut, created_at, updated_at
        FROM scenarios WHERE id=$1
    `
	var s model.Scenario
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.Nom, &s.Thematique, &s.Description, &s.Statut, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewScenarioNotFound(id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScenarioRepository) List(limit int) ([]*model.Scenario, error) {
	query := `
        SELECT id, nom, thematique, description, statut, created_at, updated_at
        FROM scenarios
        ORDER BY updated_at DESC NULLS LAST, id DESC
        LIMIT $1
    `
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := []*model.Scenario{}
	for rows.Next() {
		s := &model.Scenario{}
		if err := rows.Scan(&s.ID, &s.Nom, &s.Thematique, &s.Description, &s.Statut, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, rows.Err()
}

func (r *ScenarioRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM scenarios WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewScenarioNotFound(id)
	}
	return nil
}

func (r *ScenarioRepository) UpdateStatut(id int, statut string) error {
	_, err := r.DB.Exec(`UPDATE scenarios SET statut=$1, updated_at=NOW() WHERE id=$2`, statut, id)
	return err
}

func (r *ScenarioRepository) ListObjectifs(scenarioID int) ([]model.Objectif, error) {
	query := `
        SELECT o.id, o.label, o.description, o.created_at
        FROM objectifs o
        JOIN scenario_objectifs so ON so.objectif_id = o.id
        WHERE so.scenario_id = $1
        ORDER BY o.id
    `
	rows, err := r.DB.Query(query, scenarioID)
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

func (r *ScenarioRepository) ListCibles(scenarioID int) ([]model.Cible, error) {
	query := `
        SELECT c.id, c.label, c.persona, c.segment, c.created_at
        FROM cibles c
        JOIN scenario_cibles sc ON sc.cible_id = c.id
        WHERE sc.scenario_id = $1
        ORDER BY c.id
    `
	rows, err := r.DB.Query(query, scenarioID)
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

func (r *ScenarioRepository) ListRessources(scenarioID int) ([]model.Ressource, error) {
	query := `
        SELECT re.id, re.type, re.titre, re.url, re.note, re.created_at
        FROM ressources re
        JOIN scenario_ressources sr ON sr.ressource_id = re.id
        WHERE sr.scenario_id = $1
        ORDER BY re.id
    `
	rows, err := r.DB.Query(query, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ressources := []model.Ressource{}
	for rows.Next() {
		var re model.Ressource
		if err := rows.Scan(&re.ID, &re.Type, &re.Titre, &re.URL, &re.Note, &re.CreatedAt); err != nil {
			return nil, err
		}
		ressources = append(ressources, re)
	}
	return ressources, rows.Err()
}

// Association inserts ignore duplicate pairs: the pair is unique per the
// schema, and re-adding an attached entity is a no-op.

func (r *ScenarioRepository) AddObjectif(scenarioID, objectifID int) error {
	query := `
        INSERT INTO scenario_objectifs (scenario_id, objectif_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.DB.Exec(query, scenarioID, objectifID)
	return err
}

func (r *ScenarioRepository) AddCible(scenarioID, cibleID int) error {
	query := `
        INSERT INTO scenario_cibles (scenario_id, cible_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.DB.Exec(query, scenarioID, cibleID)
	return err
}

func (r *ScenarioRepository) AddRessource(scenarioID, ressourceID int) error {
	query := `
        INSERT INTO scenario_ressources (scenario_id, ressource_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.DB.Exec(query, scenarioID, ressourceID)
	return err
}

var _ ScenarioRepositoryInterface = (*ScenarioRepository)(nil)
