package repository

import (
	"database/sql"

	appErrors "github.com/silenusdev/assistant-marketing/internal/errors"
	"github.com/silenusdev/assistant-marketing/internal/model"
)

type ConfigurationRepositoryInterface interface {
	Create(c *model.Configuration) error
	GetByID(id int) (*model.Configuration, error)
	ListByScenario(scenarioID int) ([]model.Configuration, error)
	Delete(id int) error

	AddObjectif(configurationID, objectifID int) error
	RemoveObjectif(configurationID, objectifID int) error
	AddCible(configurationID, cibleID int) error
	RemoveCible(configurationID, cibleID int) error
	ListObjectifs(configurationID int) ([]model.Objectif, error)
	ListCibles(configurationID int) ([]model.Cible, error)
}

type ConfigurationRepository struct {
	DB *sql.DB
}

func (r *ConfigurationRepository) Create(c *model.Configuration) error {
	query := `
        INSERT INTO configurations (scenario_id, nom)
        VALUES ($1, $2)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, c.ScenarioID, c.Nom).Scan(&c.ID, &c.CreatedAt)
}

func (r *ConfigurationRepository) GetByID(id int) (*model.Configuration, error) {
	query := `
        SELECT id, scenario_id, nom, created_at
        FROM configurations WHERE id=$1
    `
	var c model.Configuration
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.ScenarioID, &c.Nom, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewConfigurationNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ConfigurationRepository) ListByScenario(scenarioID int) ([]model.Configuration, error) {
	query := `
        SELECT id, scenario_id, nom, created_at
        FROM configurations WHERE scenario_id=$1 ORDER BY id
    `
	rows, err := r.DB.Query(query, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configurations := []model.Configuration{}
	for rows.Next() {
		var c model.Configuration
		if err := rows.Scan(&c.ID, &c.ScenarioID, &c.Nom, &c.CreatedAt); err != nil {
			return nil, err
		}
		configurations = append(configurations, c)
	}
	return configurations, rows.Err()
}

func (r *ConfigurationRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM configurations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewConfigurationNotFound(id)
	}
	return nil
}

func (r *ConfigurationRepository) AddObjectif(configurationID, objectifID int) error {
	query := `
        INSERT INTO configuration_objectifs (configuration_id, objectif_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.DB.Exec(query, configurationID, objectifID)
	return err
}

func (r *ConfigurationRepository) RemoveObjectif(configurationID, objectifID int) error {
	_, err := r.DB.Exec(`DELETE FROM configuration_objectifs WHERE configuration_id=$1 AND objectif_id=$2`, configurationID, objectifID)
	return err
}

func (r *ConfigurationRepository) AddCible(configurationID, cibleID int) error {
	query := `
        INSERT INTO configuration_cibles (configuration_id, cible_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.DB.Exec(query, configurationID, cibleID)
	return err
}

func (r *ConfigurationRepository) RemoveCible(configurationID, cibleID int) error {
	_, err := r.DB.Exec(`DELETE FROM configuration_cibles WHERE configuration_id=$1 AND cible_id=$2`, configurationID, cibleID)
	return err
}

func (r *ConfigurationRepository) ListObjectifs(configurationID int) ([]model.Objectif, error) {
	query := `
        SELECT o.id, o.label, o.description, o.created_at
        FROM objectifs o
        JOIN configuration_objectifs co ON co.objectif_id = o.id
        WHERE co.configuration_id = $1
        ORDER BY o.id
    `
	rows, err := r.DB.Query(query, configurationID)
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

func (r *ConfigurationRepository) ListCibles(configurationID int) ([]model.Cible, error) {
	query := `
        SELECT c.id, c.label, c.persona, c.segment, c.created_at
        FROM cibles c
        JOIN configuration_cibles cc ON cc.cible_id = c.id
        WHERE cc.configuration_id = $1
        ORDER BY c.id
    `
	rows, err := r.DB.Query(query, configurationID)
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

var _ ConfigurationRepositoryInterface = (*ConfigurationRepository)(nil)
