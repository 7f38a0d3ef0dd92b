package repository

import (
	"database/sql"
	"fmt"

	"github.com/silenusdev/assistant-marketing/internal/model"
)

type PlanRepositoryInterface interface {
	CreateWithItems(plan *model.Plan, items []model.PlanItem) error
	CreateWithArticles(plan *model.Plan, articles []model.Article) error
	GetLatest(scenarioID int) (*model.PlanDetail, error)
	Delete(planID int) error
	ListItems(planID int) ([]model.PlanItem, error)
	ListArticles(planID int) ([]model.Article, error)
}

type PlanRepository struct {
	DB *sql.DB
}

// CreateWithItems inserts the plan and all of its items in one
// transaction. Either everything lands or nothing does.
func (r *PlanRepository) CreateWithItems(plan *model.Plan, items []model.PlanItem) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertPlan(tx, plan); err != nil {
		return err
	}
	for i := range items {
		items[i].PlanID = plan.ID
		query := `
            INSERT INTO plan_items (plan_id, format, message, canal, frequence, kpi)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id
        `
		err := tx.QueryRow(query, plan.ID, items[i].Format, items[i].Message, items[i].Canal, items[i].Frequence, items[i].KPI).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert plan item: %w", err)
		}
	}
	return tx.Commit()
}

// CreateWithArticles inserts the plan and its editorial articles in one
// transaction.
func (r *PlanRepository) CreateWithArticles(plan *model.Plan, articles []model.Article) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertPlan(tx, plan); err != nil {
		return err
	}
	for i := range articles {
		articles[i].PlanID = plan.ID
		query := `
            INSERT INTO articles (plan_id, nom, resume)
            VALUES ($1, $2, $3)
            RETURNING id
        `
		err := tx.QueryRow(query, plan.ID, articles[i].Nom, articles[i].Resume).Scan(&articles[i].ID)
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
	}
	return tx.Commit()
}

func insertPlan(tx *sql.Tx, plan *model.Plan) error {
	query := `
        INSERT INTO plans (scenario_id, configuration_id, resume)
        VALUES ($1, $2, $3)
        RETURNING id, generated_at
    `
	if err := tx.QueryRow(query, plan.ScenarioID, plan.ConfigurationID, plan.Resume).Scan(&plan.ID, &plan.GeneratedAt); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetLatest returns the most recent plan of the scenario with its items
// and articles, or nil when the scenario has no plan yet.
func (r *PlanRepository) GetLatest(scenarioID int) (*model.PlanDetail, error) {
	query := `
        SELECT id, scenario_id, configuration_id, resume, generated_at
        FROM plans
        WHERE scenario_id = $1
        ORDER BY generated_at DESC, id DESC
        LIMIT 1
    `
	var p model.Plan
	err := r.DB.QueryRow(query, scenarioID).Scan(&p.ID, &p.ScenarioID, &p.ConfigurationID, &p.Resume, &p.GeneratedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.ListItems(p.ID)
	if err != nil {
		return nil, err
	}
	articles, err := r.ListArticles(p.ID)
	if err != nil {
		return nil, err
	}
	return &model.PlanDetail{Plan: p, Items: items, Articles: articles}, nil
}

// Delete removes the plan; items and articles go with it via ON DELETE
// CASCADE.
func (r *PlanRepository) Delete(planID int) error {
	_, err := r.DB.Exec(`DELETE FROM plans WHERE id=$1`, planID)
	return err
}

func (r *PlanRepository) ListItems(planID int) ([]model.PlanItem, error) {
	query := `
        SELECT id, plan_id, format, message, canal, frequence, kpi
        FROM plan_items WHERE plan_id = $1 ORDER BY id
    `
	rows, err := r.DB.Query(query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.PlanItem{}
	for rows.Next() {
		var it model.PlanItem
		if err := rows.Scan(&it.ID, &it.PlanID, &it.Format, &it.Message, &it.Canal, &it.Frequence, &it.KPI); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PlanRepository) ListArticles(planID int) ([]model.Article, error) {
	query := `
        SELECT id, plan_id, nom, resume
        FROM articles WHERE plan_id = $1 ORDER BY id
    `
	rows, err := r.DB.Query(query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.PlanID, &a.Nom, &a.Resume); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

var _ PlanRepositoryInterface = (*PlanRepository)(nil)
