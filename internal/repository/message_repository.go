package repository

import (
	"database/sql"
	"time"

	"github.com/silenusdev/assistant-marketing/internal/model"
)

type MessageRepositoryInterface interface {
	Append(m *model.Message) error
	ListRecent(scenarioID, limit int) ([]model.Message, error)
	PurgeExpired(now time.Time) (int, error)
}

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) Append(m *model.Message) error {
	query := `
        INSERT INTO messages (scenario_id, auteur, contenu, role_action, ttl)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, m.ScenarioID, m.Auteur, m.Contenu, m.RoleAction, m.TTL).Scan(&m.ID, &m.CreatedAt)
}

// ListRecent returns the newest messages first. Callers wanting a
// chronological transcript reverse the slice.
func (r *MessageRepository) ListRecent(scenarioID, limit int) ([]model.Message, error) {
	query := `
        SELECT id, scenario_id, auteur, contenu, role_action, ttl, created_at, updated_at
        FROM messages
        WHERE scenario_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2
    `
	rows, err := r.DB.Query(query, scenarioID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ScenarioID, &m.Auteur, &m.Contenu, &m.RoleAction, &m.TTL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// PurgeExpired deletes messages whose ttl is strictly before now and
// returns the number of rows removed. Messages with a NULL ttl are kept
// forever.
func (r *MessageRepository) PurgeExpired(now time.Time) (int, error) {
	res, err := r.DB.Exec(`DELETE FROM messages WHERE ttl IS NOT NULL AND ttl < $1`, now)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
