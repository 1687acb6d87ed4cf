package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

type CollaboratorRepo struct {
	pool *pgxpool.Pool
}

func NewCollaboratorRepo(pool *pgxpool.Pool) *CollaboratorRepo {
	return &CollaboratorRepo{
		pool: pool,
	}
}

func (r *CollaboratorRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Collaborator, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT task_id, user_id, permission, created_at
		FROM task_collaborators
		WHERE task_id = $1
		ORDER BY created_at, user_id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]model.Collaborator, 0)
	for rows.Next() {
		var l model.Collaborator
		if err := rows.Scan(&l.TaskID, &l.UserID, &l.Permission, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Sync заменяет набор соавторов целиком: убирает лишних, добавляет новых,
// обновляет уровень доступа у оставшихся. Возвращает id только что
// добавленных пользователей — они нужны для рассылки уведомлений.
// Конкурентные правки набора решаются по принципу "последний победил"
func (r *CollaboratorRepo) Sync(ctx context.Context, taskID int64, links []model.Collaborator) ([]int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Блокировка строки задачи сериализует синхронизации одного набора:
	// блокировать сами строки связей недостаточно, их может еще не быть
	if _, err := tx.Exec(ctx, "SELECT id FROM tasks WHERE id = $1 FOR UPDATE", taskID); err != nil {
		return nil, err
	}

	existing := make(map[int64]bool)
	rows, err := tx.Query(ctx, "SELECT user_id FROM task_collaborators WHERE task_id = $1", taskID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	keep := make([]int64, 0, len(links))
	added := make([]int64, 0)
	for _, l := range links {
		keep = append(keep, l.UserID)
		if !existing[l.UserID] {
			added = append(added, l.UserID)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO task_collaborators (task_id, user_id, permission)
			VALUES ($1, $2, $3)
			ON CONFLICT (task_id, user_id) DO UPDATE SET permission = EXCLUDED.permission
		`, taskID, l.UserID, l.Permission); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM task_collaborators WHERE task_id = $1 AND user_id != ALL($2)
	`, taskID, keep); err != nil {
		return nil, err
	}

	return added, tx.Commit(ctx)
}
