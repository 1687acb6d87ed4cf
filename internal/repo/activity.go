package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{
		pool: pool,
	}
}

// Append добавляет запись в журнал. Обновления и удаления записей
// не существует в принципе
func (r *ActivityRepo) Append(ctx context.Context, taskID, userID int64, description string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
	`, taskID, userID, description)
	return err
}

// ListByTask возвращает журнал от новых записей к старым
func (r *ActivityRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_id, user_id, description, created_at
		FROM task_activities
		WHERE task_id = $1
		ORDER BY created_at DESC, id DESC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.TaskID, &a.UserID, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
