package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{
		pool: pool,
	}
}

// Enqueue кладет событие в очередь. В сообщении только идентификаторы:
// получателей и заголовок задачи воркер разрешит на момент доставки,
// а не на момент постановки
func (r *NotificationRepo) Enqueue(ctx context.Context, e model.NotificationEvent) error {
	added := e.AddedUserIDs
	if added == nil {
		added = []int64{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification_events (kind, task_id, actor_id, added_user_ids)
		VALUES ($1, $2, $3, $4)
	`, e.Kind, e.TaskID, e.ActorID, added)
	return err
}

// ListForUser — входящие уведомления пользователя, новые первыми
func (r *NotificationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Delivery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, recipient_id, kind, task_id, status, attempts, last_error, next_attempt_at, sent_at, created_at
		FROM notification_deliveries
		WHERE recipient_id = $1 AND status = 'sent'
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]model.Delivery, 0, limit)
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.ID, &d.EventID, &d.RecipientID, &d.Kind, &d.TaskID, &d.Status, &d.Attempts, &d.LastError, &d.NextAttemptAt, &d.SentAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
