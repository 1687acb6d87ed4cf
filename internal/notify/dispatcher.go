package notify

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

// ErrNoWork — в очереди пусто, воркер подождет следующего тика
var ErrNoWork = errors.New("no work")

const (
	maxAttempts = 5
	retryDelay  = 30 * time.Second
)

// Dispatcher обрабатывает очередь в два шага. FanOutNext разворачивает
// событие в доставки по получателям, DeliverNext отправляет одну доставку.
// Оба забирают строку через FOR UPDATE SKIP LOCKED, так что несколько
// воркеров не мешают друг другу и не берут одну и ту же работу
type Dispatcher struct {
	pool   *pgxpool.Pool
	sender Sender
	logger *zap.Logger
}

func NewDispatcher(pool *pgxpool.Pool, sender Sender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		pool:   pool,
		sender: sender,
		logger: logger,
	}
}

// FanOutNext забирает одно необработанное событие, разрешает получателей
// по текущему состоянию БД и создает по доставке на каждого. Все одной
// транзакцией: упали — событие останется pending и будет взято снова
func (d *Dispatcher) FanOutNext(ctx context.Context) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var e model.NotificationEvent
	err = tx.QueryRow(ctx, `
		SELECT id, kind, task_id, actor_id, added_user_ids
		FROM notification_events
		WHERE status = 'pending'
		ORDER BY created_at, id
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&e.ID, &e.Kind, &e.TaskID, &e.ActorID, &e.AddedUserIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoWork
	}
	if err != nil {
		return err
	}

	recipients, err := d.resolveRecipients(ctx, tx, e)
	if err != nil {
		return err
	}

	for _, userID := range recipients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO notification_deliveries (event_id, recipient_id, kind, task_id)
			VALUES ($1, $2, $3, $4)
		`, e.ID, userID, e.Kind, e.TaskID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE notification_events SET status = 'fanned_out' WHERE id = $1
	`, e.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	d.logger.Info("event fanned out",
		zap.Int64("event_id", e.ID),
		zap.String("kind", e.Kind),
		zap.Int64("task_id", e.TaskID),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

// resolveRecipients вычисляет круг получателей на момент обработки,
// а не на момент события. Актор исключается всегда
func (d *Dispatcher) resolveRecipients(ctx context.Context, tx pgx.Tx, e model.NotificationEvent) ([]int64, error) {
	var ownerID int64
	err := tx.QueryRow(ctx, "SELECT owner_id FROM tasks WHERE id = $1", e.TaskID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Задачу успели удалить — уведомлять не о чем
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []int64
	switch e.Kind {
	case model.EventTaskCreated:
		// Только роль admin. Semi_admin сюда не входит намеренно:
		// привилегии дашборда и маршрутизация уведомлений — разные вещи
		ids, err = d.queryIDs(ctx, tx, "SELECT id FROM users WHERE role = 'admin' ORDER BY id")

	case model.EventCollaboratorsAdded:
		ids = e.AddedUserIDs

	case model.EventCommentAdded:
		ids, err = d.queryIDs(ctx, tx, "SELECT user_id FROM task_collaborators WHERE task_id = $1 ORDER BY user_id", e.TaskID)

	case model.EventTaskCompleted:
		ids, err = d.queryIDs(ctx, tx, "SELECT user_id FROM task_collaborators WHERE task_id = $1 ORDER BY user_id", e.TaskID)
		if err == nil {
			ids = append(ids, ownerID)
			var admins []int64
			admins, err = d.queryIDs(ctx, tx, "SELECT id FROM users WHERE role = 'admin' ORDER BY id")
			ids = append(ids, admins...)
		}
	}
	if err != nil {
		return nil, err
	}

	exclude := make([]int64, 0, 2)
	if e.ActorID != nil {
		exclude = append(exclude, *e.ActorID)
	}
	if e.Kind == model.EventCollaboratorsAdded {
		exclude = append(exclude, ownerID)
	}

	return dedupExclude(ids, exclude...), nil
}

func (d *Dispatcher) queryIDs(ctx context.Context, tx pgx.Tx, query string, args ...any) ([]int64, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeliverNext забирает одну готовую к отправке доставку и отправляет.
// Неудача одного получателя не трогает остальных: у каждой доставки
// свой счетчик попыток и свое время следующей попытки
func (d *Dispatcher) DeliverNext(ctx context.Context) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var dl model.Delivery
	err = tx.QueryRow(ctx, `
		SELECT id, event_id, recipient_id, kind, task_id, attempts
		FROM notification_deliveries
		WHERE status = 'pending' AND next_attempt_at <= now()
		ORDER BY next_attempt_at, id
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&dl.ID, &dl.EventID, &dl.RecipientID, &dl.Kind, &dl.TaskID, &dl.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoWork
	}
	if err != nil {
		return err
	}

	n, err := d.buildNotification(ctx, tx, dl)
	if err != nil {
		return err
	}

	if sendErr := d.sender.Send(ctx, n); sendErr != nil {
		if err := d.scheduleRetry(ctx, tx, dl, sendErr); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE notification_deliveries SET status = 'sent', sent_at = now() WHERE id = $1
	`, dl.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// buildNotification перечитывает получателя и задачу на момент доставки:
// доставка могла пролежать в очереди, снимок на момент события устарел бы
func (d *Dispatcher) buildNotification(ctx context.Context, tx pgx.Tx, dl model.Delivery) (model.Notification, error) {
	n := model.Notification{
		RecipientID: dl.RecipientID,
		Kind:        dl.Kind,
		TaskID:      dl.TaskID,
	}

	if err := tx.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", dl.RecipientID).Scan(&n.RecipientEmail); err != nil {
		return n, err
	}

	err := tx.QueryRow(ctx, "SELECT title FROM tasks WHERE id = $1", dl.TaskID).Scan(&n.TaskTitle)
	if errors.Is(err, pgx.ErrNoRows) {
		n.TaskTitle = "a deleted task" // задача ушла, уведомление еще живо
	} else if err != nil {
		return n, err
	}

	n.Message = messageFor(dl.Kind, n.TaskTitle)
	return n, nil
}

func (d *Dispatcher) scheduleRetry(ctx context.Context, tx pgx.Tx, dl model.Delivery, sendErr error) error {
	attempts := dl.Attempts + 1
	status := model.DeliveryPending
	if attempts >= maxAttempts {
		status = model.DeliveryFailed
		d.logger.Error("delivery gave up",
			zap.Int64("delivery_id", dl.ID),
			zap.Int64("recipient_id", dl.RecipientID),
			zap.Error(sendErr),
		)
	}

	nextAttempt := time.Now().Add(retryDelay * time.Duration(attempts))
	_, err := tx.Exec(ctx, `
		UPDATE notification_deliveries
		SET attempts = $2, status = $3, last_error = $4, next_attempt_at = $5
		WHERE id = $1
	`, dl.ID, attempts, status, sendErr.Error(), nextAttempt)
	return err
}
