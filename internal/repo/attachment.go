package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

const attachmentColumns = "id, task_id, user_id, kind, path, url, name, created_at"

type AttachmentRepo struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepo(pool *pgxpool.Pool) *AttachmentRepo {
	return &AttachmentRepo{
		pool: pool,
	}
}

func (r *AttachmentRepo) Create(ctx context.Context, a model.Attachment, entry *ActivityEntry) (model.Attachment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return a, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO task_attachments (task_id, user_id, kind, path, url, name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+attachmentColumns+`
	`, a.TaskID, a.UserID, a.Kind, a.Path, a.URL, a.Name).Scan(
		&a.ID, &a.TaskID, &a.UserID, &a.Kind, &a.Path, &a.URL, &a.Name, &a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if entry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, a.TaskID, entry.UserID, entry.Description); err != nil {
			return a, err
		}
	}

	return a, tx.Commit(ctx)
}

func (r *AttachmentRepo) Get(ctx context.Context, id int64) (model.Attachment, error) {
	var a model.Attachment
	err := r.pool.QueryRow(ctx, `
		SELECT `+attachmentColumns+` FROM task_attachments WHERE id = $1
	`, id).Scan(
		&a.ID, &a.TaskID, &a.UserID, &a.Kind, &a.Path, &a.URL, &a.Name, &a.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return a, ErrorNotFound
	}
	return a, err
}

func (r *AttachmentRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+attachmentColumns+`
		FROM task_attachments
		WHERE task_id = $1
		ORDER BY created_at, id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make([]model.Attachment, 0)
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.UserID, &a.Kind, &a.Path, &a.URL, &a.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *AttachmentRepo) Delete(ctx context.Context, id int64, entry *ActivityEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var taskID int64
	err = tx.QueryRow(ctx, "DELETE FROM task_attachments WHERE id = $1 RETURNING task_id", id).Scan(&taskID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}
	if err != nil {
		return err
	}

	if entry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, taskID, entry.UserID, entry.Description); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
