package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

const commentColumns = "id, task_id, user_id, parent_id, body, created_at, updated_at"

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{
		pool: pool,
	}
}

// Create вставляет комментарий и запись журнала одной транзакцией
func (r *CommentRepo) Create(ctx context.Context, c model.Comment, entry *ActivityEntry) (model.Comment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return c, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO task_comments (task_id, user_id, parent_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns+`
	`, c.TaskID, c.UserID, c.ParentID, c.Body).Scan(
		&c.ID, &c.TaskID, &c.UserID, &c.ParentID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}

	if entry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, c.TaskID, entry.UserID, entry.Description); err != nil {
			return c, err
		}
	}

	return c, tx.Commit(ctx)
}

func (r *CommentRepo) Get(ctx context.Context, id int64) (model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT `+commentColumns+` FROM task_comments WHERE id = $1
	`, id).Scan(
		&c.ID, &c.TaskID, &c.UserID, &c.ParentID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrorNotFound
	}
	return c, err
}

// ListByTask возвращает комментарии задачи в хронологическом порядке,
// ответы идут в общем списке со ссылкой на родителя
func (r *CommentRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM task_comments
		WHERE task_id = $1
		ORDER BY created_at, id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.ParentID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM task_comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
