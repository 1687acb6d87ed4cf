package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = "id, title, description, status, priority, due_date, owner_id, created_at, updated_at"

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task, entry *ActivityEntry) (model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return t, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, priority, due_date, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taskColumns+`
	`, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.OwnerID).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, r.mapError(err)
	}

	if entry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, t.ID, entry.UserID, entry.Description); err != nil {
			return t, err
		}
	}

	return t, tx.Commit(ctx)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

// ListVisible возвращает задачи, доступные пользователю: свои, расшаренные
// ему как соавтору, а для роли admin — вообще все
func (r *TaskRepo) ListVisible(ctx context.Context, u model.User, filter model.TaskFilter, limit int) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR priority = $2)
		  AND ($5 OR owner_id = $3 OR id IN (SELECT task_id FROM task_collaborators WHERE user_id = $3))
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, filter.Status, filter.Priority, u.ID, limit, u.IsAdmin())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, limit)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update сохраняет задачу и записи журнала одной транзакцией: состояние
// "задача изменилась, а записи в журнале нет" наружу не видно
func (r *TaskRepo) Update(ctx context.Context, t model.Task, entries []ActivityEntry) (model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return t, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns+`
	`, t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	if err != nil {
		return t, err
	}

	for _, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, t.ID, e.UserID, e.Description); err != nil {
			return t, err
		}
	}

	return t, tx.Commit(ctx)
}

// Delete пишет запись об удалении до самого удаления. Каскад заберет
// журнал вместе с задачей, но в рамках транзакции порядок соблюден
func (r *TaskRepo) Delete(ctx context.Context, id int64, entry *ActivityEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if entry != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_activities (task_id, user_id, description) VALUES ($1, $2, $3)
		`, id, entry.UserID, entry.Description); err != nil {
			return err
		}
	}

	cmd, err := tx.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}

	return tx.Commit(ctx)
}

func (r *TaskRepo) SaveIdempotencyKey(ctx context.Context, key string, resourceID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, resource_id) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`, key, resourceID)
	return err
}

func (r *TaskRepo) GetIdempotencyKey(ctx context.Context, key string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT resource_id FROM idempotency_keys WHERE key = $1
	`, key).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrorNotFound
	}
	return id, err
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
