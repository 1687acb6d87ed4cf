package repo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}

	// Очистка
	pool.Exec(context.Background(), `
		TRUNCATE users, tasks, task_collaborators, task_activities,
			task_comments, task_attachments, notification_events,
			notification_deliveries, idempotency_keys
		RESTART IDENTITY CASCADE
	`)

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email, role string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $1, 'x', $2) RETURNING id
	`, email, role).Scan(&id)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestTaskRepo_Create(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ownerID := seedUser(t, pool, "owner@example.com", "employee")
	repo := NewTaskRepo(pool)

	task := model.Task{
		Title:    "Test",
		Status:   model.StatusNotStarted,
		Priority: model.PriorityMedium,
		OwnerID:  ownerID,
	}

	created, err := repo.Create(context.Background(), task, &ActivityEntry{
		UserID:      ownerID,
		Description: "created this task.",
	})
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if created.Status != model.StatusNotStarted {
		t.Errorf("expected status=not_started, got %s", created.Status)
	}

	// Запись журнала должна появиться в той же транзакции
	var desc string
	err = pool.QueryRow(context.Background(),
		"SELECT description FROM task_activities WHERE task_id = $1", created.ID).Scan(&desc)
	if err != nil {
		t.Fatal(err)
	}
	if desc != "created this task." {
		t.Errorf("unexpected activity description: %s", desc)
	}
}

func TestTaskRepo_Get_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTaskRepo(pool)

	_, err := repo.Get(context.Background(), 99999)
	if !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestTaskRepo_ListVisible(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	ownerID := seedUser(t, pool, "owner2@example.com", "employee")
	collabID := seedUser(t, pool, "collab@example.com", "employee")
	strangerID := seedUser(t, pool, "stranger@example.com", "employee")
	adminID := seedUser(t, pool, "admin@example.com", "admin")

	repo := NewTaskRepo(pool)

	created, err := repo.Create(ctx, model.Task{
		Title:    "Shared",
		Status:   model.StatusNotStarted,
		Priority: model.PriorityMedium,
		OwnerID:  ownerID,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO task_collaborators (task_id, user_id, permission) VALUES ($1, $2, 'view')
	`, created.ID, collabID); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		user model.User
		want int
	}{
		{"owner sees own task", model.User{ID: ownerID, Role: model.RoleEmployee}, 1},
		{"collaborator sees shared task", model.User{ID: collabID, Role: model.RoleEmployee}, 1},
		{"stranger sees nothing", model.User{ID: strangerID, Role: model.RoleEmployee}, 0},
		{"admin sees everything", model.User{ID: adminID, Role: model.RoleAdmin}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := repo.ListVisible(ctx, tc.user, model.TaskFilter{}, 20)
			if err != nil {
				t.Fatal(err)
			}
			if len(tasks) != tc.want {
				t.Errorf("expected %d tasks, got %d", tc.want, len(tasks))
			}
		})
	}
}

func TestTaskRepo_Delete(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	ownerID := seedUser(t, pool, "owner3@example.com", "employee")
	repo := NewTaskRepo(pool)

	created, err := repo.Create(ctx, model.Task{
		Title:    "Doomed",
		Status:   model.StatusNotStarted,
		Priority: model.PriorityMedium,
		OwnerID:  ownerID,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, created.ID, &ActivityEntry{UserID: ownerID, Description: "deleted task: Doomed"}); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected ErrorNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, created.ID, nil); !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected ErrorNotFound on second delete, got %v", err)
	}
}

func TestTaskRepo_IdempotencyKeys(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	repo := NewTaskRepo(pool)

	if _, err := repo.GetIdempotencyKey(ctx, "missing"); !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}

	if err := repo.SaveIdempotencyKey(ctx, "key-1", 7); err != nil {
		t.Fatal(err)
	}
	// Повторное сохранение того же ключа не перезаписывает ресурс
	if err := repo.SaveIdempotencyKey(ctx, "key-1", 8); err != nil {
		t.Fatal(err)
	}

	id, err := repo.GetIdempotencyKey(ctx, "key-1")
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Errorf("expected resource_id=7, got %d", id)
	}
}
