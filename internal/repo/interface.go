package repo

import (
	"context"
	"time"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

// ActivityEntry — запись журнала, которую нужно добавить в той же
// транзакции, что и саму мутацию
type ActivityEntry struct {
	UserID      int64
	Description string
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task, entry *ActivityEntry) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	ListVisible(ctx context.Context, u model.User, filter model.TaskFilter, limit int) ([]model.Task, error)
	Update(ctx context.Context, t model.Task, entries []ActivityEntry) (model.Task, error)
	Delete(ctx context.Context, id int64, entry *ActivityEntry) error
	SaveIdempotencyKey(ctx context.Context, key string, resourceID int64) error
	GetIdempotencyKey(ctx context.Context, key string) (int64, error)
	GetStats(ctx context.Context) (Stats, error)
}

// CollaboratorRepository управляет набором соавторов задачи
type CollaboratorRepository interface {
	ListByTask(ctx context.Context, taskID int64) ([]model.Collaborator, error)
	// Sync заменяет набор соавторов и возвращает id пользователей,
	// которых раньше в наборе не было
	Sync(ctx context.Context, taskID int64, links []model.Collaborator) ([]int64, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, taskID, userID int64, description string) error
	ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c model.Comment, entry *ActivityEntry) (model.Comment, error)
	Get(ctx context.Context, id int64) (model.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, a model.Attachment, entry *ActivityEntry) (model.Attachment, error)
	Get(ctx context.Context, id int64) (model.Attachment, error)
	ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error)
	Delete(ctx context.Context, id int64, entry *ActivityEntry) error
}

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type JournalRepository interface {
	GetOrCreate(ctx context.Context, userID int64, date time.Time) (model.Journal, error)
	Get(ctx context.Context, id int64) (model.Journal, error)
	SetMood(ctx context.Context, journalID int64, mood *string) (model.Journal, error)
	ListNotes(ctx context.Context, journalID int64) ([]model.JournalNote, error)
	CreateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error)
	GetNote(ctx context.Context, id int64) (model.JournalNote, error)
	UpdateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error)
	DeleteNote(ctx context.Context, id int64) error
}

// NotificationRepository кладет события в очередь. Читает и доставляет их
// воркер, у него свои запросы с блокировкой строк
type NotificationRepository interface {
	Enqueue(ctx context.Context, e model.NotificationEvent) error
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Delivery, error)
}
