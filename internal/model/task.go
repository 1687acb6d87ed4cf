package model

import "time"

// Статусы и приоритеты задач — закрытые наборы значений,
// совпадающие с CHECK-ограничениями в схеме
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	PermissionView    = "view"
	PermissionComment = "comment"
	PermissionEdit    = "edit"
)

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskFilter struct {
	Status   *string
	Priority *string
}

// Collaborator — строка связи задача-пользователь с уровнем доступа
type Collaborator struct {
	TaskID     int64     `json:"task_id"`
	UserID     int64     `json:"user_id"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}

// Activity — запись журнала изменений. После вставки не меняется
type Activity struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	UserID      *int64    `json:"user_id"` // nil — автор удален
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    *int64    `json:"user_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	AttachmentFile  = "file"
	AttachmentImage = "image"
	AttachmentLink  = "link"
)

type Attachment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    *int64    `json:"user_id"`
	Kind      string    `json:"kind"`
	Path      *string   `json:"path,omitempty"`
	URL       *string   `json:"url,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidPermission(p string) bool {
	switch p {
	case PermissionView, PermissionComment, PermissionEdit:
		return true
	}
	return false
}
