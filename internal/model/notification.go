package model

import "time"

// Виды событий, порождающих уведомления
const (
	EventTaskCreated        = "task_created"
	EventCollaboratorsAdded = "collaborators_added"
	EventCommentAdded       = "comment_added"
	EventTaskCompleted      = "task_completed"
)

const (
	EventPending   = "pending"
	EventFannedOut = "fanned_out"

	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// NotificationEvent — долговременная ссылка на событие: несем идентификаторы,
// а не снимок данных. Воркер перечитывает актуальное состояние при обработке
type NotificationEvent struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	TaskID       int64     `json:"task_id"`
	ActorID      *int64    `json:"actor_id"`
	AddedUserIDs []int64   `json:"added_user_ids"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Delivery — единица работы на одного получателя, со своим счетчиком попыток
type Delivery struct {
	ID            int64      `json:"id"`
	EventID       int64      `json:"event_id"`
	RecipientID   int64      `json:"recipient_id"`
	Kind          string     `json:"kind"`
	TaskID        int64      `json:"task_id"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	LastError     *string    `json:"last_error,omitempty"`
	NextAttemptAt time.Time  `json:"next_attempt_at"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Notification — то, что реально уходит получателю
type Notification struct {
	RecipientID    int64  `json:"recipient_id"`
	RecipientEmail string `json:"recipient_email"`
	Kind           string `json:"kind"`
	TaskID         int64  `json:"task_id"`
	TaskTitle      string `json:"task_title"`
	Message        string `json:"message"`
}
