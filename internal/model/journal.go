package model

import "time"

const (
	MoodGreat   = "great"
	MoodGood    = "good"
	MoodNeutral = "neutral"
	MoodBad     = "bad"
	MoodAwful   = "awful"
)

// Journal — одна запись на пользователя на календарную дату
type Journal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Mood      *string   `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JournalNote struct {
	ID        int64     `json:"id"`
	JournalID int64     `json:"journal_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidMood(m string) bool {
	switch m {
	case MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful:
		return true
	}
	return false
}
