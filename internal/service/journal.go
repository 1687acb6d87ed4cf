package service

import (
	"context"
	"strings"
	"time"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

// JournalService — личный дневник. К задачам отношения не имеет,
// каждый видит только свои записи
type JournalService struct {
	journals repo.JournalRepository
}

func NewJournalService(journals repo.JournalRepository) *JournalService {
	return &JournalService{journals: journals}
}

type JournalEntry struct {
	model.Journal
	Notes []model.JournalNote `json:"notes"`
}

type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

func (s *JournalService) Entry(ctx context.Context, actor model.User, date time.Time) (JournalEntry, error) {
	j, err := s.journals.GetOrCreate(ctx, actor.ID, date)
	if err != nil {
		return JournalEntry{}, err
	}

	notes, err := s.journals.ListNotes(ctx, j.ID)
	if err != nil {
		return JournalEntry{}, err
	}
	return JournalEntry{Journal: j, Notes: notes}, nil
}

func (s *JournalService) SetMood(ctx context.Context, actor model.User, date time.Time, mood *string) (model.Journal, error) {
	if mood != nil && !model.ValidMood(*mood) {
		return model.Journal{}, ErrValidation
	}

	j, err := s.journals.GetOrCreate(ctx, actor.ID, date)
	if err != nil {
		return j, err
	}
	return s.journals.SetMood(ctx, j.ID, mood)
}

func (s *JournalService) AddNote(ctx context.Context, actor model.User, date time.Time, in NoteInput) (model.JournalNote, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.JournalNote{}, ErrValidation
	}
	if in.Color == "" {
		in.Color = "#ffffff"
	}

	j, err := s.journals.GetOrCreate(ctx, actor.ID, date)
	if err != nil {
		return model.JournalNote{}, err
	}

	return s.journals.CreateNote(ctx, model.JournalNote{
		JournalID: j.ID,
		Title:     in.Title,
		Content:   in.Content,
		Color:     in.Color,
	})
}

func (s *JournalService) UpdateNote(ctx context.Context, actor model.User, noteID int64, in NoteInput) (model.JournalNote, error) {
	n, err := s.ownedNote(ctx, actor, noteID)
	if err != nil {
		return n, err
	}

	if in.Title != "" {
		n.Title = in.Title
	}
	if in.Content != "" {
		n.Content = in.Content
	}
	if in.Color != "" {
		n.Color = in.Color
	}
	return s.journals.UpdateNote(ctx, n)
}

func (s *JournalService) DeleteNote(ctx context.Context, actor model.User, noteID int64) error {
	if _, err := s.ownedNote(ctx, actor, noteID); err != nil {
		return err
	}
	return s.journals.DeleteNote(ctx, noteID)
}

func (s *JournalService) ownedNote(ctx context.Context, actor model.User, noteID int64) (model.JournalNote, error) {
	n, err := s.journals.GetNote(ctx, noteID)
	if err != nil {
		return n, err
	}

	j, err := s.journals.Get(ctx, n.JournalID)
	if err != nil {
		return n, err
	}
	if j.UserID != actor.ID {
		return n, ErrForbidden
	}
	return n, nil
}
