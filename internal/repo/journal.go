package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

const journalColumns = "id, user_id, entry_date, mood, created_at, updated_at"
const noteColumns = "id, journal_id, title, content, color, created_at, updated_at"

type JournalRepo struct {
	pool *pgxpool.Pool
}

func NewJournalRepo(pool *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{
		pool: pool,
	}
}

// GetOrCreate возвращает запись за дату, создавая ее при первом обращении.
// Уникальность (user_id, entry_date) гарантирует одну запись на день
func (r *JournalRepo) GetOrCreate(ctx context.Context, userID int64, date time.Time) (model.Journal, error) {
	var j model.Journal
	err := r.pool.QueryRow(ctx, `
		INSERT INTO journals (user_id, entry_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET updated_at = journals.updated_at
		RETURNING `+journalColumns+`
	`, userID, date).Scan(
		&j.ID, &j.UserID, &j.EntryDate, &j.Mood, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

func (r *JournalRepo) Get(ctx context.Context, id int64) (model.Journal, error) {
	var j model.Journal
	err := r.pool.QueryRow(ctx, `
		SELECT `+journalColumns+` FROM journals WHERE id = $1
	`, id).Scan(
		&j.ID, &j.UserID, &j.EntryDate, &j.Mood, &j.CreatedAt, &j.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return j, ErrorNotFound
	}
	return j, err
}

func (r *JournalRepo) SetMood(ctx context.Context, journalID int64, mood *string) (model.Journal, error) {
	var j model.Journal
	err := r.pool.QueryRow(ctx, `
		UPDATE journals SET mood = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+journalColumns+`
	`, journalID, mood).Scan(
		&j.ID, &j.UserID, &j.EntryDate, &j.Mood, &j.CreatedAt, &j.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return j, ErrorNotFound
	}
	return j, err
}

func (r *JournalRepo) ListNotes(ctx context.Context, journalID int64) ([]model.JournalNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM journal_notes
		WHERE journal_id = $1
		ORDER BY created_at, id
	`, journalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]model.JournalNote, 0)
	for rows.Next() {
		var n model.JournalNote
		if err := rows.Scan(&n.ID, &n.JournalID, &n.Title, &n.Content, &n.Color, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *JournalRepo) CreateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO journal_notes (journal_id, title, content, color)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns+`
	`, n.JournalID, n.Title, n.Content, n.Color).Scan(
		&n.ID, &n.JournalID, &n.Title, &n.Content, &n.Color, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func (r *JournalRepo) GetNote(ctx context.Context, id int64) (model.JournalNote, error) {
	var n model.JournalNote
	err := r.pool.QueryRow(ctx, `
		SELECT `+noteColumns+` FROM journal_notes WHERE id = $1
	`, id).Scan(
		&n.ID, &n.JournalID, &n.Title, &n.Content, &n.Color, &n.CreatedAt, &n.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return n, ErrorNotFound
	}
	return n, err
}

func (r *JournalRepo) UpdateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE journal_notes SET title = $2, content = $3, color = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+noteColumns+`
	`, n.ID, n.Title, n.Content, n.Color).Scan(
		&n.ID, &n.JournalID, &n.Title, &n.Content, &n.Color, &n.CreatedAt, &n.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return n, ErrorNotFound
	}
	return n, err
}

func (r *JournalRepo) DeleteNote(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM journal_notes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
