package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

const noteColumns = `id, diary_id, title, content, created_at, updated_at`

func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note
	var createdAt, updatedAt string

	if err := scanner.Scan(&n.ID, &n.DiaryID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &n, nil
}

// CreateNote inserts a new note. Duplicate titles within the same diary are
// rejected by the UNIQUE (diary_id, title) constraint.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, diary_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.DiaryID, note.Title, note.Content,
		formatTime(note.CreatedAt), formatTime(note.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "notes.") {
			return store.ErrAlreadyExists.WithMessage("this note already exists")
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetNoteByTitle retrieves the diary's note with the given title.
func (s *Store) GetNoteByTitle(ctx context.Context, diaryID, title string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE diary_id = ? AND title = ?`,
		diaryID, title)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("note not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// ListNotesByDiary returns all of the diary's notes ordered by title.
func (s *Store) ListNotesByDiary(ctx context.Context, diaryID string) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE diary_id = ? ORDER BY title`,
		diaryID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// UpdateNote performs a full row update of the note's title and content.
func (s *Store) UpdateNote(ctx context.Context, note *domain.Note) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND diary_id = ?`,
		note.Title, note.Content, formatTime(note.UpdatedAt),
		note.ID, note.DiaryID,
	)
	if err != nil {
		if isUniqueViolation(err, "notes.") {
			return store.ErrAlreadyExists.WithMessage("this note already exists")
		}
		return fmt.Errorf("update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("note not found")
	}
	return nil
}

// DeleteNote removes the note from its diary.
func (s *Store) DeleteNote(ctx context.Context, diaryID, noteID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND diary_id = ?`, noteID, diaryID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("note not found")
	}
	return nil
}
