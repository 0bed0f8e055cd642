package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

const diaryColumns = `id, author_id, title, created_at`

func scanDiary(scanner interface{ Scan(dest ...any) error }) (*domain.Diary, error) {
	var d domain.Diary
	var createdAt string

	if err := scanner.Scan(&d.ID, &d.AuthorID, &d.Title, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &d, nil
}

// CreateDiary inserts a new diary. The UNIQUE (author_id, title) constraint
// is the only uniqueness check; a concurrent duplicate insert surfaces here
// as ErrAlreadyExists.
func (s *Store) CreateDiary(ctx context.Context, diary *domain.Diary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO diaries (id, author_id, title, created_at)
		VALUES (?, ?, ?, ?)`,
		diary.ID, diary.AuthorID, diary.Title, formatTime(diary.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "diaries.") {
			return store.ErrAlreadyExists.WithMessage("this diary already exists")
		}
		return fmt.Errorf("insert diary: %w", err)
	}
	return nil
}

// GetDiaryByTitle retrieves the author's diary with the given title.
func (s *Store) GetDiaryByTitle(ctx context.Context, authorID, title string) (*domain.Diary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+diaryColumns+` FROM diaries WHERE author_id = ? AND title = ?`,
		authorID, title)

	diary, err := scanDiary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("diary not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get diary: %w", err)
	}
	return diary, nil
}

// ListDiariesByAuthor returns all of the author's diaries ordered by title.
func (s *Store) ListDiariesByAuthor(ctx context.Context, authorID string) ([]*domain.Diary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+diaryColumns+` FROM diaries WHERE author_id = ? ORDER BY title`,
		authorID)
	if err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}
	defer rows.Close()

	var diaries []*domain.Diary
	for rows.Next() {
		diary, err := scanDiary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan diary: %w", err)
		}
		diaries = append(diaries, diary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diaries: %w", err)
	}
	return diaries, nil
}

// DeleteDiary removes the author's diary. The ON DELETE CASCADE on notes
// removes the diary's notes in the same statement.
func (s *Store) DeleteDiary(ctx context.Context, authorID, diaryID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM diaries WHERE id = ? AND author_id = ?`, diaryID, authorID)
	if err != nil {
		return fmt.Errorf("delete diary: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("diary not found")
	}
	return nil
}
