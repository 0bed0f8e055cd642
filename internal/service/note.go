package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/id"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// NoteService handles notes inside diaries. Notes are addressed by their
// parent diary's title and their own title, both scoped to the requesting
// user.
type NoteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// CreateNoteRequest contains new note data.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content"`
}

// UpdateNoteRequest contains note fields to change. Nil fields are left
// untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content"`
}

// resolveDiary locates the user's diary or reports not found.
func (s *NoteService) resolveDiary(ctx context.Context, authorID, diaryTitle string) (*domain.Diary, error) {
	return s.store.GetDiaryByTitle(ctx, authorID, diaryTitle)
}

// Create adds a note to the user's diary. A diary cannot hold two notes
// with the same title.
func (s *NoteService) Create(ctx context.Context, authorID, diaryTitle string, req CreateNoteRequest) (*domain.Note, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	diary, err := s.resolveDiary(ctx, authorID, diaryTitle)
	if err != nil {
		return nil, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	note := &domain.Note{
		ID:      noteID,
		DiaryID: diary.ID,
		Title:   req.Title,
		Content: req.Content,
	}
	note.InitTimestamps()

	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", "note_id", noteID, "diary_id", diary.ID)
	return note, nil
}

// List returns all notes in the user's diary ordered by title.
func (s *NoteService) List(ctx context.Context, authorID, diaryTitle string) ([]*domain.Note, error) {
	diary, err := s.resolveDiary(ctx, authorID, diaryTitle)
	if err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotesByDiary(ctx, diary.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []*domain.Note{}
	}
	return notes, nil
}

// Get returns the note with the given title from the user's diary.
func (s *NoteService) Get(ctx context.Context, authorID, diaryTitle, noteTitle string) (*domain.Note, error) {
	diary, err := s.resolveDiary(ctx, authorID, diaryTitle)
	if err != nil {
		return nil, err
	}
	return s.store.GetNoteByTitle(ctx, diary.ID, noteTitle)
}

// Update applies partial changes to a note and refreshes its updated
// timestamp. Renaming onto an existing title in the same diary is rejected.
func (s *NoteService) Update(ctx context.Context, authorID, diaryTitle, noteTitle string, req UpdateNoteRequest) (*domain.Note, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	diary, err := s.resolveDiary(ctx, authorID, diaryTitle)
	if err != nil {
		return nil, err
	}

	note, err := s.store.GetNoteByTitle(ctx, diary.ID, noteTitle)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.Touch()

	if err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "note_id", note.ID, "diary_id", diary.ID)
	return note, nil
}

// Delete removes the note with the given title from the user's diary.
func (s *NoteService) Delete(ctx context.Context, authorID, diaryTitle, noteTitle string) error {
	diary, err := s.resolveDiary(ctx, authorID, diaryTitle)
	if err != nil {
		return err
	}

	note, err := s.store.GetNoteByTitle(ctx, diary.ID, noteTitle)
	if err != nil {
		return err
	}

	if err := s.store.DeleteNote(ctx, diary.ID, note.ID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "note_id", note.ID, "diary_id", diary.ID)
	return nil
}
