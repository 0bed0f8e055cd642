package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/id"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// DiaryService handles diary management. All operations are scoped to the
// requesting user; one user's diaries are invisible to another.
type DiaryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDiaryService creates a new diary service.
func NewDiaryService(store store.Store, logger *slog.Logger) *DiaryService {
	return &DiaryService{store: store, logger: logger}
}

// CreateDiaryRequest contains new diary data.
type CreateDiaryRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// DiaryDetail is a diary together with its notes.
type DiaryDetail struct {
	*domain.Diary
	Notes []*domain.Note `json:"notes"`
}

// Create creates a new diary for the user. A user cannot hold two diaries
// with the same title.
func (s *DiaryService) Create(ctx context.Context, authorID string, req CreateDiaryRequest) (*domain.Diary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	diaryID, err := id.Generate("diary")
	if err != nil {
		return nil, fmt.Errorf("generate diary ID: %w", err)
	}

	diary := &domain.Diary{
		ID:        diaryID,
		AuthorID:  authorID,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateDiary(ctx, diary); err != nil {
		return nil, err
	}

	s.logger.Info("diary created", "diary_id", diaryID, "author_id", authorID)
	return diary, nil
}

// List returns all of the user's diaries ordered by title.
func (s *DiaryService) List(ctx context.Context, authorID string) ([]*domain.Diary, error) {
	diaries, err := s.store.ListDiariesByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}
	if diaries == nil {
		diaries = []*domain.Diary{}
	}
	return diaries, nil
}

// Get returns the user's diary with the given title, including its notes.
func (s *DiaryService) Get(ctx context.Context, authorID, title string) (*DiaryDetail, error) {
	diary, err := s.store.GetDiaryByTitle(ctx, authorID, title)
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

	return &DiaryDetail{Diary: diary, Notes: notes}, nil
}

// Delete removes the user's diary with the given title along with all of
// its notes.
func (s *DiaryService) Delete(ctx context.Context, authorID, title string) error {
	diary, err := s.store.GetDiaryByTitle(ctx, authorID, title)
	if err != nil {
		return err
	}

	if err := s.store.DeleteDiary(ctx, authorID, diary.ID); err != nil {
		return err
	}

	s.logger.Info("diary deleted", "diary_id", diary.ID, "author_id", authorID)
	return nil
}
