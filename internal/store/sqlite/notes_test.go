package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/id"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

func createTestNote(t *testing.T, s *Store, diaryID, title string) *domain.Note {
	t.Helper()

	note := &domain.Note{
		ID:      id.MustGenerate("note"),
		DiaryID: diaryID,
		Title:   title,
		Content: "content of " + title,
	}
	note.InitTimestamps()
	if err := s.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	return note
}

func TestCreateNote_DuplicateTitleSameDiary(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")
	createTestNote(t, s, diary.ID, "Day one")

	dup := &domain.Note{
		ID:      id.MustGenerate("note"),
		DiaryID: diary.ID,
		Title:   "Day one",
	}
	dup.InitTimestamps()

	err := s.CreateNote(context.Background(), dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateNote_SameTitleDifferentDiaries(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	travel := createTestDiary(t, s, user.ID, "Travel")
	work := createTestDiary(t, s, user.ID, "Work")

	createTestNote(t, s, travel.ID, "Day one")
	createTestNote(t, s, work.ID, "Day one")

	got, err := s.GetNoteByTitle(context.Background(), work.ID, "Day one")
	if err != nil {
		t.Fatalf("GetNoteByTitle: %v", err)
	}
	if got.DiaryID != work.ID {
		t.Errorf("diary = %q, want %q", got.DiaryID, work.ID)
	}
}

func TestGetNoteByTitle_ScopedToDiary(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	travel := createTestDiary(t, s, user.ID, "Travel")
	work := createTestDiary(t, s, user.ID, "Work")
	createTestNote(t, s, travel.ID, "Day one")

	_, err := s.GetNoteByTitle(context.Background(), work.ID, "Day one")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNotesByDiary_OrderedByTitle(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")
	createTestNote(t, s, diary.ID, "Packing list")
	createTestNote(t, s, diary.ID, "Arrival")
	createTestNote(t, s, diary.ID, "Day one")

	notes, err := s.ListNotesByDiary(context.Background(), diary.ID)
	if err != nil {
		t.Fatalf("ListNotesByDiary: %v", err)
	}
	want := []string{"Arrival", "Day one", "Packing list"}
	if len(notes) != len(want) {
		t.Fatalf("got %d notes, want %d", len(notes), len(want))
	}
	for i, title := range want {
		if notes[i].Title != title {
			t.Errorf("notes[%d].Title = %q, want %q", i, notes[i].Title, title)
		}
	}
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")
	note := createTestNote(t, s, diary.ID, "Day one")

	time.Sleep(time.Millisecond) // ensure updated_at moves forward
	note.Title = "Day 1"
	note.Content = "rewritten"
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	got, err := s.GetNoteByTitle(ctx, diary.ID, "Day 1")
	if err != nil {
		t.Fatalf("GetNoteByTitle: %v", err)
	}
	if got.Content != "rewritten" {
		t.Errorf("content = %q, want %q", got.Content, "rewritten")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("updated_at %v not after created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateNote_TitleConflict(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")
	createTestNote(t, s, diary.ID, "Day one")
	note := createTestNote(t, s, diary.ID, "Day two")

	note.Title = "Day one"
	note.Touch()
	err := s.UpdateNote(context.Background(), note)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")
	note := createTestNote(t, s, diary.ID, "Day one")

	if err := s.DeleteNote(ctx, diary.ID, note.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	_, err := s.GetNoteByTitle(ctx, diary.ID, "Day one")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteNote_WrongDiary(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	travel := createTestDiary(t, s, user.ID, "Travel")
	work := createTestDiary(t, s, user.ID, "Work")
	note := createTestNote(t, s, travel.ID, "Day one")

	err := s.DeleteNote(context.Background(), work.ID, note.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
