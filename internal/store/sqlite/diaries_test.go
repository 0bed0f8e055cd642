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

func TestCreateDiary_DuplicateTitleSameAuthor(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	createTestDiary(t, s, user.ID, "Travel")

	dup := &domain.Diary{
		ID:        id.MustGenerate("diary"),
		AuthorID:  user.ID,
		Title:     "Travel",
		CreatedAt: time.Now(),
	}
	err := s.CreateDiary(context.Background(), dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateDiary_SameTitleDifferentAuthors(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	createTestDiary(t, s, alice.ID, "Travel")
	createTestDiary(t, s, bob.ID, "Travel")

	got, err := s.GetDiaryByTitle(context.Background(), bob.ID, "Travel")
	if err != nil {
		t.Fatalf("GetDiaryByTitle: %v", err)
	}
	if got.AuthorID != bob.ID {
		t.Errorf("author = %q, want %q", got.AuthorID, bob.ID)
	}
}

func TestGetDiaryByTitle_ScopedToAuthor(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	createTestDiary(t, s, alice.ID, "Secrets")

	// Bob cannot see Alice's diary even knowing its title.
	_, err := s.GetDiaryByTitle(context.Background(), bob.ID, "Secrets")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListDiariesByAuthor_OrderedByTitle(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")
	createTestDiary(t, s, user.ID, "Work")
	createTestDiary(t, s, user.ID, "Cooking")
	createTestDiary(t, s, user.ID, "Travel")

	diaries, err := s.ListDiariesByAuthor(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiariesByAuthor: %v", err)
	}
	want := []string{"Cooking", "Travel", "Work"}
	if len(diaries) != len(want) {
		t.Fatalf("got %d diaries, want %d", len(diaries), len(want))
	}
	for i, title := range want {
		if diaries[i].Title != title {
			t.Errorf("diaries[%d].Title = %q, want %q", i, diaries[i].Title, title)
		}
	}
}

func TestListDiariesByAuthor_Empty(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")

	diaries, err := s.ListDiariesByAuthor(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiariesByAuthor: %v", err)
	}
	if len(diaries) != 0 {
		t.Errorf("got %d diaries, want 0", len(diaries))
	}
}

func TestDeleteDiary_CascadesToNotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	diary := createTestDiary(t, s, user.ID, "Travel")

	note := &domain.Note{
		ID:      id.MustGenerate("note"),
		DiaryID: diary.ID,
		Title:   "Day one",
		Content: "Arrived.",
	}
	note.InitTimestamps()
	if err := s.CreateNote(ctx, note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if err := s.DeleteDiary(ctx, user.ID, diary.ID); err != nil {
		t.Fatalf("DeleteDiary: %v", err)
	}

	_, err := s.GetNoteByTitle(ctx, diary.ID, "Day one")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected note to be cascade-deleted, got %v", err)
	}
}

func TestDeleteDiary_WrongAuthor(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	diary := createTestDiary(t, s, alice.ID, "Travel")

	err := s.DeleteDiary(context.Background(), bob.ID, diary.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
