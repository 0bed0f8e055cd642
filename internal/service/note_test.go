package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

func setupDiary(t *testing.T, env *testEnv, username, title string) string {
	t.Helper()

	user := signupActiveUser(t, env, username)
	_, err := env.diaries.Create(context.Background(), user.User.ID, CreateDiaryRequest{Title: title})
	require.NoError(t, err)
	return user.User.ID
}

func TestNoteCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	note, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{
		Title:   "Day one",
		Content: "Arrived at last.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Day one", note.Title)
	assert.Equal(t, "Arrived at last.", note.Content)
	assert.False(t, note.CreatedAt.IsZero())
}

func TestNoteCreate_DuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)

	_, err = env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "this note already exists")
}

func TestNoteCreate_UnknownDiary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Missing", CreateNoteRequest{Title: "Day one"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNoteCreate_SameTitleAcrossDiaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")
	_, err := env.diaries.Create(ctx, aliceID, CreateDiaryRequest{Title: "Work"})
	require.NoError(t, err)

	_, err = env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, aliceID, "Work", CreateNoteRequest{Title: "Day one"})
	assert.NoError(t, err)
}

func TestNoteGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one", Content: "Arrived."})
	require.NoError(t, err)

	note, err := env.notes.Get(ctx, aliceID, "Travel", "Day one")
	require.NoError(t, err)
	assert.Equal(t, "Arrived.", note.Content)

	_, err = env.notes.Get(ctx, aliceID, "Travel", "Day two")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNoteUpdate_RefreshesTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	created, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	content := "Rewritten entirely."
	updated, err := env.notes.Update(ctx, aliceID, "Travel", "Day one", UpdateNoteRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Rewritten entirely.", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestNoteUpdate_Rename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)

	title := "Day 1"
	_, err = env.notes.Update(ctx, aliceID, "Travel", "Day one", UpdateNoteRequest{Title: &title})
	require.NoError(t, err)

	_, err = env.notes.Get(ctx, aliceID, "Travel", "Day 1")
	assert.NoError(t, err)
	_, err = env.notes.Get(ctx, aliceID, "Travel", "Day one")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNoteUpdate_RenameOntoExistingTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day two"})
	require.NoError(t, err)

	title := "Day one"
	_, err = env.notes.Update(ctx, aliceID, "Travel", "Day two", UpdateNoteRequest{Title: &title})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestNoteDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)

	require.NoError(t, env.notes.Delete(ctx, aliceID, "Travel", "Day one"))
	_, err = env.notes.Get(ctx, aliceID, "Travel", "Day one")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNoteList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := setupDiary(t, env, "alice", "Travel")

	for _, title := range []string{"Packing", "Arrival"} {
		_, err := env.notes.Create(ctx, aliceID, "Travel", CreateNoteRequest{Title: title})
		require.NoError(t, err)
	}

	notes, err := env.notes.List(ctx, aliceID, "Travel")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Arrival", notes[0].Title)
	assert.Equal(t, "Packing", notes[1].Title)
}
