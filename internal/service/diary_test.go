package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

func TestDiaryCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	diary, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)
	assert.Equal(t, "Travel", diary.Title)
	assert.Equal(t, alice.User.ID, diary.AuthorID)
}

func TestDiaryCreate_DuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)

	_, err = env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "this diary already exists")
}

func TestDiaryCreate_SameTitleDifferentUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")
	bob := signupActiveUser(t, env, "bob")

	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)
	_, err = env.diaries.Create(ctx, bob.User.ID, CreateDiaryRequest{Title: "Travel"})
	assert.NoError(t, err)
}

func TestDiaryCreate_TitleTooLong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: string(long)})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestDiaryGet_IncludesNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, alice.User.ID, "Travel", CreateNoteRequest{Title: "Day one", Content: "Arrived."})
	require.NoError(t, err)

	detail, err := env.diaries.Get(ctx, alice.User.ID, "Travel")
	require.NoError(t, err)
	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "Day one", detail.Notes[0].Title)
}

func TestDiaryGet_OtherUsersDiaryHidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")
	bob := signupActiveUser(t, env, "bob")

	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Secrets"})
	require.NoError(t, err)

	_, err = env.diaries.Get(ctx, bob.User.ID, "Secrets")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDiaryList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	// Empty before any diaries exist, never nil.
	diaries, err := env.diaries.List(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, diaries)
	assert.Empty(t, diaries)

	for _, title := range []string{"Work", "Cooking"} {
		_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: title})
		require.NoError(t, err)
	}

	diaries, err = env.diaries.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, diaries, 2)
	assert.Equal(t, "Cooking", diaries[0].Title)
	assert.Equal(t, "Work", diaries[1].Title)
}

func TestDiaryDelete_RemovesNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")

	_, err := env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, alice.User.ID, "Travel", CreateNoteRequest{Title: "Day one"})
	require.NoError(t, err)

	require.NoError(t, env.diaries.Delete(ctx, alice.User.ID, "Travel"))

	_, err = env.diaries.Get(ctx, alice.User.ID, "Travel")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Recreating the diary starts empty; the old notes are gone.
	_, err = env.diaries.Create(ctx, alice.User.ID, CreateDiaryRequest{Title: "Travel"})
	require.NoError(t, err)
	detail, err := env.diaries.Get(ctx, alice.User.ID, "Travel")
	require.NoError(t, err)
	assert.Empty(t, detail.Notes)
}

func TestDiaryDelete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := signupActiveUser(t, env, "alice")
	err := env.diaries.Delete(ctx, alice.User.ID, "Missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
