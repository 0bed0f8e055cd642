package store

import (
	"context"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
)

// Store is the persistence boundary consumed by the service layer.
// All uniqueness rules (usernames, emails, diary titles per author, note
// titles per diary) are enforced by the store's own constraints; callers
// must not pre-check and insert, since that pattern is racy.
type Store interface {
	UserStore
	DiaryStore
	NoteStore
	TokenStore
	SessionStore

	Close() error
}

// UserStore persists account records.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists if the
	// username or email is already taken.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// GetUserByUsername retrieves a user by exact username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetUserByEmail retrieves a user by case-insensitive email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateUser performs a full row update. Returns ErrNotFound if the
	// user does not exist, ErrAlreadyExists on a username/email conflict.
	UpdateUser(ctx context.Context, user *domain.User) error
}

// DiaryStore persists diaries. Every lookup is scoped by author so one
// user can never read or delete another user's diary by guessing titles.
type DiaryStore interface {
	// CreateDiary inserts a new diary. Returns ErrAlreadyExists if the
	// author already has a diary with the same title.
	CreateDiary(ctx context.Context, diary *domain.Diary) error
	// GetDiaryByTitle retrieves the author's diary with the given title.
	GetDiaryByTitle(ctx context.Context, authorID, title string) (*domain.Diary, error)
	// ListDiariesByAuthor returns the author's diaries ordered by title.
	ListDiariesByAuthor(ctx context.Context, authorID string) ([]*domain.Diary, error)
	// DeleteDiary removes the diary and cascades to its notes.
	// Returns ErrNotFound if the author has no such diary.
	DeleteDiary(ctx context.Context, authorID, diaryID string) error
}

// NoteStore persists notes, always scoped by parent diary.
type NoteStore interface {
	// CreateNote inserts a new note. Returns ErrAlreadyExists if the
	// diary already contains a note with the same title.
	CreateNote(ctx context.Context, note *domain.Note) error
	// GetNoteByTitle retrieves the diary's note with the given title.
	GetNoteByTitle(ctx context.Context, diaryID, title string) (*domain.Note, error)
	// ListNotesByDiary returns the diary's notes ordered by title.
	ListNotesByDiary(ctx context.Context, diaryID string) ([]*domain.Note, error)
	// UpdateNote performs a full row update. Returns ErrNotFound if the
	// note does not exist, ErrAlreadyExists on a title conflict.
	UpdateNote(ctx context.Context, note *domain.Note) error
	// DeleteNote removes the note permanently.
	DeleteNote(ctx context.Context, diaryID, noteID string) error
}

// TokenStore persists single-use action tokens for emailed links.
type TokenStore interface {
	CreateActionToken(ctx context.Context, token *domain.ActionToken) error
	// GetActionTokenByHash retrieves a token by its stored digest.
	// Returns ErrInvalidToken if no such token exists.
	GetActionTokenByHash(ctx context.Context, hash string) (*domain.ActionToken, error)
	// ConsumeActionToken marks a token as used. The update only applies if
	// the token is still unused, making single-use atomic at the store;
	// returns ErrInvalidToken if it was already consumed.
	ConsumeActionToken(ctx context.Context, tokenID string, usedAt time.Time) error
}

// SessionStore persists sign-in sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// GetSessionByTokenHash retrieves a session by refresh token digest.
	GetSessionByTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpiredSessions removes sessions past their expiry, returning
	// the number deleted.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
