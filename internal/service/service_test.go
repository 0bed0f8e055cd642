package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ubiquitousdiaries/diaries-server/internal/auth"
	"github.com/ubiquitousdiaries/diaries-server/internal/store/sqlite"
)

const testPublicURL = "http://localhost:8080"

// capturedMail records one message handed to the capture mailer.
type capturedMail struct {
	To      string
	Subject string
	Body    string
}

// captureMailer collects outgoing mail for assertions.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedMail
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *captureMailer) last(t *testing.T) capturedMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "expected at least one email")
	return m.sent[len(m.sent)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testEnv struct {
	store    *sqlite.Store
	mailer   *captureMailer
	auth     *AuthService
	account  *AccountService
	sessions *SessionService
	diaries  *DiaryService
	notes    *NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	keyHex, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	mailer := &captureMailer{}
	sessionService := NewSessionService(s, tokenService, logger)
	authService := NewAuthService(s, tokenService, sessionService, mailer, testPublicURL, 72*time.Hour, logger)
	accountService := NewAccountService(s, tokenService, mailer, testPublicURL, time.Hour, logger)

	return &testEnv{
		store:    s,
		mailer:   mailer,
		auth:     authService,
		account:  accountService,
		sessions: sessionService,
		diaries:  NewDiaryService(s, logger),
		notes:    NewNoteService(s, logger),
	}
}

// extractToken pulls the opaque token out of an emailed link body, given the
// text immediately preceding it.
func extractToken(t *testing.T, body, sep string) string {
	t.Helper()

	i := strings.Index(body, sep)
	require.GreaterOrEqual(t, i, 0, "email body missing %q:\n%s", sep, body)

	rest := body[i+len(sep):]
	if j := strings.IndexAny(rest, " \t\r\n"); j >= 0 {
		rest = rest[:j]
	}
	require.NotEmpty(t, rest)
	return rest
}

// signupActiveUser creates and confirms an account, returning its signin
// response.
func signupActiveUser(t *testing.T, env *testEnv, username string) *AuthResponse {
	t.Helper()
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	token := extractToken(t, env.mailer.last(t).Body, "/api/v1/auth/confirm/")
	require.NoError(t, env.auth.ConfirmEmail(ctx, token))

	resp, err := env.auth.Signin(ctx, SigninRequest{
		Username: username,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return resp
}
