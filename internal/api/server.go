// Package api provides the HTTP API server and handlers for the diaries
// application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ubiquitousdiaries/diaries-server/internal/ratelimit"
	"github.com/ubiquitousdiaries/diaries-server/internal/service"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// credentialRPS throttles signup, signin, and recovery endpoints per client
// address. Generous for humans, tight for guessers.
const (
	credentialRPS   = 0.5
	credentialBurst = 5
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          store.Store
	authService    *service.AuthService
	accountService *service.AccountService
	diaryService   *service.DiaryService
	noteService    *service.NoteService
	router         *chi.Mux
	limiter        *ratelimit.KeyedRateLimiter
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	authService *service.AuthService,
	accountService *service.AccountService,
	diaryService *service.DiaryService,
	noteService *service.NoteService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:          store,
		authService:    authService,
		accountService: accountService,
		diaryService:   diaryService,
		noteService:    noteService,
		router:         chi.NewRouter(),
		limiter:        ratelimit.New(credentialRPS, credentialBurst),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public). Credential endpoints are rate limited
		// per client address.
		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimit).Post("/signup", s.handleSignup)
			r.Get("/confirm/{token}", s.handleConfirmEmail)
			r.With(s.rateLimit).Post("/signin", s.handleSignin)
			r.Post("/refresh", s.handleRefresh)
			r.With(s.requireAuth).Post("/signout", s.handleSignout)

			r.With(s.rateLimit).Post("/password/reset", s.handleRequestPasswordReset)
			r.Post("/password/reset/confirm", s.handleConfirmPasswordReset)
			r.With(s.rateLimit).Post("/username/recover", s.handleRecoverUsername)
		})

		// Account endpoints (require auth).
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
			r.Patch("/me", s.handleUpdateProfile)
			r.Post("/me/password", s.handleChangePassword)
		})

		// Diaries and their notes (require auth). Diaries and notes are
		// addressed by title, scoped to the authenticated user.
		r.Route("/diaries", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListDiaries)
			r.Post("/", s.handleCreateDiary)
			r.Get("/{diaryTitle}", s.handleGetDiary)
			r.Delete("/{diaryTitle}", s.handleDeleteDiary)

			r.Route("/{diaryTitle}/notes", func(r chi.Router) {
				r.Get("/", s.handleListNotes)
				r.Post("/", s.handleCreateNote)
				r.Get("/{noteTitle}", s.handleGetNote)
				r.Patch("/{noteTitle}", s.handleUpdateNote)
				r.Delete("/{noteTitle}", s.handleDeleteNote)
			})
		})
	})
}
