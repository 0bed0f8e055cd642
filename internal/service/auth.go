package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/auth"
	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/id"
	"github.com/ubiquitousdiaries/diaries-server/internal/mail"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// AuthService handles account creation, email confirmation, and sign-in.
// Session lifecycle is delegated to SessionService.
type AuthService struct {
	store          store.Store
	tokenService   *auth.TokenService
	sessionService *SessionService
	mailer         mail.Mailer
	publicURL      string
	confirmTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService creates a new authentication service. publicURL is the base
// URL embedded in emailed confirmation links; confirmTTL is the link lifetime.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	sessionService *SessionService,
	mailer mail.Mailer,
	publicURL string,
	confirmTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:          store,
		tokenService:   tokenService,
		sessionService: sessionService,
		mailer:         mailer,
		publicURL:      publicURL,
		confirmTTL:     confirmTTL,
		logger:         logger,
	}
}

// SignupRequest contains new account registration data.
type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// SignupResponse contains the result of a signup request.
type SignupResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// SigninRequest contains sign-in credentials. Accounts are identified by
// username, not email.
type SigninRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"` // Extracted from request by handler
	UserAgent string `json:"-"`
}

// RefreshRequest contains the refresh token presented for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IPAddress    string `json:"-"`
}

// AuthResponse contains session tokens and the signed-in user.
type AuthResponse struct {
	User *domain.User `json:"user"`
	SessionResponse
}

// Signup creates a new account in pending status and emails a confirmation
// link. The account cannot sign in until the link is opened.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Status:       domain.UserStatusPending,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendConfirmationEmail(ctx, user); err != nil {
		// The account was created; the send failure is only logged so an
		// operator can re-deliver the link.
		s.logger.Warn("failed to send confirmation email",
			"user_id", userID,
			"error", err,
		)
	}

	s.logger.Info("user signed up", "user_id", userID, "username", user.Username)

	return &SignupResponse{
		UserID:  userID,
		Message: "Account created. Check your email to confirm your address.",
	}, nil
}

// ConfirmEmail activates the account referenced by a confirmation link
// token. The token is single use.
func (s *AuthService) ConfirmEmail(ctx context.Context, rawToken string) error {
	token, err := consumeActionToken(ctx, s.store, rawToken, domain.TokenPurposeConfirm)
	if err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		return store.ErrInvalidToken.WithCause(err)
	}

	user.Activate()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}

	s.logger.Info("email confirmed", "user_id", user.ID)
	return nil
}

// Signin authenticates a user by username and password and creates a
// session. Unknown usernames and wrong passwords produce the same error.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUnauthorized.WithMessage("invalid username or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, store.ErrUnauthorized.WithMessage("invalid username or password")
	}

	if user.IsPending() {
		return nil, store.ErrForbidden.WithMessage("confirm your email address before signing in")
	}

	sessionResp, err := s.sessionService.CreateSession(ctx, user, req.IPAddress, req.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user signed in", "user_id", user.ID)

	return &AuthResponse{
		User:            user,
		SessionResponse: *sessionResp,
	}, nil
}

// RefreshTokens rotates session tokens using a refresh token.
func (s *AuthService) RefreshTokens(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	sessionResp, user, err := s.sessionService.RefreshSession(ctx, req.RefreshToken, req.IPAddress)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:            user,
		SessionResponse: *sessionResp,
	}, nil
}

// Signout revokes a session, invalidating its refresh token.
func (s *AuthService) Signout(ctx context.Context, sessionID string) error {
	return s.sessionService.DeleteSession(ctx, sessionID)
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, store.ErrUnauthorized.WithMessage("invalid or expired token").WithCause(err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, nil, store.ErrUnauthorized.WithMessage("invalid or expired token").WithCause(err)
	}

	return user, claims, nil
}

func (s *AuthService) sendConfirmationEmail(ctx context.Context, user *domain.User) error {
	raw, err := issueActionToken(ctx, s.store, s.tokenService, user.ID, domain.TokenPurposeConfirm, s.confirmTTL)
	if err != nil {
		return err
	}

	link := s.publicURL + "/api/v1/auth/confirm/" + raw
	subject, body, err := mail.ConfirmationEmail(user.FullName(), link, s.confirmTTL.String())
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, user.Email, subject, body)
}
