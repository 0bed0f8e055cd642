package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/auth"
	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/mail"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// recoveryMessage is returned for every username recovery and password reset
// request, whether or not the email matched an account. Varying the response
// would let a caller probe which addresses are registered.
const recoveryMessage = "If that email address is registered, a message is on its way."

// AccountService handles profile updates, password changes, password reset
// links, and username recovery.
type AccountService struct {
	store        store.Store
	tokenService *auth.TokenService
	mailer       mail.Mailer
	publicURL    string
	resetTTL     time.Duration
	logger       *slog.Logger
}

// NewAccountService creates a new account management service.
func NewAccountService(
	store store.Store,
	tokenService *auth.TokenService,
	mailer mail.Mailer,
	publicURL string,
	resetTTL time.Duration,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		store:        store,
		tokenService: tokenService,
		mailer:       mailer,
		publicURL:    publicURL,
		resetTTL:     resetTTL,
		logger:       logger,
	}
}

// UpdateProfileRequest contains profile fields to change. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

// ChangePasswordRequest contains a signed-in password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// RequestPasswordResetRequest identifies the account by email.
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmPasswordResetRequest carries the link token and the new password.
type ConfirmPasswordResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=1024"`
}

// RecoverUsernameRequest identifies the account by email.
type RecoverUsernameRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MessageResponse is a bare informational response.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetProfile returns the user's account record.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// UpdateProfile applies partial changes to the user's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword sets a new password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return store.ErrUnauthorized.WithMessage("current password is incorrect")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = newHash
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// RequestPasswordReset emails a reset link to the account with the given
// address. The response is identical whether or not the address is known.
func (s *AccountService) RequestPasswordReset(ctx context.Context, req RequestPasswordResetRequest) (*MessageResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &MessageResponse{Message: recoveryMessage}, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.sendResetEmail(ctx, user); err != nil {
		s.logger.Warn("failed to send password reset email",
			"user_id", user.ID,
			"error", err,
		)
	}

	return &MessageResponse{Message: recoveryMessage}, nil
}

// ConfirmPasswordReset sets a new password using a reset link token. The
// token is single use.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, req ConfirmPasswordResetRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	token, err := consumeActionToken(ctx, s.store, req.Token, domain.TokenPurposeReset)
	if err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		return store.ErrInvalidToken.WithCause(err)
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = newHash
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("password reset", "user_id", user.ID)
	return nil
}

// RecoverUsername emails a username reminder to the account with the given
// address. The response is identical whether or not the address is known.
func (s *AccountService) RecoverUsername(ctx context.Context, req RecoverUsernameRequest) (*MessageResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &MessageResponse{Message: recoveryMessage}, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	subject, body, err := mail.UsernameReminderEmail(user.FullName(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("render username reminder: %w", err)
	}
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Warn("failed to send username reminder",
			"user_id", user.ID,
			"error", err,
		)
	}

	return &MessageResponse{Message: recoveryMessage}, nil
}

func (s *AccountService) sendResetEmail(ctx context.Context, user *domain.User) error {
	raw, err := issueActionToken(ctx, s.store, s.tokenService, user.ID, domain.TokenPurposeReset, s.resetTTL)
	if err != nil {
		return err
	}

	link := s.publicURL + "/reset-password?token=" + raw
	subject, body, err := mail.PasswordResetEmail(user.FullName(), link, s.resetTTL.String())
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, user.Email, subject, body)
}
