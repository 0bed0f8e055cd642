package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ubiquitousdiaries/diaries-server/internal/http/response"
	"github.com/ubiquitousdiaries/diaries-server/internal/service"
)

// handleSignup creates a new account and emails a confirmation link.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleConfirmEmail activates the account behind an emailed link token.
func (s *Server) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := s.authService.ConfirmEmail(r.Context(), token); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, service.MessageResponse{Message: "Email confirmed. You can sign in now."}, s.logger)
}

// handleSignin authenticates a user and returns session tokens.
func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.IPAddress = getClientIP(r)
	req.UserAgent = r.UserAgent()

	resp, err := s.authService.Signin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleRefresh exchanges a refresh token for new session tokens.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.IPAddress = getClientIP(r)

	resp, err := s.authService.RefreshTokens(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleSignout revokes the authenticated session.
func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		response.Unauthorized(w, "no active session", s.logger)
		return
	}

	if err := s.authService.Signout(r.Context(), sessionID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRequestPasswordReset emails a password reset link.
func (s *Server) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req service.RequestPasswordResetRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.accountService.RequestPasswordReset(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleConfirmPasswordReset sets a new password using a reset link token.
func (s *Server) handleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req service.ConfirmPasswordResetRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.accountService.ConfirmPasswordReset(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, service.MessageResponse{Message: "Password updated. You can sign in now."}, s.logger)
}

// handleRecoverUsername emails a username reminder.
func (s *Server) handleRecoverUsername(w http.ResponseWriter, r *http.Request) {
	var req service.RecoverUsernameRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.accountService.RecoverUsername(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
