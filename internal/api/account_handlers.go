package api

import (
	"net/http"

	"github.com/ubiquitousdiaries/diaries-server/internal/http/response"
	"github.com/ubiquitousdiaries/diaries-server/internal/service"
)

// handleGetCurrentUser returns the authenticated user's account.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.accountService.GetProfile(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleUpdateProfile applies partial profile changes.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.accountService.UpdateProfile(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleChangePassword sets a new password for the signed-in user.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.accountService.ChangePassword(r.Context(), getUserID(r.Context()), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
