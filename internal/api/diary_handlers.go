package api

import (
	"net/http"

	"github.com/ubiquitousdiaries/diaries-server/internal/http/response"
	"github.com/ubiquitousdiaries/diaries-server/internal/service"
)

// handleListDiaries returns the user's diaries ordered by title.
func (s *Server) handleListDiaries(w http.ResponseWriter, r *http.Request) {
	diaries, err := s.diaryService.List(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, diaries, s.logger)
}

// handleCreateDiary creates a new diary for the user.
func (s *Server) handleCreateDiary(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDiaryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	diary, err := s.diaryService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, diary, s.logger)
}

// handleGetDiary returns one diary with its notes.
func (s *Server) handleGetDiary(w http.ResponseWriter, r *http.Request) {
	detail, err := s.diaryService.Get(r.Context(), getUserID(r.Context()), titleParam(r, "diaryTitle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, detail, s.logger)
}

// handleDeleteDiary removes a diary and all of its notes.
func (s *Server) handleDeleteDiary(w http.ResponseWriter, r *http.Request) {
	err := s.diaryService.Delete(r.Context(), getUserID(r.Context()), titleParam(r, "diaryTitle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
