package api

import (
	"net/http"

	"github.com/ubiquitousdiaries/diaries-server/internal/http/response"
	"github.com/ubiquitousdiaries/diaries-server/internal/service"
)

// handleListNotes returns all notes in a diary ordered by title.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.noteService.List(r.Context(), getUserID(r.Context()), titleParam(r, "diaryTitle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, notes, s.logger)
}

// handleCreateNote adds a note to a diary.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	note, err := s.noteService.Create(r.Context(), getUserID(r.Context()), titleParam(r, "diaryTitle"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, note, s.logger)
}

// handleGetNote returns one note.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.noteService.Get(r.Context(), getUserID(r.Context()),
		titleParam(r, "diaryTitle"), titleParam(r, "noteTitle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, note, s.logger)
}

// handleUpdateNote applies partial changes to a note.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateNoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	note, err := s.noteService.Update(r.Context(), getUserID(r.Context()),
		titleParam(r, "diaryTitle"), titleParam(r, "noteTitle"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, note, s.logger)
}

// handleDeleteNote removes a note from its diary.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	err := s.noteService.Delete(r.Context(), getUserID(r.Context()),
		titleParam(r, "diaryTitle"), titleParam(r, "noteTitle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
