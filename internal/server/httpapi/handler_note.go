package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notes, err := s.notes.List(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req noteCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.notes.Create(r.Context(), user.ID, req.Title, req.Content, req.Tags, req.Media)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	note, err := s.notes.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req noteUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := services.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
		Media:   req.Media,
	}
	if req.Tags != nil {
		tags := []string(*req.Tags)
		upd.Tags = &tags
	}

	note, err := s.notes.Update(r.Context(), user.ID, id, upd)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := noteID(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.notes.Delete(r.Context(), user.ID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
