package httpapi

import "net/http"

// handleUploadURL mints a storage key and a presigned PUT URL. The caller
// stores the returned key on a note afterwards via PUT /notes/{id}.
func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromContext(r.Context()); !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, url, err := s.media.GetPresignedPutURL(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

// handleMediaURL issues a presigned download URL for a media key, but only
// after the note service has confirmed the caller owns the note and only
// for keys attached to that note.
func (s *Server) handleMediaURL(w http.ResponseWriter, r *http.Request) {
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

	url, err := s.media.GetPresignedGetURL(r.Context(), note.Media, r.PathValue("key"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, mediaURLResponse{URL: url})
}
