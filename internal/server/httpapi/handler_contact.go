package httpapi

import "net/http"

func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := s.contacts.Submit(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "contact message received", "id", msg.ID)
	s.writeJSON(w, http.StatusCreated, toContactResponse(msg))
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	msgs, err := s.contacts.List(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]contactResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toContactResponse(&msgs[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}
