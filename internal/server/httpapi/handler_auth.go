package httpapi

import (
	"net/http"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.Username)
	s.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info(r.Context(), "user logged in", "username", user.Username)
	s.writeJSON(w, http.StatusOK, loginResponse{User: toUserResponse(user), Token: token})
}

// handleLogout destroys the presented session and clears the cookie. A
// request without a valid session still gets a 200: the end state is the
// same either way.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessionToken(r); ok {
		if err := s.users.Logout(r.Context(), token); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleCheckSession returns the identity behind the presented credential,
// or a 401 when there is no live session. Clients poll it after a page load
// to decide what to render.
func (s *Server) handleCheckSession(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(r)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.users.Resolve(r.Context(), token)
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}
