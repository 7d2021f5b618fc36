package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/google/uuid"
)

// SessionCookieName carries the signed session credential for browser
// clients. API clients may send the same value as a bearer token instead.
const SessionCookieName = "notekeeper_session"

const requestIDHeader = "X-Request-Id"

// withRequestID tags every response with a request id, minting one when the
// client did not send its own.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type userContextKey struct{}

func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*models.User)
	return u, ok
}

// sessionToken extracts the credential from the Authorization header or,
// failing that, the session cookie.
func sessionToken(r *http.Request) (string, bool) {
	const bearer = "Bearer "
	if v := r.Header.Get("Authorization"); strings.HasPrefix(v, bearer) && len(v) > len(bearer) {
		return v[len(bearer):], true
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// requireAuth resolves the presented credential to a user and stores it in
// the request context. Requests without a valid live session get a 401.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next(w, r.WithContext(ctx))
	}
}
