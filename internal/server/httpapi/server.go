// Package httpapi is the HTTP transport for the note service. Handlers
// translate requests into service calls and service errors into statuses;
// all authorization decisions live in the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	users    *services.UserService
	notes    *services.NoteService
	contacts *services.ContactService
	media    *services.MediaService
	metrics  *metrics.Metrics
}

func NewServer(address string, l logging.Logger, us *services.UserService, ns *services.NoteService,
	cs *services.ContactService, ms *services.MediaService, m *metrics.Metrics) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		users:    us,
		notes:    ns,
		contacts: cs,
		media:    ms,
		metrics:  m,
	}
}

// Routes builds the request mux. Split out from Run so tests can drive the
// full routing table through httptest.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.metrics.Middleware(pattern, h))
	}

	handle("POST /signup", s.handleSignup)
	handle("POST /login", s.handleLogin)
	handle("POST /logout", s.handleLogout)
	handle("DELETE /logout", s.handleLogout)
	handle("GET /check_session", s.handleCheckSession)

	handle("GET /notes", s.requireAuth(s.handleListNotes))
	handle("POST /notes", s.requireAuth(s.handleCreateNote))
	handle("GET /notes/{id}", s.requireAuth(s.handleGetNote))
	handle("PUT /notes/{id}", s.requireAuth(s.handleUpdateNote))
	handle("DELETE /notes/{id}", s.requireAuth(s.handleDeleteNote))

	handle("POST /contact", s.handleSubmitContact)
	handle("GET /contact", s.requireAuth(s.handleListContacts))

	handle("POST /media/upload_url", s.requireAuth(s.handleUploadURL))
	handle("GET /notes/{id}/media/{key...}", s.requireAuth(s.handleMediaURL))

	handle("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return withRequestID(mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting http server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "stopping http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
