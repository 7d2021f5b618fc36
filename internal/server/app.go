// Package server initializes and runs the note service: it opens the
// database, applies migrations, picks a session store, and serves the HTTP
// API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/notekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/dmitrijs2005/notekeeper/internal/server/sessions"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store := newSessionStore(cfg)

	us := services.NewUserService(db, m, store, cfg)
	ns := services.NewNoteService(db, m)
	cs := services.NewContactService(db, m)
	ms := services.NewMediaService(cfg)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, ns, cs, ms, metrics.New())

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// newSessionStore picks Redis when an address is configured; otherwise
// sessions live in process memory and die with it.
func newSessionStore(cfg *config.Config) sessions.Store {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return sessions.NewRedisStore(client)
	}
	return sessions.NewMemoryStore()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
