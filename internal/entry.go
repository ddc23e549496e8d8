// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/tstetson/fieldtuner/internal/api"
	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/commit"
	"github.com/tstetson/fieldtuner/internal/engine"
	"github.com/tstetson/fieldtuner/internal/mcpserver"
	"github.com/tstetson/fieldtuner/internal/preset"
	"github.com/tstetson/fieldtuner/internal/sse"
	"github.com/tstetson/fieldtuner/internal/storage"
	"github.com/tstetson/fieldtuner/internal/watch"
)

// Run starts the HTTP server, the profile watcher and the SSE broker,
// and blocks until shutdown.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := newLogger(cfg)

	svc, db, profilePath, err := buildEngine(cfg, app.profilePath, logger, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("profile_path", profilePath),
		slog.String("backup_dir", cfg.Backups.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker; profile.changed bursts are throttled.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()
	svc.SetBroker(broker)

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the profile for external writes (the game saving on exit).
	g.Go(func() error {
		err := watch.Watch(gCtx, profilePath, logger, func(path string) {
			broker.PublishProfileChanged(path)
		})
		if err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the engine's tools over MCP stdio. Logs go to stderr
// so stdout stays clean for the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	svc, db, profilePath, err := buildEngine(cfg, app.profilePath, logger, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("MCP server starting", slog.String("profile_path", profilePath))
	return mcpserver.New(svc).ServeStdio()
}

func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildEngine wires storage, the backup index and the commit
// coordinator into an engine service. profileOverride takes precedence
// over the configured path and search paths; engineLogger defaults to
// logger.
func buildEngine(cfg *Config, profileOverride string, logger, engineLogger *slog.Logger) (*engine.Service, *backup.DB, string, error) {
	if engineLogger == nil {
		engineLogger = logger
	}

	profilePath := profileOverride
	if profilePath == "" {
		profilePath = cfg.Profile.Path
	}
	if profilePath == "" {
		detected, err := engine.DetectProfile(cfg.Profile.SearchPaths)
		if err != nil {
			return nil, nil, "", fmt.Errorf("locate profile: %w", err)
		}
		profilePath = detected
	}

	store, err := storage.NewFS(cfg.Backups.Dir)
	if err != nil {
		return nil, nil, "", fmt.Errorf("init backup store: %w", err)
	}

	db, err := backup.Open(cfg.Backups.IndexPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("init backup index: %w", err)
	}

	presets := preset.NewStore()
	if cfg.Presets.Dir != "" {
		if err := presets.LoadDir(cfg.Presets.Dir); err != nil {
			logger.Warn("loading user presets failed", slog.String("error", err.Error()))
		}
	}

	var probe commit.ProcessProbe
	if len(cfg.Game.ProcessNames) > 0 {
		probe = commit.ProcProbe(cfg.Game.ProcessNames...)
	}

	retention := backup.RetentionPolicy{
		KeepCount: cfg.Backups.KeepCount,
		MaxAge:    cfg.Backups.MaxAge(),
	}

	manager := backup.NewManager(store, db)
	coordinator := commit.NewCoordinator(manager, probe)
	svc := engine.NewService(profilePath, presets, manager, coordinator, retention, nil, engineLogger)
	return svc, db, profilePath, nil
}
