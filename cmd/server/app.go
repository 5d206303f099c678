package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/amora-api/internal/config"
	"github.com/phrazzld/amora-api/internal/ledger"
	"github.com/phrazzld/amora-api/internal/matcher"
	"github.com/phrazzld/amora-api/internal/platform/gemini"
	"github.com/phrazzld/amora-api/internal/platform/luaengine"
	"github.com/phrazzld/amora-api/internal/platform/monad"
	"github.com/phrazzld/amora-api/internal/registry"
	"github.com/phrazzld/amora-api/internal/scoring"
	"github.com/phrazzld/amora-api/internal/service"
	"github.com/phrazzld/amora-api/internal/task"
)

// shutdownTimeout bounds how long in-flight requests may run once a
// shutdown signal arrives.
const shutdownTimeout = 10 * time.Second

// application holds the initialized dependencies of the server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	registry     registry.ProfileRegistry
	matchService *service.MatchService
	dispatcher   *task.Dispatcher
}

// newApplication wires the full dependency graph: scoring engine,
// dispatcher, matcher, optional ledger recorder, and profile registry.
// Construction fails fast on any misconfigured component.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	engine, err := newScoringEngine(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	dispatcher := task.NewDispatcher(engine, task.DispatcherConfig{
		WorkerCount: cfg.Scoring.WorkerCount,
		QueueSize:   cfg.Scoring.QueueSize,
	}, logger)

	recorder, err := newLedgerRecorder(cfg, logger)
	if err != nil {
		dispatcher.Stop()
		return nil, fmt.Errorf("failed to create ledger recorder: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		registry:     registry.NewInMemory(logger),
		matchService: service.NewMatchService(matcher.NewService(dispatcher, logger), recorder, logger),
		dispatcher:   dispatcher,
	}, nil
}

// newScoringEngine builds the engine selected by the configuration.
func newScoringEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scoring.Scorer, error) {
	switch cfg.Engine.Kind {
	case "lua":
		return luaengine.New(cfg.Engine, logger)
	case "gemini":
		return gemini.NewScorer(ctx, logger, cfg.Engine)
	default:
		return nil, fmt.Errorf("%w: unknown engine kind %q", scoring.ErrInvalidConfig, cfg.Engine.Kind)
	}
}

// newLedgerRecorder builds the ledger client when recording is enabled.
// A nil recorder with a nil error means the feature is switched off.
func newLedgerRecorder(cfg *config.Config, logger *slog.Logger) (ledger.Recorder, error) {
	if !cfg.Ledger.Enabled {
		return nil, nil
	}
	return monad.NewClient(cfg.Ledger, logger)
}

// serve runs the HTTP server until the context is canceled, then drains
// in-flight requests and stops the dispatcher.
func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.setupRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.dispatcher.Stop()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.dispatcher.Stop()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.dispatcher.Stop()
	app.logger.Info("Server shutdown completed")
	return nil
}
