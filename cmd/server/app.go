package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/profeai/profeai-api/internal/api"
	apiMiddleware "github.com/profeai/profeai-api/internal/api/middleware"
	"github.com/profeai/profeai-api/internal/config"
	"github.com/profeai/profeai-api/internal/events"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/gemini"
	"github.com/profeai/profeai-api/internal/platform/postgres"
	"github.com/profeai/profeai-api/internal/service"
)

// application holds the shared dependencies of the serve command and
// releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	generator       *lesson.Generator
	eventEmitter    *events.InMemoryEventEmitter
	learningService service.LearningService
}

// newApplication wires stores, the lesson generator, the event emitter and
// the learning service. db must already be open and migrated.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}
	repo := postgres.NewRepository(db, log)

	var err error
	app.generator, err = newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(log)
	projector, err := service.NewProgressProjector(repo.Lessons, repo.Progress, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress projector: %w", err)
	}
	app.eventEmitter.RegisterHandler(projector)

	app.learningService, err = service.NewLearningService(repo.Stores, repo, app.generator, app.eventEmitter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning service: %w", err)
	}

	log.Info("application initialized",
		slog.Bool("llm_available", app.generator.ProviderAvailable()),
		slog.Int("catalog_size", app.generator.Catalog().Size()))
	return app, nil
}

// newGenerator builds the lesson generator. Without a usable API key it
// runs on catalog content only.
func newGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*lesson.Generator, error) {
	var provider lesson.Provider
	if cfg.ProviderAvailable() {
		p, err := gemini.NewProvider(ctx, log, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
		}
		provider = p
		log.Info("gemini provider initialized", slog.String("model", p.Model()))
	} else {
		log.Warn("no gemini API key configured, serving catalog lessons only")
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	return lesson.NewGenerator(provider, nil, log, lesson.WithRequestTimeout(timeout)), nil
}

// setupRouter builds the chi router with middleware, API routes and the
// health endpoint.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)

	learningHandler := api.NewLearningHandler(app.learningService, app.logger)
	r.Route("/api", learningHandler.RegisterRoutes)

	r.Method(http.MethodGet, "/health",
		api.NewHealthHandler(app.generator.ProviderAvailable(), app.generator.Catalog().Size()))

	return r
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
