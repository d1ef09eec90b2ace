package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studyplanhq/studyplan-api/internal/config"
	"github.com/studyplanhq/studyplan-api/internal/domain/sm2"
	"github.com/studyplanhq/studyplan-api/internal/platform/postgres"
	"github.com/studyplanhq/studyplan-api/internal/service/auth"
	"github.com/studyplanhq/studyplan-api/internal/service/review"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	flashcardStore store.FlashcardStore

	// Service interfaces
	jwtService    auth.JWTService
	scheduler     sm2.Service
	reviewService review.ReviewService
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and database
// connection must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
	app.scheduler = sm2.NewService()
	app.reviewService = review.NewReviewService(app.flashcardStore, app.scheduler, logger)

	logger.Info("review service initialized")
	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
