package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cardStore store.CardStore

	srsService        srs.Service
	cardService       service.CardService
	cardReviewService card_review.CardReviewService
}

// newApplication wires stores and services over an open, migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.cardStore, err = newCardStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	app.srsService = srs.NewDefaultService()

	app.cardService, err = service.NewCardService(
		service.NewCardRepositoryAdapter(app.cardStore, db),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.cardReviewService = card_review.NewCardReviewService(
		card_review.NewCardRepositoryAdapter(app.cardStore, db),
		app.srsService,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases the database connection.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}

// withApplication opens the configured database, runs fn against a wired
// application and releases everything afterwards.
func withApplication(ctx context.Context, fn func(app *application) error) error {
	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer app.cleanup()

	return fn(app)
}
