package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/migrations"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/platform/sqlite"
	"github.com/phrazzld/flashdeck/internal/store"
)

// openDatabase connects to the configured database. The schema is not touched.
func openDatabase(ctx context.Context, dbCfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch dbCfg.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, dbCfg.Path)
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, dbCfg.URL, dbCfg.MaxOpenConns)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbCfg.Driver, err)
	}

	logger.Info("Database connection established", slog.String("driver", dbCfg.Driver))
	return db, nil
}

// setupAppDatabase opens the configured database and brings its schema up
// to date.
func setupAppDatabase(ctx context.Context, dbCfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := openDatabase(ctx, dbCfg, logger)
	if err != nil {
		return nil, err
	}

	dialect, err := migrationDialect(dbCfg.Driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrations.Up(ctx, db, dialect, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return db, nil
}

// migrationDialect returns the migration set for a configured driver.
func migrationDialect(driver string) (migrations.Dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return migrations.DialectSQLite, nil
	case config.DriverPostgres:
		return migrations.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// newCardStore returns the card store implementation for driver.
func newCardStore(driver string, db store.DBTX, logger *slog.Logger) (store.CardStore, error) {
	switch driver {
	case config.DriverSQLite:
		return sqlite.NewSQLiteCardStore(db, logger), nil
	case config.DriverPostgres:
		return postgres.NewPostgresCardStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
