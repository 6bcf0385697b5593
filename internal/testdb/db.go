package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/flashdeck/internal/migrations"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/platform/sqlite"
)

// TestTimeout bounds setup queries against a test database.
const TestTimeout = 5 * time.Second

// NewSQLiteDB opens a migrated SQLite database in a fresh temporary
// directory. The connection is closed when the test ends.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "flashcards.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}
	t.Cleanup(func() { CleanupDB(t, db) })

	if err := migrations.Up(ctx, db, migrations.DialectSQLite, nil); err != nil {
		t.Fatalf("failed to migrate sqlite test database: %v", err)
	}
	return db
}

// GetTestDBWithT returns a migrated PostgreSQL connection with an empty
// flashcards table whose IDs restart at 1. It skips the test when no test
// database URL is set.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("DATABASE_URL not set - skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	dbURL := GetTestDatabaseURL()
	db, err := postgres.Open(ctx, dbURL, 0)
	if err != nil {
		t.Fatalf("failed to connect to %s: %v", MaskDatabaseURL(dbURL), err)
	}
	t.Cleanup(func() { CleanupDB(t, db) })

	if err := migrations.Up(ctx, db, migrations.DialectPostgres, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE flashcards RESTART IDENTITY`); err != nil {
		t.Fatalf("failed to empty flashcards table: %v", err)
	}
	return db
}

// CleanupDB closes db, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
