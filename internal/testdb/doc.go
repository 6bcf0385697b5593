// Package testdb provides database fixtures for tests.
//
// NewSQLiteDB gives every test its own migrated SQLite file, so those tests
// always run. GetTestDBWithT connects to the PostgreSQL database named by
// DATABASE_URL (or FLASHDECK_TEST_DB_URL), migrates it and empties the
// flashcards table; without a URL the calling test is skipped.
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        cardStore := postgres.NewPostgresCardStore(tx, nil)
//	        // changes are rolled back when fn returns
//	    })
//	}
package testdb
