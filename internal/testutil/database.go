package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/mutualfund-tracker/internal/database"
	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing with every
// migration applied. The database is automatically cleaned up when the test
// completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := database.Configure(db); err != nil {
		t.Fatalf("Failed to configure test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		t.Fatalf("Failed to set pragma: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CleanDatabase removes all data from all tables while preserving schema.
// Useful for cleaning between subtests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"nav_snapshot",
		"purchase",
		"fund",
		"fixed_deposit",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "purchase")
//	assert.Equal(t, 2, count)
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
