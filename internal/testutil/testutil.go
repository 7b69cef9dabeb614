// Package testutil provides per-test SQLite databases and seed helpers.
package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/jbweber/homelab/restkit/internal/migrations"
	_ "modernc.org/sqlite"
)

// NewTestDSN generates a DSN for an in-memory SQLite database scoped to one
// test. The shared cache keeps every connection in the pool on the same
// database.
func NewTestDSN(testName string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", testName)
}

// SetupTestDB opens a migrated in-memory database for the test and returns it
// with a cleanup function.
func SetupTestDB(t *testing.T, testName string) (*sql.DB, func()) {
	t.Helper()

	db, err := sql.Open("sqlite", NewTestDSN(testName))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	migrator := migrations.NewMigrator(db)
	for _, migration := range migrations.All() {
		migrator.Register(migration)
	}
	if err := migrator.Run(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db, func() { db.Close() }
}
