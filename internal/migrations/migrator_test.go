package migrations

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_Run(t *testing.T) {
	db := openTestDB(t, "TestMigrator_Run")

	migrator := NewMigrator(db)
	for _, m := range All() {
		migrator.Register(m)
	}
	require.NoError(t, migrator.Run())

	version, err := migrator.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// Schema is usable after migration.
	_, err = db.Exec("INSERT INTO products (name, price, description) VALUES ('Product 1', 10.99, '')")
	assert.NoError(t, err)
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	db := openTestDB(t, "TestMigrator_RunIsIdempotent")

	migrator := NewMigrator(db)
	for _, m := range All() {
		migrator.Register(m)
	}
	require.NoError(t, migrator.Run())
	require.NoError(t, migrator.Run())

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestMigrator_RegisterSortsByVersion(t *testing.T) {
	db := openTestDB(t, "TestMigrator_RegisterSortsByVersion")

	var order []int64
	migrator := NewMigrator(db)
	for _, v := range []int64{3, 1, 2} {
		version := v
		migrator.Register(Migration{
			Version: version,
			Name:    fmt.Sprintf("migration_%d", version),
			Up: func(db *sql.DB) error {
				order = append(order, version)
				return nil
			},
		})
	}
	require.NoError(t, migrator.Run())
	assert.Equal(t, []int64{1, 2, 3}, order)
}
