package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestDSN(t *testing.T) {
	dsn := NewTestDSN("TestNewTestDSN")
	assert.Contains(t, dsn, "TestNewTestDSN")
	assert.Contains(t, dsn, "mode=memory")
}

func TestSetupTestDB(t *testing.T) {
	db, cleanup := SetupTestDB(t, "TestSetupTestDB")
	defer cleanup()

	_, err := db.Exec("INSERT INTO products (name, price, description) VALUES ('Product 1', 10.99, '')")
	assert.NoError(t, err)
}

func TestSeedProducts(t *testing.T) {
	db, cleanup := SetupTestDB(t, "TestSeedProducts")
	defer cleanup()

	ids := SeedProducts(t, db, 3)
	require.Len(t, ids, 3)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count))
	assert.Equal(t, 3, count)
}
