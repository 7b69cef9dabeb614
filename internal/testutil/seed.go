package testutil

import (
	"database/sql"
	"fmt"
	"testing"
)

// SeedProducts inserts n products named "Product 1".."Product n" with
// ascending prices and returns their IDs in insertion order.
func SeedProducts(t *testing.T, db *sql.DB, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		res, err := db.Exec(
			"INSERT INTO products (name, price, description) VALUES (?, ?, ?)",
			fmt.Sprintf("Product %d", i), float64(i)+0.99, "",
		)
		if err != nil {
			t.Fatalf("Failed to seed product %d: %v", i, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			t.Fatalf("Failed to read seeded product ID: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}
