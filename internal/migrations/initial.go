package migrations

import "database/sql"

// All returns every migration for the service schema, in order.
func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_products_table",
			Up: func(db *sql.DB) error {
				_, err := db.Exec(`
					CREATE TABLE IF NOT EXISTS products (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						price REAL NOT NULL DEFAULT 0,
						description TEXT NOT NULL DEFAULT '',
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)
				`)
				return err
			},
			Down: func(db *sql.DB) error {
				_, err := db.Exec(`DROP TABLE IF EXISTS products`)
				return err
			},
		},
		{
			Version: 2,
			Name:    "add_product_indices",
			Up: func(db *sql.DB) error {
				_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)`)
				return err
			},
			Down: func(db *sql.DB) error {
				_, err := db.Exec(`DROP INDEX IF EXISTS idx_products_name`)
				return err
			},
		},
	}
}
