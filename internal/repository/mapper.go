package repository

import "github.com/jbweber/homelab/restkit/internal/entity"

// RowScanner is satisfied by both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Mapper describes how one entity type maps onto its table. It is the only
// per-entity piece the SQL repository needs; everything else is generic.
// No reflection: the mapper spells out columns, bind values, and row scanning.
type Mapper[T entity.Entity] struct {
	// Table is the table name.
	Table string

	// Columns lists the non-ID column names in a stable order. Inserts and
	// full updates bind Values(e) against this order.
	Columns []string

	// Fields maps wire-level field names (as they appear in partial-update
	// payloads) to mutable column names. A name missing here is rejected.
	Fields map[string]string

	// New allocates a zero entity for scanning and decoding.
	New func() T

	// Values returns the entity's non-ID values aligned with Columns.
	Values func(e T) []any

	// Scan reads one row laid out as (id, Columns...) into a new entity.
	Scan func(row RowScanner) (T, error)
}
