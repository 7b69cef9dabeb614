package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jbweber/homelab/restkit/internal/entity"
)

// SQLRepository is the generic SQL-backed implementation of Repository. One
// instance serves one entity type; the Mapper supplies everything that is
// specific to that type.
type SQLRepository[T entity.Entity] struct {
	db     *sql.DB
	mapper Mapper[T]
	stmts  *stmtCache

	selectByID  string
	existsByID  string
	selectList  string
	countAll    string
	insertQuery string
	updateQuery string
	deleteQuery string
}

// NewSQLRepository creates a repository for the entity type described by the
// mapper.
func NewSQLRepository[T entity.Entity](db *sql.DB, mapper Mapper[T]) *SQLRepository[T] {
	cols := "id, " + strings.Join(mapper.Columns, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(mapper.Columns)), ", ")

	sets := make([]string, len(mapper.Columns))
	for i, c := range mapper.Columns {
		sets[i] = c + " = ?"
	}

	return &SQLRepository[T]{
		db:     db,
		mapper: mapper,
		stmts:  newStmtCache(db),

		selectByID:  fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", cols, mapper.Table),
		existsByID:  fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? LIMIT 1", mapper.Table),
		selectList:  fmt.Sprintf("SELECT %s FROM %s", cols, mapper.Table),
		countAll:    fmt.Sprintf("SELECT COUNT(*) FROM %s", mapper.Table),
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", mapper.Table, strings.Join(mapper.Columns, ", "), placeholders),
		updateQuery: fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", mapper.Table, strings.Join(sets, ", ")),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE id = ?", mapper.Table),
	}
}

// Close releases the prepared statements held by the repository.
func (r *SQLRepository[T]) Close() error {
	return r.stmts.Close()
}

// FindPage returns one window of the (optionally filtered) entity set in
// natural ID order, counting the total over the whole filtered set.
func (r *SQLRepository[T]) FindPage(ctx context.Context, page, pageSize int, opts ...Option[T]) (entity.Page[T], error) {
	var zero entity.Page[T]
	if page < 1 {
		return zero, fmt.Errorf("page must be >= 1, got %d: %w", page, ErrInvalidArgument)
	}
	if pageSize < 1 {
		return zero, fmt.Errorf("pageSize must be >= 1, got %d: %w", pageSize, ErrInvalidArgument)
	}

	o := applyOptions(opts)
	where, args := whereClause(o.filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, r.countAll+where, args...).Scan(&total); err != nil {
		return zero, fmt.Errorf("failed to count %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}

	query := r.selectList + where + " ORDER BY id ASC LIMIT ? OFFSET ?"
	queryArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return zero, fmt.Errorf("failed to list %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	defer rows.Close()

	items := make([]T, 0, pageSize)
	for rows.Next() {
		e, err := r.mapper.Scan(rows)
		if err != nil {
			return zero, fmt.Errorf("failed to scan %s row: %w: %w", r.mapper.Table, ErrStorage, err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("failed to read %s rows: %w: %w", r.mapper.Table, ErrStorage, err)
	}

	if err := o.runIncludes(ctx, items); err != nil {
		return zero, fmt.Errorf("failed to load related data for %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}

	return entity.Page[T]{
		Items:       items,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  total,
	}, nil
}

// FindByID retrieves the entity with the given ID, applying any filter and
// includes first.
func (r *SQLRepository[T]) FindByID(ctx context.Context, id int64, opts ...Option[T]) (T, error) {
	var zero T
	if id <= 0 {
		return zero, fmt.Errorf("id must be positive, got %d: %w", id, ErrInvalidArgument)
	}

	o := applyOptions(opts)

	var row RowScanner
	if o.filter == nil {
		stmt, err := r.stmts.get(ctx, r.selectByID)
		if err != nil {
			return zero, fmt.Errorf("failed to prepare %s lookup: %w: %w", r.mapper.Table, ErrStorage, err)
		}
		row = stmt.QueryRowContext(ctx, id)
	} else {
		where, args := whereClause(o.filter)
		query := r.selectList + where + " AND id = ?"
		row = r.db.QueryRowContext(ctx, query, append(append([]any{}, args...), id)...)
	}

	e, err := r.mapper.Scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%s with ID %d: %w", r.mapper.Table, id, ErrNotFound)
		}
		return zero, fmt.Errorf("failed to find %s by ID: %w: %w", r.mapper.Table, ErrStorage, err)
	}

	if err := o.runIncludes(ctx, []T{e}); err != nil {
		return zero, fmt.Errorf("failed to load related data for %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	return e, nil
}

// Create inserts the entity and assigns its provider-generated ID.
func (r *SQLRepository[T]) Create(ctx context.Context, e T) error {
	res, err := r.db.ExecContext(ctx, r.insertQuery, r.mapper.Values(e)...)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new %s ID: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	e.SetID(id)
	return nil
}

// Update replaces all mutable fields of the entity. The write is conditional
// on the row existing, so a missing ID reports ErrNotFound atomically instead
// of requiring a separate existence check.
func (r *SQLRepository[T]) Update(ctx context.Context, e T) error {
	id := e.GetID()
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", id, ErrInvalidArgument)
	}

	args := append(r.mapper.Values(e), id)
	res, err := r.db.ExecContext(ctx, r.updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	return r.checkAffected(res, id)
}

// UpdateFields mutates only the named fields. Field names are resolved
// through the mapper; an unknown name is a storage failure naming the field.
func (r *SQLRepository[T]) UpdateFields(ctx context.Context, id int64, fields entity.Fields) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", id, ErrInvalidArgument)
	}
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update: %w", ErrInvalidArgument)
	}

	// Sort for a deterministic statement; map iteration order is random.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		col, ok := r.mapper.Fields[name]
		if !ok {
			return fmt.Errorf("%s has no updatable field %q: %w", r.mapper.Table, name, ErrStorage)
		}
		sets = append(sets, col+" = ?")
		args = append(args, fields[name].Arg())
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.mapper.Table, strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s fields: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	return r.checkAffected(res, id)
}

// Delete removes the entity with the given ID, reporting ErrNotFound when the
// row was already gone.
func (r *SQLRepository[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", id, ErrInvalidArgument)
	}

	res, err := r.db.ExecContext(ctx, r.deleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	return r.checkAffected(res, id)
}

// Exists reports whether the ID is persisted. Non-positive IDs are false
// without touching storage; a missing row is not an error.
func (r *SQLRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	stmt, err := r.stmts.get(ctx, r.existsByID)
	if err != nil {
		return false, fmt.Errorf("failed to prepare %s existence check: %w: %w", r.mapper.Table, ErrStorage, err)
	}

	var one int
	err = stmt.QueryRowContext(ctx, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s existence: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	return true, nil
}

func (r *SQLRepository[T]) checkAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w: %w", r.mapper.Table, ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("%s with ID %d: %w", r.mapper.Table, id, ErrNotFound)
	}
	return nil
}

func whereClause(f *Filter) (string, []any) {
	if f == nil || f.Where == "" {
		return "", nil
	}
	return " WHERE " + f.Where, f.Args
}
