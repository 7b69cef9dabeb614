package repository

import (
	"context"

	"github.com/jbweber/homelab/restkit/internal/entity"
)

// Repository defines the storage operations available for any entity type.
// It is the only layer that talks to the persistence provider; services and
// controllers reach storage exclusively through it.
type Repository[T entity.Entity] interface {
	// FindPage returns the window [(page-1)*pageSize, page*pageSize) of the
	// (optionally filtered) entity set, plus the total count over that set.
	FindPage(ctx context.Context, page, pageSize int, opts ...Option[T]) (entity.Page[T], error)

	// FindByID retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity matches.
	FindByID(ctx context.Context, id int64, opts ...Option[T]) (T, error)

	// Create persists a new entity and assigns its ID.
	Create(ctx context.Context, e T) error

	// Update replaces all fields of an existing entity.
	// Returns ErrNotFound if the entity's ID does not exist.
	Update(ctx context.Context, e T) error

	// UpdateFields mutates only the named fields of an existing entity.
	// Returns ErrNotFound if the ID does not exist and ErrStorage if a field
	// name does not map to a mutable attribute.
	UpdateFields(ctx context.Context, id int64, fields entity.Fields) error

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if the ID does not exist.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether an entity with the given ID is persisted.
	// Non-positive IDs report false without querying storage.
	Exists(ctx context.Context, id int64) (bool, error)
}

// Filter narrows a query to entities matching a WHERE fragment. The fragment
// uses the provider's placeholder syntax; args bind in order.
type Filter struct {
	Where string
	Args  []any
}

// Include is an eager-load hook run against the entities a query returned,
// before they are handed back to the caller. Implementations typically batch
// a second query to attach related rows.
type Include[T any] func(ctx context.Context, items []T) error

// Option configures a single query.
type Option[T any] func(*queryOptions[T])

type queryOptions[T any] struct {
	filter   *Filter
	includes []Include[T]
}

// WithFilter narrows the query with a WHERE fragment and its arguments.
func WithFilter[T any](where string, args ...any) Option[T] {
	return func(o *queryOptions[T]) {
		o.filter = &Filter{Where: where, Args: args}
	}
}

// WithInclude attaches an eager-load hook to the query.
func WithInclude[T any](inc Include[T]) Option[T] {
	return func(o *queryOptions[T]) {
		o.includes = append(o.includes, inc)
	}
}

func applyOptions[T any](opts []Option[T]) queryOptions[T] {
	var o queryOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o queryOptions[T]) runIncludes(ctx context.Context, items []T) error {
	for _, inc := range o.includes {
		if err := inc(ctx, items); err != nil {
			return err
		}
	}
	return nil
}
