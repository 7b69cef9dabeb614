// Package service is the business-rule seam between the HTTP boundary and
// storage. Service validates every argument itself, even when the controller
// or repository would too: derived services override its methods, and the
// validation must hold no matter which layer a call enters through.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/restkit/internal/entity"
	"github.com/jbweber/homelab/restkit/internal/repository"
)

// ErrOperationFailed wraps unexpected repository failures. Not-found and
// invalid-argument pass through distinctly; everything else collapses into
// this kind so callers never branch on storage internals.
var ErrOperationFailed = errors.New("operation failed")

// Service implements the generic business layer for one entity type.
// Per-entity services embed *Service and override the methods they need:
//
//	type ProductService struct {
//	    *service.Service[*Product]
//	}
type Service[T entity.Entity] struct {
	repo repository.Repository[T]
}

// New creates a service over the given repository.
func New[T entity.Entity](repo repository.Repository[T]) *Service[T] {
	return &Service[T]{repo: repo}
}

// Repo exposes the underlying repository to derived services.
func (s *Service[T]) Repo() repository.Repository[T] {
	return s.repo
}

// GetAll returns one page of entities.
func (s *Service[T]) GetAll(ctx context.Context, page, pageSize int) (entity.Page[T], error) {
	var zero entity.Page[T]
	if page < 1 {
		return zero, fmt.Errorf("page must be >= 1, got %d: %w", page, repository.ErrInvalidArgument)
	}
	if pageSize < 1 {
		return zero, fmt.Errorf("pageSize must be >= 1, got %d: %w", pageSize, repository.ErrInvalidArgument)
	}

	p, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return zero, wrap("retrieving entities", err)
	}
	return p, nil
}

// GetByID returns the entity with the given ID.
func (s *Service[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if id <= 0 {
		return zero, fmt.Errorf("id must be positive, got %d: %w", id, repository.ErrInvalidArgument)
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, wrap("retrieving entity", err)
	}
	return e, nil
}

// Create persists a new entity; its ID is assigned by the repository.
func (s *Service[T]) Create(ctx context.Context, e T) error {
	if isNil(e) {
		return fmt.Errorf("entity is required: %w", repository.ErrInvalidArgument)
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return wrap("creating entity", err)
	}
	return nil
}

// Update replaces an existing entity. The repository's conditional write
// reports not-found atomically, so no separate existence check runs here.
func (s *Service[T]) Update(ctx context.Context, e T) error {
	if isNil(e) {
		return fmt.Errorf("entity is required: %w", repository.ErrInvalidArgument)
	}
	if e.GetID() <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", e.GetID(), repository.ErrInvalidArgument)
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return wrap("updating entity", err)
	}
	return nil
}

// UpdateFields applies a partial update to an existing entity.
func (s *Service[T]) UpdateFields(ctx context.Context, e T, fields entity.Fields) error {
	if isNil(e) {
		return fmt.Errorf("entity is required: %w", repository.ErrInvalidArgument)
	}
	if e.GetID() <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", e.GetID(), repository.ErrInvalidArgument)
	}
	if len(fields) == 0 {
		return fmt.Errorf("at least one field to update is required: %w", repository.ErrInvalidArgument)
	}
	if err := s.repo.UpdateFields(ctx, e.GetID(), fields); err != nil {
		return wrap("updating entity fields", err)
	}
	return nil
}

// Delete removes the entity with the given ID.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", id, repository.ErrInvalidArgument)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("deleting entity", err)
	}
	return nil
}

// Exists reports whether the entity with the given ID is persisted.
func (s *Service[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("id must be positive, got %d: %w", id, repository.ErrInvalidArgument)
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, wrap("checking entity existence", err)
	}
	return ok, nil
}

// wrap adds operation context, preserving the not-found and invalid-argument
// kinds and collapsing anything else into ErrOperationFailed.
func wrap(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidArgument) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrOperationFailed, err)
}

// isNil reports whether a pointer-typed entity is nil without reflection.
func isNil[T entity.Entity](e T) bool {
	var zero T
	return any(e) == any(zero)
}
