// Package controller is the request/response boundary of the resource layer.
// A Resource maps the standard REST verbs onto a service, wraps successes in
// hypermedia envelopes, and maps failures to the uniform error shape.
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jbweber/homelab/restkit/internal/entity"
)

// Listing defaults applied when the query string omits them.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Service defines the business operations a Resource needs. The generic
// service satisfies it; per-entity services substitute their own behavior.
type Service[T entity.Entity] interface {
	GetAll(ctx context.Context, page, pageSize int) (entity.Page[T], error)
	GetByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) error
	Update(ctx context.Context, e T) error
	UpdateFields(ctx context.Context, e T, fields entity.Fields) error
	Delete(ctx context.Context, id int64) error
}

// Resource groups the HTTP handlers for one entity type.
type Resource[T entity.Entity] struct {
	svc       Service[T]
	routes    Routes
	newEntity func() T
}

// NewResource creates a resource rooted at basePath (e.g. "/api/products").
// newEntity allocates a fresh entity for request decoding; it is the only
// type-specific hook the controller needs.
func NewResource[T entity.Entity](svc Service[T], basePath string, newEntity func() T) *Resource[T] {
	return &Resource[T]{
		svc:       svc,
		routes:    Routes{Base: basePath},
		newEntity: newEntity,
	}
}

// Routes returns the resource's route-template set.
func (c *Resource[T]) Routes() Routes { return c.routes }

// RegisterRoutes mounts the standard verb set under the resource's base path.
func (c *Resource[T]) RegisterRoutes(r chi.Router) {
	r.Route(c.routes.Base, func(r chi.Router) {
		r.Get("/", c.ListHandler)
		r.Post("/", c.CreateHandler)
		r.Get("/{id}", c.GetHandler)
		r.Put("/{id}", c.UpdateHandler)
		r.Patch("/{id}", c.PatchHandler)
		r.Delete("/{id}", c.DeleteHandler)
	})
}

// ListHandler handles GET /. Query parameters: page (default 1) and pageSize
// (default 10).
func (c *Resource[T]) ListHandler(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "page must be an integer")
		return
	}
	pageSize, err := queryInt(r, "pageSize", DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "pageSize must be an integer")
		return
	}

	result, err := c.svc.GetAll(r.Context(), page, pageSize)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Envelope[entity.Page[T]]{
		Data:  result,
		Links: c.routes.listLinks(),
	})
}

// GetHandler handles GET /{id}.
func (c *Resource[T]) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	e, err := c.svc.GetByID(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	c.writeEntity(w, http.StatusOK, e)
}

// CreateHandler handles POST /. The payload must not carry an ID; whatever it
// carries is discarded so the provider assigns one.
func (c *Resource[T]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	e := c.newEntity()
	if err := json.NewDecoder(r.Body).Decode(e); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid JSON body")
		return
	}
	e.SetID(0)

	if err := c.svc.Create(r.Context(), e); err != nil {
		writeFailure(w, err)
		return
	}

	w.Header().Set("Location", c.routes.Entity(e.GetID()))
	c.writeEntity(w, http.StatusCreated, e)
}

// UpdateHandler handles PUT /{id}. The path ID is authoritative over any ID
// in the payload.
func (c *Resource[T]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	e := c.newEntity()
	if err := json.NewDecoder(r.Body).Decode(e); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid JSON body")
		return
	}
	e.SetID(id)

	if err := c.svc.Update(r.Context(), e); err != nil {
		writeFailure(w, err)
		return
	}
	c.writeEntity(w, http.StatusOK, e)
}

// PatchHandler handles PATCH /{id} with a field-to-value JSON object. The
// entity is loaded first so a missing ID is a 404 before any mutation, and
// re-fetched afterwards so provider-computed fields are never stale.
func (c *Resource[T]) PatchHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	var fields entity.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid JSON body")
		return
	}

	e, err := c.svc.GetByID(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := c.svc.UpdateFields(r.Context(), e, fields); err != nil {
		writeFailure(w, err)
		return
	}

	updated, err := c.svc.GetByID(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	c.writeEntity(w, http.StatusOK, updated)
}

// DeleteHandler handles DELETE /{id}.
func (c *Resource[T]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Resource[T]) writeEntity(w http.ResponseWriter, status int, e T) {
	writeJSON(w, status, Envelope[T]{
		Data:  e,
		Links: c.routes.entityLinks(e.GetID()),
	})
}

// pathID parses the {id} path parameter, writing a 400 on failure.
func (c *Resource[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, fmt.Sprintf("invalid entity ID %q", idStr))
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
