// Package product is the demo resource: it wires a concrete entity through
// the generic repository, service, and controller layers.
package product

import (
	"github.com/jbweber/homelab/restkit/internal/entity"
	"github.com/jbweber/homelab/restkit/internal/repository"
)

// BasePath is where the product resource mounts its routes.
const BasePath = "/api/products"

// Product represents an item in the catalog.
type Product struct {
	entity.Model
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Mapper describes the products table for the generic SQL repository.
func Mapper() repository.Mapper[*Product] {
	return repository.Mapper[*Product]{
		Table:   "products",
		Columns: []string{"name", "price", "description"},
		Fields: map[string]string{
			"name":        "name",
			"price":       "price",
			"description": "description",
		},
		New: func() *Product { return &Product{} },
		Values: func(p *Product) []any {
			return []any{p.Name, p.Price, p.Description}
		},
		Scan: func(row repository.RowScanner) (*Product, error) {
			var p Product
			if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
				return nil, err
			}
			return &p, nil
		},
	}
}
