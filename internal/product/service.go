package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbweber/homelab/restkit/internal/repository"
	"github.com/jbweber/homelab/restkit/internal/service"
)

// Service adds product business rules on top of the generic service. Only the
// write paths need overriding; reads promote straight through.
type Service struct {
	*service.Service[*Product]
}

// NewService creates the product service over a product repository.
func NewService(repo repository.Repository[*Product]) *Service {
	return &Service{Service: service.New(repo)}
}

// Create validates the product before delegating to the generic path.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.Service.Create(ctx, p)
}

// Update validates the product before delegating to the generic path.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.Service.Update(ctx, p)
}

func validate(p *Product) error {
	if p == nil {
		return fmt.Errorf("product is required: %w", repository.ErrInvalidArgument)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required: %w", repository.ErrInvalidArgument)
	}
	if p.Price < 0 {
		return fmt.Errorf("product price cannot be negative: %w", repository.ErrInvalidArgument)
	}
	return nil
}
