package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, mapError(domain.ErrInvalidProductID)
	}
	return s.repo.GetByID(ctx, id)
}

// Seed validates every product before storing any, and rejects duplicate ids.
func (s *Service) Seed(ctx context.Context, products []*domain.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if p == nil {
			return fmt.Errorf("%w: product %d is nil", ErrInvalidInput, i)
		}
		if err := p.Validate(); err != nil {
			return mapError(err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if len(products) == 0 {
		return errors.New("seed catalog is empty")
	}
	return s.repo.SaveAll(ctx, products)
}

var _ ports.Service = (*Service)(nil)
