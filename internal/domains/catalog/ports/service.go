package ports

import (
	"context"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Seed(ctx context.Context, products []*domain.Product) error
}
