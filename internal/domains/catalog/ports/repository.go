package ports

import (
	"context"
	"errors"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products.
type Repository interface {
	// List returns the products of category in catalog order; "" lists all.
	List(ctx context.Context, category string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// SaveAll upserts products, keeping the order they are given in.
	SaveAll(ctx context.Context, products []*domain.Product) error
}
