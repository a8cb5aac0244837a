package ports

import (
	"context"
	"errors"

	"github.com/Apurer/web-larek/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists placed orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
