package ports

import (
	"context"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
)

// CatalogAPI is the remote catalog/order collaborator. Any returned error
// means the order was not placed.
type CatalogAPI interface {
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
	SubmitOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderResult, error)
}
