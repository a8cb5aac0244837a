package ports

import (
	"context"
	"errors"
)

// ErrUnknownItem is returned by a Catalog for ids it does not list.
var ErrUnknownItem = errors.New("item not found")

// CatalogItem is what order placement needs to know about a product.
type CatalogItem struct {
	ID    string
	Price *int64
}

// Catalog resolves order items against the product catalog.
type Catalog interface {
	Lookup(ctx context.Context, id string) (*CatalogItem, error)
}
