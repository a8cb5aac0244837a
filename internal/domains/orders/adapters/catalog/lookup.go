// Package catalog resolves order items through the catalog bounded context.
package catalog

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/web-larek/internal/domains/catalog/ports"
	"github.com/Apurer/web-larek/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Lookup)(nil)

// Lookup adapts the catalog service to the orders Catalog port.
type Lookup struct {
	service catalogports.Service
}

func NewLookup(service catalogports.Service) *Lookup {
	return &Lookup{service: service}
}

func (l *Lookup) Lookup(ctx context.Context, id string) (*ports.CatalogItem, error) {
	if l == nil || l.service == nil {
		return nil, errors.New("catalog lookup not configured")
	}
	product, err := l.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrUnknownItem
		}
		return nil, err
	}
	item := &ports.CatalogItem{ID: product.ID}
	if product.Price != nil {
		price := *product.Price
		item.Price = &price
	}
	return item, nil
}
