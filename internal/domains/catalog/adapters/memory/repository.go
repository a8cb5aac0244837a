package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) List(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		if p := r.products[id]; p.InCategory(category) {
			list = append(list, p.Clone())
		}
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *Repository) SaveAll(_ context.Context, products []*domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		if p == nil {
			return errors.New("product is nil")
		}
		if _, ok := r.products[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.products[p.ID] = p.Clone()
	}
	return nil
}
