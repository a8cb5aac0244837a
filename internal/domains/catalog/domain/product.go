package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidTitle     = errors.New("product title is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
)

// Product is a catalog entry. A nil Price marks a product that is shown but
// not sold.
type Product struct {
	ID          string
	Title       string
	Description string
	Image       string
	Category    string
	Price       *int64
}

// NewProduct validates and constructs a Product aggregate.
func NewProduct(id, title, description, image, category string, price *int64) (*Product, error) {
	p := &Product{
		ID:          strings.TrimSpace(id),
		Title:       strings.TrimSpace(title),
		Description: description,
		Image:       strings.TrimSpace(image),
		Category:    strings.TrimSpace(category),
		Price:       copyPrice(price),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProductID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrInvalidTitle
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ForSale reports whether the product can be ordered.
func (p *Product) ForSale() bool {
	return p.Price != nil
}

// InCategory matches a category filter; an empty filter matches everything.
func (p *Product) InCategory(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(p.Category, category)
}

// Clone deep-copies the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Price = copyPrice(p.Price)
	return &clone
}

func copyPrice(price *int64) *int64 {
	if price == nil {
		return nil
	}
	v := *price
	return &v
}
