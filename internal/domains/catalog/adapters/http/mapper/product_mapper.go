package mapper

import (
	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

// Product is the wire shape of a catalog entry. Price is null for products
// that are not for sale.
type Product struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Price       *int64 `json:"price"`
}

// ProductList is the paged envelope returned by the list endpoint.
type ProductList struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}

// FromDomainProduct converts a domain product to its transport representation.
func FromDomainProduct(p *domain.Product) Product {
	if p == nil {
		return Product{}
	}
	clone := p.Clone()
	return Product{
		ID:          clone.ID,
		Description: clone.Description,
		Image:       clone.Image,
		Title:       clone.Title,
		Category:    clone.Category,
		Price:       clone.Price,
	}
}

// ToDomainProduct converts a transport product into a validated domain product.
func ToDomainProduct(p Product) (*domain.Product, error) {
	return domain.NewProduct(p.ID, p.Title, p.Description, p.Image, p.Category, p.Price)
}

// FromDomainProducts builds the list envelope; Items is never null.
func FromDomainProducts(products []*domain.Product) ProductList {
	items := make([]Product, 0, len(products))
	for _, p := range products {
		items = append(items, FromDomainProduct(p))
	}
	return ProductList{Total: len(items), Items: items}
}
