package domain

// Product is an immutable catalog entry as served by the catalog API.
type Product struct {
	ID          string
	Title       string
	Price       *int64
	Description string
	Image       string
	Category    string
}

// Priceless reports whether the product has no price.
func (p Product) Priceless() bool {
	return p.Price == nil
}

// PriceOrZero returns the price, treating a priceless product as zero.
func (p Product) PriceOrZero() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Clone returns a copy that does not share the price pointer.
func (p Product) Clone() Product {
	if p.Price != nil {
		price := *p.Price
		p.Price = &price
	}
	return p
}

// CloneProducts duplicates a product list.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Clone())
	}
	return out
}

// Price is a convenience constructor for product prices.
func Price(v int64) *int64 {
	return &v
}
