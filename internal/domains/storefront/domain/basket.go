package domain

// Basket is the snapshot published on every basket change.
type Basket struct {
	Items []string
	Total int64
}

// Empty reports whether no product is in the basket.
func (b Basket) Empty() bool {
	return len(b.Items) == 0
}

// Count is the number of distinct products in the basket.
func (b Basket) Count() int {
	return len(b.Items)
}

// Contains reports whether id is in the basket.
func (b Basket) Contains(id string) bool {
	for _, item := range b.Items {
		if item == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the item slice.
func (b Basket) Clone() Basket {
	return Basket{Items: append([]string{}, b.Items...), Total: b.Total}
}
