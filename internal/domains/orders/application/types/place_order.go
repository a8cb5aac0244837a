package types

// PlaceOrderInput is the order submission as received from a client.
type PlaceOrderInput struct {
	// IdempotencyKey deduplicates retried submissions; empty disables replay.
	IdempotencyKey string
	Payment        string
	Email          string
	Phone          string
	Address        string
	Items          []string
	Total          int64
}
