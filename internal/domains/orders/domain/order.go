package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment enumerates accepted payment methods.
type Payment string

const (
	PaymentCash Payment = "cash"
	PaymentCard Payment = "card"
)

// Status enumerates order progression.
type Status string

const StatusPlaced Status = "placed"

var (
	ErrInvalidPayment  = errors.New("payment method must be cash or card")
	ErrEmailRequired   = errors.New("email is required")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrAddressRequired = errors.New("address is required")
	ErrNoItems         = errors.New("order has no items")
	ErrDuplicateItem   = errors.New("order lists an item more than once")
	ErrNegativeTotal   = errors.New("order total must not be negative")
)

// Order models a placed storefront order.
type Order struct {
	ID        string
	Payment   Payment
	Email     string
	Phone     string
	Address   string
	Items     []string
	Total     int64
	Status    Status
	CreatedAt time.Time
}

// NewOrder validates and constructs an Order with a fresh id.
func NewOrder(payment, email, phone, address string, items []string, total int64) (*Order, error) {
	order := &Order{
		ID:      uuid.NewString(),
		Payment: Payment(strings.ToLower(strings.TrimSpace(payment))),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
		Items:   append([]string{}, items...),
		Total:   total,
		Status:  StatusPlaced,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the checkout rules a placed order must satisfy.
func (o *Order) Validate() error {
	if !o.Payment.Valid() {
		return ErrInvalidPayment
	}
	if o.Address == "" {
		return ErrAddressRequired
	}
	if o.Email == "" {
		return ErrEmailRequired
	}
	if o.Phone == "" {
		return ErrPhoneRequired
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	seen := make(map[string]struct{}, len(o.Items))
	for _, id := range o.Items {
		if _, dup := seen[id]; dup {
			return ErrDuplicateItem
		}
		seen[id] = struct{}{}
	}
	if o.Total < 0 {
		return ErrNegativeTotal
	}
	return nil
}

// Valid reports whether the payment is one of the enumerated values.
func (p Payment) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// Clone deep-copies the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]string{}, o.Items...)
	return &clone
}
