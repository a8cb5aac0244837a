package domain

import (
	"errors"
	"strings"
)

// PaymentMethod enumerates the accepted payment options.
type PaymentMethod string

const (
	PaymentUnset PaymentMethod = ""
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
)

// Field identifies one editable order draft field.
type Field string

const (
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
	FieldPayment Field = "payment"
	// FieldItems is only used to report an empty basket.
	FieldItems Field = "items"
)

var (
	ErrInvalidPayment = errors.New("payment method must be cash or card")
	ErrUnknownField   = errors.New("unknown order field")
)

// ParsePaymentMethod accepts "cash" or "card" (case and surrounding space
// insensitive). An empty value yields PaymentUnset.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentUnset:
		return PaymentUnset, nil
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return PaymentUnset, ErrInvalidPayment
	}
}

// Valid reports whether the method is one of the enumerated values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// ParseField maps a wire field name to its identifier.
func ParseField(raw string) (Field, error) {
	switch Field(strings.TrimSpace(raw)) {
	case FieldEmail:
		return FieldEmail, nil
	case FieldPhone:
		return FieldPhone, nil
	case FieldAddress:
		return FieldAddress, nil
	case FieldPayment:
		return FieldPayment, nil
	default:
		return "", ErrUnknownField
	}
}

// OnForm reports whether the field is edited on form: address and payment on
// the delivery form, email and phone on the contacts form.
func (f Field) OnForm(form string) bool {
	switch form {
	case FormOrder:
		return f == FieldAddress || f == FieldPayment
	case FormContacts:
		return f == FieldEmail || f == FieldPhone
	default:
		return false
	}
}

// OrderDraft is the in-progress checkout form.
type OrderDraft struct {
	Email   string
	Phone   string
	Address string
	Payment PaymentMethod
	Items   []string
}

// Clone returns a copy that does not share the item slice.
func (d OrderDraft) Clone() OrderDraft {
	d.Items = append([]string{}, d.Items...)
	return d
}

// OrderRequest is the payload submitted to the order API.
type OrderRequest struct {
	Email   string
	Phone   string
	Address string
	Payment PaymentMethod
	Items   []string
	Total   int64
}

// OrderResult is the order API's acknowledgement.
type OrderResult struct {
	ID    string
	Total int64
}
