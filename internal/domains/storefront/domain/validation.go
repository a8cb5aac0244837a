package domain

import "strings"

// Messages shown next to invalid checkout fields.
const (
	MsgEmailRequired   = "Enter your email"
	MsgPhoneRequired   = "Enter your phone number"
	MsgAddressRequired = "Enter a delivery address"
	MsgPaymentRequired = "Choose a payment method"
	MsgBasketEmpty     = "The basket is empty"
)

// fieldOrder fixes the order errors are joined and reported in.
var fieldOrder = []Field{FieldAddress, FieldPayment, FieldEmail, FieldPhone, FieldItems}

// FormErrors maps a field to its message. An empty mapping means valid.
type FormErrors map[Field]string

// Valid reports whether no field failed.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// Fields lists the failing fields in a stable order.
func (e FormErrors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for _, f := range fieldOrder {
		if _, ok := e[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Join concatenates the messages in field order.
func (e FormErrors) Join(sep string) string {
	msgs := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, sep)
}

// Clone copies the mapping.
func (e FormErrors) Clone() FormErrors {
	out := make(FormErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ValidateContacts checks the contacts step gate.
func ValidateContacts(d OrderDraft) FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(d.Email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs[FieldPhone] = MsgPhoneRequired
	}
	return errs
}

// ValidateOrderDetails checks the delivery step gate.
func ValidateOrderDetails(d OrderDraft) FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(d.Address) == "" {
		errs[FieldAddress] = MsgAddressRequired
	}
	if !d.Payment.Valid() {
		errs[FieldPayment] = MsgPaymentRequired
	}
	return errs
}

// ValidateBasket checks that there is something to order.
func ValidateBasket(b Basket) FormErrors {
	errs := FormErrors{}
	if b.Empty() {
		errs[FieldItems] = MsgBasketEmpty
	}
	return errs
}
