package mapper

import "github.com/Apurer/web-larek/internal/domains/storefront/domain"

// OrderForm is the transport shape of the delivery step.
type OrderForm struct {
	Address string `json:"address"`
	Payment string `json:"payment"`
	Valid   bool   `json:"valid"`
	Errors  string `json:"errors"`
}

// ContactsForm is the transport shape of the contacts step.
type ContactsForm struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Valid  bool   `json:"valid"`
	Errors string `json:"errors"`
}

// SuccessView is the confirmation shown after an order is placed.
type SuccessView struct {
	OrderID     string `json:"orderId"`
	Total       int64  `json:"total"`
	Description string `json:"description"`
}

func ToOrderForm(s domain.OrderFormState) OrderForm {
	return OrderForm{Address: s.Address, Payment: string(s.Payment), Valid: s.Valid, Errors: s.Errors}
}

func ToContactsForm(s domain.ContactsFormState) ContactsForm {
	return ContactsForm{Email: s.Email, Phone: s.Phone, Valid: s.Valid, Errors: s.Errors}
}

func ToSuccessView(s domain.Success) SuccessView {
	return SuccessView{
		OrderID:     s.OrderID,
		Total:       s.Total,
		Description: "Charged " + SynapsesLabel(s.Total),
	}
}
