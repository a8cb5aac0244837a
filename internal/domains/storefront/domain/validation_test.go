package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateOrderDetails(t *testing.T) {
	errs := ValidateOrderDetails(OrderDraft{Address: "", Payment: PaymentUnset})
	require.Len(t, errs, 2)
	require.Contains(t, errs, FieldAddress)
	require.Contains(t, errs, FieldPayment)

	errs = ValidateOrderDetails(OrderDraft{Address: "x", Payment: PaymentCash})
	require.True(t, errs.Valid())
	require.Empty(t, errs)
}

func TestValidateOrderDetails_BlankAddressIsMissing(t *testing.T) {
	errs := ValidateOrderDetails(OrderDraft{Address: "   ", Payment: PaymentCard})
	require.Equal(t, FormErrors{FieldAddress: MsgAddressRequired}, errs)
}

func TestValidateContacts(t *testing.T) {
	errs := ValidateContacts(OrderDraft{Email: "", Phone: "5551234"})
	require.Equal(t, FormErrors{FieldEmail: MsgEmailRequired}, errs)

	errs = ValidateContacts(OrderDraft{Email: "a@b.c", Phone: "\t"})
	require.Equal(t, FormErrors{FieldPhone: MsgPhoneRequired}, errs)

	require.True(t, ValidateContacts(OrderDraft{Email: "a@b.c", Phone: "123"}).Valid())
}

func TestValidateBasket(t *testing.T) {
	require.Equal(t, FormErrors{FieldItems: MsgBasketEmpty}, ValidateBasket(Basket{}))
	require.True(t, ValidateBasket(Basket{Items: []string{"a"}}).Valid())
}

func TestFormErrors_JoinUsesFieldOrder(t *testing.T) {
	errs := FormErrors{FieldPayment: "pay", FieldAddress: "addr"}
	require.Equal(t, "addr; pay", errs.Join("; "))
	require.Equal(t, []Field{FieldAddress, FieldPayment}, errs.Fields())
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" Card ")
	require.NoError(t, err)
	require.Equal(t, PaymentCard, m)

	m, err = ParsePaymentMethod("")
	require.NoError(t, err)
	require.Equal(t, PaymentUnset, m)

	_, err = ParsePaymentMethod("bitcoin")
	require.ErrorIs(t, err, ErrInvalidPayment)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("address")
	require.NoError(t, err)
	require.Equal(t, FieldAddress, f)

	_, err = ParseField("items")
	require.ErrorIs(t, err, ErrUnknownField)
}
