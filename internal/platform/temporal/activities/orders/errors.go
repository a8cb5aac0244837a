package orders

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/web-larek/internal/domains/orders/application"
	"github.com/Apurer/web-larek/internal/domains/orders/ports"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
	ErrTypeItemNotForSale      = "ItemNotForSale"
	ErrTypeTotalMismatch       = "TotalMismatch"
	ErrTypeUnknownItem         = "UnknownItem"
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeNotFound            = "NotFound"
)

type errorKind struct {
	errType string
	causes  []error
}

// Most specific first; the first match decides the type.
var errorKinds = []errorKind{
	{ErrTypeIdempotencyConflict, []error{ports.ErrIdempotencyConflict}},
	{ErrTypeItemNotForSale, []error{application.ErrInvalidInput, application.ErrItemNotForSale}},
	{ErrTypeTotalMismatch, []error{application.ErrInvalidInput, application.ErrTotalMismatch}},
	{ErrTypeUnknownItem, []error{application.ErrInvalidInput, ports.ErrUnknownItem}},
	{ErrTypeInvalidInput, []error{application.ErrInvalidInput}},
	{ErrTypeNotFound, []error{ports.ErrNotFound}},
}

// EncodeError turns a use case rejection into a non-retryable application
// error. Other errors are returned unchanged so Temporal retries them.
func EncodeError(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.causes[len(kind.causes)-1]) {
			return temporal.NewNonRetryableApplicationError(err.Error(), kind.errType, err)
		}
	}
	return err
}

// DecodeError restores the sentinels of an application error raised by
// EncodeError, keeping the original message.
func DecodeError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	for _, kind := range errorKinds {
		if appErr.Type() == kind.errType {
			return &rejection{msg: appErr.Message(), causes: kind.causes}
		}
	}
	return err
}

type rejection struct {
	msg    string
	causes []error
}

func (r *rejection) Error() string   { return r.msg }
func (r *rejection) Unwrap() []error { return r.causes }
