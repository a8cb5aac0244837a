package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/web-larek/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrItemNotForSale rejects items the catalog lists without a price.
	ErrItemNotForSale = errors.New("item is not for sale")
	// ErrTotalMismatch rejects orders whose total differs from the catalog sum.
	ErrTotalMismatch = errors.New("order total does not match items")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPayment) ||
		errors.Is(err, domain.ErrEmailRequired) ||
		errors.Is(err, domain.ErrPhoneRequired) ||
		errors.Is(err, domain.ErrAddressRequired) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrDuplicateItem) ||
		errors.Is(err, domain.ErrNegativeTotal) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
