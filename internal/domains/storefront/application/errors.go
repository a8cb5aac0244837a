package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
)

var (
	// ErrInvalidInput signals an intent carried a value the draft cannot hold.
	ErrInvalidInput = errors.New("invalid storefront input")
	// ErrSubmissionInFlight rejects a submit while the previous one is pending.
	ErrSubmissionInFlight = errors.New("order submission already in flight")
	// ErrCheckoutBlocked signals a gate refused the transition.
	ErrCheckoutBlocked = errors.New("checkout step is not valid")
	// ErrCatalogUnavailable wraps catalog load failures.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrOrderNotPlaced wraps order submission failures.
	ErrOrderNotPlaced = errors.New("order not placed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPayment) || errors.Is(err, domain.ErrUnknownField) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
