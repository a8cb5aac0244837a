package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/domains/storefront/ports"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

// ErrorSeparator joins form error messages pushed to the views.
const ErrorSeparator = "; "

// CheckoutOption customizes Checkout construction.
type CheckoutOption func(*Checkout)

// WithCheckoutLogger injects the diagnostic sink for API failures.
func WithCheckoutLogger(logger *slog.Logger) CheckoutOption {
	return func(c *Checkout) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checkout turns intent events into state changes and step transitions. Apart
// from its subscriptions it only tracks the active step and whether an order
// submission is pending.
type Checkout struct {
	bus    *eventbus.Bus
	state  *AppState
	api    ports.CatalogAPI
	logger *slog.Logger

	subs       []*eventbus.Subscription
	step       domain.Step
	submitting bool
	lastSubmit error
}

// NewCheckout wires the workflow. Call Start to subscribe.
func NewCheckout(bus *eventbus.Bus, state *AppState, api ports.CatalogAPI, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		bus:    bus,
		state:  state,
		api:    api,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		step:   domain.StepCatalog,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Start registers the workflow's handlers. Calling it twice is a no-op.
func (c *Checkout) Start() {
	if len(c.subs) > 0 {
		return
	}
	c.subs = []*eventbus.Subscription{
		c.bus.On(domain.EventCardSelect, eventbus.Typed(c.selectCard)),
		c.bus.On(domain.EventBasketToggle, eventbus.Typed(c.toggleBasket)),
		c.bus.On(domain.EventBasketRemove, eventbus.Typed(c.removeFromBasket)),
		c.bus.On(domain.EventBasketOpen, c.openBasket),
		c.bus.On(domain.EventOrderOpen, c.openOrder),
		c.bus.OnMatch(eventbus.FieldChanges(domain.FormOrder), eventbus.Typed(c.changeOrderField)),
		c.bus.On(domain.EventOrderSubmit, c.submitOrderDetails),
		c.bus.OnMatch(eventbus.FieldChanges(domain.FormContacts), eventbus.Typed(c.changeContactsField)),
		c.bus.On(domain.EventContactsSubmit, c.submitContacts),
		c.bus.On(domain.EventSuccessClose, c.closeModal),
		c.bus.On(domain.EventModalClose, c.closeModal),
		c.bus.On(domain.EventCatalogReload, c.reloadCatalog),
	}
}

// Stop removes every subscription registered by Start.
func (c *Checkout) Stop() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil
}

// Step is the active checkout step.
func (c *Checkout) Step() domain.Step {
	return c.step
}

// Locked reports whether a step is shown over the catalog.
func (c *Checkout) Locked() bool {
	return c.step.Modal()
}

// Submitting reports whether an order submission is pending.
func (c *Checkout) Submitting() bool {
	return c.submitting
}

// LastSubmitError is the outcome of the latest contacts submission that got
// past the in-flight guard. Nil means the order was placed.
func (c *Checkout) LastSubmitError() error {
	return c.lastSubmit
}

// LoadCatalog fetches the products and replaces the catalog. On failure the
// current catalog is kept.
func (c *Checkout) LoadCatalog(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("%w: catalog api not configured", ErrCatalogUnavailable)
	}
	products, err := c.api.FetchCatalog(ctx)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "failed to load catalog", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	c.state.SetCatalog(ctx, products)
	c.logger.LogAttrs(ctx, slog.LevelInfo, "catalog loaded", slog.Int("catalog.size", len(products)))
	return nil
}

func (c *Checkout) reloadCatalog(ctx context.Context, _ eventbus.Event) error {
	return c.LoadCatalog(ctx)
}

func (c *Checkout) selectCard(ctx context.Context, product domain.Product) error {
	c.state.SetPreview(ctx, product)
	c.setStep(ctx, domain.StepPreview)
	return nil
}

func (c *Checkout) toggleBasket(ctx context.Context, product domain.Product) error {
	if c.state.IsInBasket(product.ID) {
		c.state.RemoveFromBasket(ctx, product)
	} else {
		c.state.AddToBasket(ctx, product)
	}
	c.setStep(ctx, domain.StepCatalog)
	return nil
}

func (c *Checkout) removeFromBasket(ctx context.Context, product domain.Product) error {
	c.state.RemoveFromBasket(ctx, product)
	return nil
}

func (c *Checkout) openBasket(ctx context.Context, _ eventbus.Event) error {
	c.setStep(ctx, domain.StepBasket)
	return nil
}

func (c *Checkout) openOrder(ctx context.Context, _ eventbus.Event) error {
	if !c.basketReady(ctx) {
		return fmt.Errorf("%w: %s", ErrCheckoutBlocked, domain.MsgBasketEmpty)
	}
	draft := c.state.Draft()
	c.bus.Emit(ctx, domain.EventOrderRender, domain.OrderFormState{
		Address: draft.Address,
		Payment: draft.Payment,
		Valid:   draft.Address != "",
	})
	c.setStep(ctx, domain.StepOrder)
	return nil
}

func (c *Checkout) changeOrderField(ctx context.Context, change domain.FieldChange) error {
	if !change.Field.OnForm(domain.FormOrder) {
		return mapError(domain.ErrUnknownField)
	}
	if err := c.state.SetOrderField(ctx, change.Field, change.Value); err != nil {
		return mapError(err)
	}
	valid := c.state.ValidateOrderDetails(ctx)
	c.bus.Emit(ctx, domain.EventOrderValidity, domain.FormValidity{
		Valid:  valid,
		Errors: c.state.FormErrors().Join(ErrorSeparator),
	})
	return nil
}

func (c *Checkout) submitOrderDetails(ctx context.Context, _ eventbus.Event) error {
	if !c.state.ValidateOrderDetails(ctx) {
		return fmt.Errorf("%w: %s", ErrCheckoutBlocked, c.state.FormErrors().Join(ErrorSeparator))
	}
	draft := c.state.Draft()
	c.bus.Emit(ctx, domain.EventContactsRender, domain.ContactsFormState{
		Email: draft.Email,
		Phone: draft.Phone,
		Valid: draft.Email != "" && draft.Phone != "",
	})
	c.setStep(ctx, domain.StepContacts)
	return nil
}

func (c *Checkout) changeContactsField(ctx context.Context, change domain.FieldChange) error {
	if !change.Field.OnForm(domain.FormContacts) {
		return mapError(domain.ErrUnknownField)
	}
	if err := c.state.SetOrderField(ctx, change.Field, change.Value); err != nil {
		return mapError(err)
	}
	valid := c.state.ValidateContacts(ctx)
	c.bus.Emit(ctx, domain.EventContactsValidity, domain.FormValidity{
		Valid:  valid,
		Errors: c.state.FormErrors().Join(ErrorSeparator),
	})
	return nil
}

func (c *Checkout) submitContacts(ctx context.Context, _ eventbus.Event) error {
	if c.submitting {
		return ErrSubmissionInFlight
	}
	// Stays in place if placeOrder panics; the bus recovers the panic.
	c.lastSubmit = ErrOrderNotPlaced
	c.lastSubmit = c.placeOrder(ctx)
	return c.lastSubmit
}

func (c *Checkout) placeOrder(ctx context.Context) error {
	// Both gates run again: the delivery step may have been edited since
	// the contacts step opened.
	if !c.state.ValidateContacts(ctx) || !c.state.ValidateOrderDetails(ctx) {
		return fmt.Errorf("%w: %s", ErrCheckoutBlocked, c.state.FormErrors().Join(ErrorSeparator))
	}
	if !c.basketReady(ctx) {
		return fmt.Errorf("%w: %s", ErrCheckoutBlocked, domain.MsgBasketEmpty)
	}
	if c.api == nil {
		return c.failSubmit(ctx, errors.New("order api not configured"))
	}

	c.submitting = true
	result, err := func() (*domain.OrderResult, error) {
		defer func() { c.submitting = false }()
		return c.api.SubmitOrder(ctx, c.state.PrepareOrder())
	}()
	if err != nil {
		return c.failSubmit(ctx, err)
	}
	if result == nil {
		return c.failSubmit(ctx, errors.New("order api returned no result"))
	}

	c.state.ClearBasket(ctx)
	c.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.String("order.id", result.ID), slog.Int64("order.total", result.Total))
	c.bus.Emit(ctx, domain.EventSuccessRender, domain.Success{OrderID: result.ID, Total: result.Total})
	c.setStep(ctx, domain.StepSuccess)
	return nil
}

func (c *Checkout) failSubmit(ctx context.Context, err error) error {
	c.logger.LogAttrs(ctx, slog.LevelError, "failed to place order", slog.String("error", err.Error()))
	c.bus.Emit(ctx, domain.EventOrderFailed, domain.SubmitFailure{Message: err.Error()})
	return fmt.Errorf("%w: %w", ErrOrderNotPlaced, err)
}

func (c *Checkout) closeModal(ctx context.Context, _ eventbus.Event) error {
	c.setStep(ctx, domain.StepCatalog)
	return nil
}

func (c *Checkout) basketReady(ctx context.Context) bool {
	errs := domain.ValidateBasket(c.state.Basket())
	for _, field := range errs.Fields() {
		c.bus.Emit(ctx, domain.EventFormError, domain.FieldError{Field: field, Message: errs[field]})
	}
	return errs.Valid()
}

func (c *Checkout) setStep(ctx context.Context, step domain.Step) {
	c.step = step
	c.bus.Emit(ctx, domain.EventStepChanged, domain.StepChanged{Step: step, Locked: step.Modal()})
}
