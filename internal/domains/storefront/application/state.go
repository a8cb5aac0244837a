package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

// DraftRetention decides what ClearBasket does with the contact and delivery
// fields of the draft.
type DraftRetention int

const (
	// RetainContacts keeps email, phone, address and payment for the next order.
	RetainContacts DraftRetention = iota
	// ResetDraft starts the next order from an empty draft.
	ResetDraft
)

// StateOption customizes AppState construction.
type StateOption func(*AppState)

// WithDraftRetention selects the ClearBasket draft policy.
func WithDraftRetention(policy DraftRetention) StateOption {
	return func(s *AppState) {
		s.retention = policy
	}
}

// WithStateLogger injects a logger.
func WithStateLogger(logger *slog.Logger) StateOption {
	return func(s *AppState) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type basketEntry struct {
	id    string
	price int64
}

// AppState owns the catalog, basket, order draft and current form errors.
// Every mutation completes before the matching change event is emitted.
type AppState struct {
	bus       *eventbus.Bus
	logger    *slog.Logger
	retention DraftRetention

	catalog    []domain.Product
	preview    *domain.Product
	basket     []basketEntry
	total      int64
	draft      domain.OrderDraft
	formErrors domain.FormErrors
}

// NewAppState builds an empty store publishing on bus.
func NewAppState(bus *eventbus.Bus, opts ...StateOption) *AppState {
	s := &AppState{
		bus:        bus,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		retention:  RetainContacts,
		formErrors: domain.FormErrors{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetCatalog replaces the catalog wholesale and reconciles the basket with it.
// Basket entries missing from the new catalog are dropped and the rest take
// the new price; basket:changed follows only when the basket moved.
func (s *AppState) SetCatalog(ctx context.Context, products []domain.Product) {
	s.catalog = domain.CloneProducts(products)
	changed := s.reconcileBasket()
	s.emit(ctx, domain.EventItemsChanged, s.Catalog())
	if changed {
		s.emit(ctx, domain.EventBasketChanged, s.Basket())
	}
}

func (s *AppState) reconcileBasket() bool {
	if len(s.basket) == 0 {
		return false
	}
	prices := make(map[string]int64, len(s.catalog))
	for _, p := range s.catalog {
		prices[p.ID] = p.PriceOrZero()
	}
	kept := make([]basketEntry, 0, len(s.basket))
	var total int64
	changed := false
	for _, e := range s.basket {
		price, ok := prices[e.id]
		if !ok {
			changed = true
			continue
		}
		if price != e.price {
			e.price = price
			changed = true
		}
		kept = append(kept, e)
		total += price
	}
	s.basket = kept
	s.total = total
	return changed
}

// Catalog returns a copy of the loaded products.
func (s *AppState) Catalog() []domain.Product {
	return domain.CloneProducts(s.catalog)
}

// Product looks up a catalog product by id.
func (s *AppState) Product(id string) (domain.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Product{}, false
}

// SetPreview records the inspected product.
func (s *AppState) SetPreview(ctx context.Context, product domain.Product) {
	p := product.Clone()
	s.preview = &p
	s.emit(ctx, domain.EventPreviewChanged, p.Clone())
}

// Preview returns the inspected product, if any.
func (s *AppState) Preview() (domain.Product, bool) {
	if s.preview == nil {
		return domain.Product{}, false
	}
	return s.preview.Clone(), true
}

// IsInBasket reports basket membership.
func (s *AppState) IsInBasket(id string) bool {
	return s.indexOf(id) >= 0
}

// AddToBasket appends the product unless it is already present, in which case
// nothing changes and no event is emitted.
func (s *AppState) AddToBasket(ctx context.Context, product domain.Product) {
	if s.IsInBasket(product.ID) {
		return
	}
	price := product.PriceOrZero()
	s.basket = append(s.basket, basketEntry{id: product.ID, price: price})
	s.total += price
	s.emit(ctx, domain.EventBasketChanged, s.Basket())
}

// RemoveFromBasket drops the product if present. The price subtracted is the
// one recorded when it was added, so a stale product value cannot skew the total.
func (s *AppState) RemoveFromBasket(ctx context.Context, product domain.Product) {
	idx := s.indexOf(product.ID)
	if idx < 0 {
		return
	}
	s.total -= s.basket[idx].price
	s.basket = append(s.basket[:idx:idx], s.basket[idx+1:]...)
	s.emit(ctx, domain.EventBasketChanged, s.Basket())
}

// ClearBasket empties the basket and the draft's items after an order.
func (s *AppState) ClearBasket(ctx context.Context) {
	s.basket = nil
	s.total = 0
	s.draft.Items = nil
	if s.retention == ResetDraft {
		s.draft = domain.OrderDraft{}
		s.formErrors = domain.FormErrors{}
	}
	s.emit(ctx, domain.EventBasketChanged, s.Basket())
}

// Basket returns the current basket snapshot.
func (s *AppState) Basket() domain.Basket {
	items := make([]string, 0, len(s.basket))
	for _, e := range s.basket {
		items = append(items, e.id)
	}
	return domain.Basket{Items: items, Total: s.total}
}

// BasketProducts lists the catalog products that are in the basket, in
// catalog order.
func (s *AppState) BasketProducts() []domain.Product {
	var out []domain.Product
	for _, p := range s.catalog {
		if s.IsInBasket(p.ID) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// SetOrderField writes one draft field. Editing the address revalidates the
// delivery step; editing email or phone revalidates the contacts step.
func (s *AppState) SetOrderField(ctx context.Context, field domain.Field, value string) error {
	switch field {
	case domain.FieldEmail:
		s.draft.Email = value
		s.ValidateContacts(ctx)
	case domain.FieldPhone:
		s.draft.Phone = value
		s.ValidateContacts(ctx)
	case domain.FieldAddress:
		s.draft.Address = value
		s.ValidateOrderDetails(ctx)
	case domain.FieldPayment:
		return s.SetPayment(domain.PaymentMethod(value))
	default:
		return domain.ErrUnknownField
	}
	return nil
}

// SetPayment sets the payment method directly.
func (s *AppState) SetPayment(method domain.PaymentMethod) error {
	parsed, err := domain.ParsePaymentMethod(string(method))
	if err != nil {
		return err
	}
	s.draft.Payment = parsed
	return nil
}

// Draft returns a copy of the order draft.
func (s *AppState) Draft() domain.OrderDraft {
	return s.draft.Clone()
}

// FormErrors returns the error set produced by the last validation.
func (s *AppState) FormErrors() domain.FormErrors {
	return s.formErrors.Clone()
}

// ValidateContacts recomputes the error set for the contacts step.
func (s *AppState) ValidateContacts(ctx context.Context) bool {
	return s.applyErrors(ctx, domain.ValidateContacts(s.draft))
}

// ValidateOrderDetails recomputes the error set for the delivery step.
func (s *AppState) ValidateOrderDetails(ctx context.Context) bool {
	return s.applyErrors(ctx, domain.ValidateOrderDetails(s.draft))
}

// PrepareOrder copies the basket into the draft and returns the submission
// payload built from both.
func (s *AppState) PrepareOrder() domain.OrderRequest {
	basket := s.Basket()
	s.draft.Items = append([]string{}, basket.Items...)
	return domain.OrderRequest{
		Email:   s.draft.Email,
		Phone:   s.draft.Phone,
		Address: s.draft.Address,
		Payment: s.draft.Payment,
		Items:   basket.Items,
		Total:   basket.Total,
	}
}

// applyErrors replaces the error set and reports every failing field, even
// when the set did not change.
func (s *AppState) applyErrors(ctx context.Context, errs domain.FormErrors) bool {
	s.formErrors = errs
	for _, field := range errs.Fields() {
		s.emit(ctx, domain.EventFormError, domain.FieldError{Field: field, Message: errs[field]})
	}
	return errs.Valid()
}

func (s *AppState) indexOf(id string) int {
	for i, e := range s.basket {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (s *AppState) emit(ctx context.Context, name string, payload any) {
	if s.bus == nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "state change dropped, no bus", slog.String("event", name))
		return
	}
	s.bus.Emit(ctx, name, payload)
}
