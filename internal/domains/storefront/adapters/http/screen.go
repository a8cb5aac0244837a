package storefronthttp

import (
	"context"
	"sync"

	"github.com/Apurer/web-larek/internal/domains/storefront/adapters/http/mapper"
	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

// View is everything the storefront page renders.
type View struct {
	Step     domain.Step          `json:"step"`
	Locked   bool                 `json:"locked"`
	Catalog  []mapper.Card        `json:"catalog"`
	Preview  *mapper.PreviewCard  `json:"preview,omitempty"`
	Basket   mapper.BasketView    `json:"basket"`
	Counter  int                  `json:"counter"`
	Order    *mapper.OrderForm    `json:"order,omitempty"`
	Contacts *mapper.ContactsForm `json:"contacts,omitempty"`
	Success  *mapper.SuccessView  `json:"success,omitempty"`
	Failure  string               `json:"failure,omitempty"`
}

// Screen plays the view collaborators: it only learns about the storefront
// through published events and keeps the latest rendered view.
type Screen struct {
	mu       sync.RWMutex
	view     View
	products map[string]domain.Product
	basket   domain.Basket
	preview  *domain.Product
	subs     []*eventbus.Subscription
}

// NewScreen subscribes a screen to bus.
func NewScreen(bus *eventbus.Bus) *Screen {
	s := &Screen{
		view: View{
			Step:    domain.StepCatalog,
			Catalog: []mapper.Card{},
			Basket:  mapper.ToBasketView(domain.Basket{}, nil),
		},
		products: map[string]domain.Product{},
	}
	s.subs = []*eventbus.Subscription{
		bus.On(domain.EventItemsChanged, eventbus.Typed(s.onItems)),
		bus.On(domain.EventPreviewChanged, eventbus.Typed(s.onPreview)),
		bus.On(domain.EventBasketChanged, eventbus.Typed(s.onBasket)),
		bus.On(domain.EventFormError, eventbus.Typed(s.onFormError)),
		bus.On(domain.EventOrderRender, eventbus.Typed(s.onOrderRender)),
		bus.On(domain.EventOrderValidity, eventbus.Typed(s.onOrderValidity)),
		bus.On(domain.EventContactsRender, eventbus.Typed(s.onContactsRender)),
		bus.On(domain.EventContactsValidity, eventbus.Typed(s.onContactsValidity)),
		bus.On(domain.EventSuccessRender, eventbus.Typed(s.onSuccess)),
		bus.On(domain.EventOrderFailed, eventbus.Typed(s.onFailure)),
		bus.On(domain.EventStepChanged, eventbus.Typed(s.onStep)),
	}
	return s
}

// Close unsubscribes the screen.
func (s *Screen) Close() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

// Snapshot returns a copy of the current view.
func (s *Screen) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Catalog = append([]mapper.Card{}, s.view.Catalog...)
	v.Basket.Rows = append([]mapper.BasketRow{}, s.view.Basket.Rows...)
	if s.view.Preview != nil {
		p := *s.view.Preview
		v.Preview = &p
	}
	if s.view.Order != nil {
		o := *s.view.Order
		v.Order = &o
	}
	if s.view.Contacts != nil {
		c := *s.view.Contacts
		v.Contacts = &c
	}
	if s.view.Success != nil {
		sv := *s.view.Success
		v.Success = &sv
	}
	return v
}

func (s *Screen) onItems(_ context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]domain.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = p
	}
	s.view.Catalog = mapper.FromProducts(products)
	s.renderBasket()
	return nil
}

func (s *Screen) onPreview(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = &product
	s.renderPreview()
	return nil
}

func (s *Screen) onBasket(_ context.Context, basket domain.Basket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basket = basket.Clone()
	s.renderBasket()
	s.renderPreview()
	return nil
}

func (s *Screen) onFormError(_ context.Context, fe domain.FieldError) error {
	if fe.Field != domain.FieldItems {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Basket.Notice = fe.Message
	return nil
}

func (s *Screen) onOrderRender(_ context.Context, state domain.OrderFormState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	form := mapper.ToOrderForm(state)
	s.view.Order = &form
	return nil
}

func (s *Screen) onOrderValidity(_ context.Context, v domain.FormValidity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Order == nil {
		s.view.Order = &mapper.OrderForm{}
	}
	s.view.Order.Valid = v.Valid
	s.view.Order.Errors = v.Errors
	return nil
}

func (s *Screen) onContactsRender(_ context.Context, state domain.ContactsFormState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	form := mapper.ToContactsForm(state)
	s.view.Contacts = &form
	s.view.Failure = ""
	return nil
}

func (s *Screen) onContactsValidity(_ context.Context, v domain.FormValidity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Contacts == nil {
		s.view.Contacts = &mapper.ContactsForm{}
	}
	s.view.Contacts.Valid = v.Valid
	s.view.Contacts.Errors = v.Errors
	s.view.Failure = ""
	return nil
}

func (s *Screen) onSuccess(_ context.Context, success domain.Success) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := mapper.ToSuccessView(success)
	s.view.Success = &view
	s.view.Failure = ""
	return nil
}

func (s *Screen) onFailure(_ context.Context, failure domain.SubmitFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Failure = failure.Message
	return nil
}

func (s *Screen) onStep(_ context.Context, step domain.StepChanged) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Step = step.Step
	s.view.Locked = step.Locked
	if step.Step == domain.StepCatalog {
		s.view.Success = nil
		s.view.Failure = ""
	}
	return nil
}

// renderBasket and renderPreview expect s.mu held.
func (s *Screen) renderBasket() {
	s.view.Basket = mapper.ToBasketView(s.basket, func(id string) (domain.Product, bool) {
		p, ok := s.products[id]
		return p, ok
	})
	s.view.Counter = s.basket.Count()
}

func (s *Screen) renderPreview() {
	if s.preview == nil {
		return
	}
	card := mapper.ToPreview(*s.preview, s.basket.Contains(s.preview.ID))
	s.view.Preview = &card
}
