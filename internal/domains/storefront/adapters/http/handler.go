package storefronthttp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/web-larek/internal/domains/storefront/application"
	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
	apierrors "github.com/Apurer/web-larek/internal/shared/errors"
)

var errNotForSale = errors.New("item is not for sale")

// mapCheckoutError reports checkout outcomes that are not form validation.
func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrSubmissionInFlight):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrOrderNotPlaced):
		detail := strings.TrimPrefix(err.Error(), application.ErrOrderNotPlaced.Error()+": ")
		return apierrors.ErrOrderNotPlaced.WithDetail(detail), true
	case errors.Is(err, application.ErrCatalogUnavailable):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	case errors.Is(err, errNotForSale):
		return apierrors.ErrUnprocessable.WithDetail(errNotForSale.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// FieldInput is the body of a form field edit.
type FieldInput struct {
	Value string `json:"value"`
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger injects a logger.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler turns storefront HTTP requests into intent events and answers with
// the view they produced. Intents are applied one at a time.
type Handler struct {
	mu        sync.Mutex
	bus       *eventbus.Bus
	state     *application.AppState
	checkout  *application.Checkout
	screen    *Screen
	hub       *Hub
	logger    *slog.Logger
	responder *apierrors.Responder
}

// NewHandler wires the storefront transport. hub may be nil.
func NewHandler(bus *eventbus.Bus, state *application.AppState, checkout *application.Checkout, screen *Screen, hub *Hub, opts ...HandlerOption) *Handler {
	h := &Handler{
		bus:       bus,
		state:     state,
		checkout:  checkout,
		screen:    screen,
		hub:       hub,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		responder: apierrors.NewResponder(mapCheckoutError),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register mounts the storefront routes under /api.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/state", h.State)
	api.POST("/catalog/:id/select", h.SelectCard)
	api.POST("/catalog/reload", h.ReloadCatalog)
	api.POST("/basket/:id/toggle", h.ToggleBasket)
	api.DELETE("/basket/:id", h.RemoveFromBasket)
	api.POST("/basket/open", h.OpenBasket)
	api.POST("/order/open", h.OpenOrder)
	api.PATCH("/order/:form/:field", h.ChangeField)
	api.POST("/order/submit", h.SubmitOrder)
	api.POST("/contacts/submit", h.SubmitContacts)
	api.POST("/modal/close", h.CloseModal)
	if h.hub != nil {
		api.GET("/events", h.hub.ServeWS)
	}
}

// Dispatch publishes an intent while holding the intent lock.
func (h *Handler) Dispatch(ctx context.Context, name string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bus.Emit(ctx, name, payload)
}

// Get /api/state
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/catalog/:id/select
func (h *Handler) SelectCard(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	product, ok := h.state.Product(c.Param("id"))
	if !ok {
		h.responder.NotFound(c, "product", c.Param("id"))
		return
	}
	h.bus.Emit(c.Request.Context(), domain.EventCardSelect, product)
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/catalog/reload
func (h *Handler) ReloadCatalog(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkout.LoadCatalog(c.Request.Context()); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/basket/:id/toggle
func (h *Handler) ToggleBasket(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	product, ok := h.state.Product(c.Param("id"))
	if !ok {
		h.responder.NotFound(c, "product", c.Param("id"))
		return
	}
	if product.Priceless() && !h.state.IsInBasket(product.ID) {
		h.responder.Respond(c, h.responder.Problem(errNotForSale).WithExtension("identifier", product.ID))
		return
	}
	h.bus.Emit(c.Request.Context(), domain.EventBasketToggle, product)
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Delete /api/basket/:id
func (h *Handler) RemoveFromBasket(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := c.Param("id")
	product, ok := h.state.Product(id)
	if !ok {
		if !h.state.IsInBasket(id) {
			h.responder.NotFound(c, "basket item", id)
			return
		}
		product = domain.Product{ID: id}
	}
	h.bus.Emit(c.Request.Context(), domain.EventBasketRemove, product)
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/basket/open
func (h *Handler) OpenBasket(c *gin.Context) {
	h.emitAndRender(c, domain.EventBasketOpen)
}

// Post /api/order/open
func (h *Handler) OpenOrder(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bus.Emit(c.Request.Context(), domain.EventOrderOpen, nil)
	if h.checkout.Step() != domain.StepOrder {
		h.respondBlocked(c, domain.ValidateBasket(h.state.Basket()).Join(application.ErrorSeparator))
		return
	}
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Patch /api/order/:form/:field
func (h *Handler) ChangeField(c *gin.Context) {
	form := c.Param("form")
	if form != domain.FormOrder && form != domain.FormContacts {
		h.responder.NotFound(c, "form", form)
		return
	}
	field, err := domain.ParseField(c.Param("field"))
	if err == nil && !field.OnForm(form) {
		err = domain.ErrUnknownField
	}
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{c.Param("field"): err.Error()})
		return
	}
	var input FieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if field == domain.FieldPayment {
		if _, err := domain.ParsePaymentMethod(input.Value); err != nil {
			h.responder.ValidationFailed(c, map[string]string{string(field): err.Error()})
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.bus.Emit(c.Request.Context(), eventbus.FieldChangeName(form, string(field)),
		domain.FieldChange{Field: field, Value: input.Value})
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/order/submit
func (h *Handler) SubmitOrder(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bus.Emit(c.Request.Context(), domain.EventOrderSubmit, nil)
	if h.checkout.Step() != domain.StepContacts {
		h.respondBlocked(c, h.state.FormErrors().Join(application.ErrorSeparator))
		return
	}
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// Post /api/contacts/submit
func (h *Handler) SubmitContacts(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.checkout.Submitting() {
		h.responder.RespondError(c, application.ErrSubmissionInFlight)
		return
	}
	h.bus.Emit(c.Request.Context(), domain.EventContactsSubmit, nil)
	err := h.checkout.LastSubmitError()
	switch {
	case err == nil && h.checkout.Step() == domain.StepSuccess:
		c.JSON(http.StatusOK, h.screen.Snapshot())
	case errors.Is(err, application.ErrCheckoutBlocked):
		detail := h.state.FormErrors().Join(application.ErrorSeparator)
		if detail == "" {
			detail = domain.ValidateBasket(h.state.Basket()).Join(application.ErrorSeparator)
		}
		h.respondBlocked(c, detail)
	case err != nil:
		h.responder.Respond(c, h.responder.Problem(err).WithExtension("view", h.screen.Snapshot()))
	default:
		h.respondBlocked(c, "")
	}
}

// Post /api/modal/close
func (h *Handler) CloseModal(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	event := domain.EventModalClose
	if h.checkout.Step() == domain.StepSuccess {
		event = domain.EventSuccessClose
	}
	h.bus.Emit(c.Request.Context(), event, nil)
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

func (h *Handler) emitAndRender(c *gin.Context, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bus.Emit(c.Request.Context(), name, nil)
	c.JSON(http.StatusOK, h.screen.Snapshot())
}

// respondBlocked expects h.mu held.
func (h *Handler) respondBlocked(c *gin.Context, detail string) {
	if detail == "" {
		detail = application.ErrCheckoutBlocked.Error()
	}
	h.logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "checkout step blocked",
		slog.String("path", c.FullPath()), slog.String("reason", detail))
	h.responder.Respond(c, apierrors.ErrConflict.WithDetail(detail).WithExtension("view", h.screen.Snapshot()))
}
