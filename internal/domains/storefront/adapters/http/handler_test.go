package storefronthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/storefront/application"
	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

type fakeAPI struct {
	products  []domain.Product
	result    *domain.OrderResult
	submitErr error
	submitted []domain.OrderRequest
}

func (f *fakeAPI) FetchCatalog(context.Context) ([]domain.Product, error) {
	return domain.CloneProducts(f.products), nil
}

func (f *fakeAPI) SubmitOrder(_ context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.result, nil
}

type storefront struct {
	router *gin.Engine
	api    *fakeAPI
	hub    *Hub
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	gin.SetMode(gin.TestMode)
	bus := eventbus.New()
	api := &fakeAPI{
		products: []domain.Product{
			{ID: "A", Title: "Fuel for the mind", Price: domain.Price(100), Category: "soft-skill", Image: "/a.svg"},
			{ID: "B", Title: "Mystery button", Category: "button"},
		},
		result: &domain.OrderResult{ID: "order-1", Total: 100},
	}
	state := application.NewAppState(bus)
	checkout := application.NewCheckout(bus, state, api)
	checkout.Start()
	screen := NewScreen(bus)
	hub := NewHub(bus, screen)
	t.Cleanup(func() {
		hub.Close()
		screen.Close()
		checkout.Stop()
	})
	require.NoError(t, checkout.LoadCatalog(context.Background()))

	router := gin.New()
	NewHandler(bus, state, checkout, screen, hub).Register(router)
	return &storefront{router: router, api: api, hub: hub}
}

func (s *storefront) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, View) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	var view View
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	}
	return rec, view
}

func problemOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestState_RendersCatalogCards(t *testing.T) {
	s := newStorefront(t)

	rec, view := s.do(t, http.MethodGet, "/api/state", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, view.Catalog, 2)
	require.Equal(t, "100 synapses", view.Catalog[0].PriceLabel)
	require.Equal(t, "soft", view.Catalog[0].CategoryModifier)
	require.Equal(t, "Priceless", view.Catalog[1].PriceLabel)
	require.Equal(t, domain.StepCatalog, view.Step)
	require.False(t, view.Locked)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	s := newStorefront(t)

	rec, view := s.do(t, http.MethodPost, "/api/catalog/A/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.StepPreview, view.Step)
	require.True(t, view.Locked)
	require.Equal(t, "Add to basket", view.Preview.Button)

	_, view = s.do(t, http.MethodPost, "/api/basket/A/toggle", nil)
	require.Equal(t, 1, view.Counter)
	require.Equal(t, domain.StepCatalog, view.Step)
	require.Equal(t, "Remove from basket", view.Preview.Button)

	_, view = s.do(t, http.MethodPost, "/api/basket/open", nil)
	require.Equal(t, domain.StepBasket, view.Step)
	require.True(t, view.Basket.CheckoutEnabled)
	require.Equal(t, "100 synapses", view.Basket.TotalLabel)

	rec, view = s.do(t, http.MethodPost, "/api/order/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.StepOrder, view.Step)
	require.False(t, view.Order.Valid)

	_, view = s.do(t, http.MethodPatch, "/api/order/order/address", FieldInput{Value: "Elm St"})
	require.Equal(t, "Choose a payment method", view.Order.Errors)
	_, view = s.do(t, http.MethodPatch, "/api/order/order/payment", FieldInput{Value: "card"})
	require.True(t, view.Order.Valid)

	rec, view = s.do(t, http.MethodPost, "/api/order/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.StepContacts, view.Step)

	s.do(t, http.MethodPatch, "/api/order/contacts/email", FieldInput{Value: "a@b.c"})
	_, view = s.do(t, http.MethodPatch, "/api/order/contacts/phone", FieldInput{Value: "123"})
	require.True(t, view.Contacts.Valid)

	rec, view = s.do(t, http.MethodPost, "/api/contacts/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.StepSuccess, view.Step)
	require.Equal(t, "Charged 100 synapses", view.Success.Description)
	require.Equal(t, 0, view.Counter)
	require.Len(t, s.api.submitted, 1)

	_, view = s.do(t, http.MethodPost, "/api/modal/close", nil)
	require.Equal(t, domain.StepCatalog, view.Step)
	require.Nil(t, view.Success)
}

func TestSelectCard_UnknownProduct(t *testing.T) {
	s := newStorefront(t)

	rec, _ := s.do(t, http.MethodPost, "/api/catalog/ghost/select", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, problemOf(t, rec)["error"], "ghost")
}

func TestToggle_RejectsPricelessProduct(t *testing.T) {
	s := newStorefront(t)

	rec, _ := s.do(t, http.MethodPost, "/api/basket/B/toggle", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "item is not for sale", problemOf(t, rec)["error"])
}

func TestOpenOrder_EmptyBasketConflict(t *testing.T) {
	s := newStorefront(t)

	rec, _ := s.do(t, http.MethodPost, "/api/order/open", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, domain.MsgBasketEmpty, problemOf(t, rec)["error"])
}

func TestChangeField_RejectsUnknownFieldAndPayment(t *testing.T) {
	s := newStorefront(t)

	rec, _ := s.do(t, http.MethodPatch, "/api/order/order/items", FieldInput{Value: "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPatch, "/api/order/order/payment", FieldInput{Value: "barter"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPatch, "/api/order/billing/email", FieldInput{Value: "a@b.c"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeField_RejectsFieldFromOtherForm(t *testing.T) {
	s := newStorefront(t)

	rec, _ := s.do(t, http.MethodPatch, "/api/order/contacts/address", FieldInput{Value: "Elm St"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do(t, http.MethodPatch, "/api/order/order/email", FieldInput{Value: "a@b.c"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	_, view := s.do(t, http.MethodGet, "/api/state", nil)
	require.Nil(t, view.Order)
	require.Nil(t, view.Contacts)
}

func TestSubmitContacts_FailureKeepsBasket(t *testing.T) {
	s := newStorefront(t)
	s.api.submitErr = errors.New("order total does not match items")
	s.do(t, http.MethodPost, "/api/basket/A/toggle", nil)
	s.do(t, http.MethodPatch, "/api/order/order/address", FieldInput{Value: "Elm St"})
	s.do(t, http.MethodPatch, "/api/order/order/payment", FieldInput{Value: "cash"})
	s.do(t, http.MethodPatch, "/api/order/contacts/email", FieldInput{Value: "a@b.c"})
	s.do(t, http.MethodPatch, "/api/order/contacts/phone", FieldInput{Value: "123"})

	rec, _ := s.do(t, http.MethodPost, "/api/contacts/submit", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "order total does not match items", problemOf(t, rec)["error"])
	_, view := s.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, 1, view.Counter)
}

func TestSubmitContacts_ValidationAfterFailedSubmitIsConflict(t *testing.T) {
	s := newStorefront(t)
	s.api.submitErr = errors.New("upstream down")
	s.do(t, http.MethodPost, "/api/basket/A/toggle", nil)
	s.do(t, http.MethodPatch, "/api/order/order/address", FieldInput{Value: "Elm St"})
	s.do(t, http.MethodPatch, "/api/order/order/payment", FieldInput{Value: "cash"})
	s.do(t, http.MethodPatch, "/api/order/contacts/email", FieldInput{Value: "a@b.c"})
	s.do(t, http.MethodPatch, "/api/order/contacts/phone", FieldInput{Value: "123"})
	rec, _ := s.do(t, http.MethodPost, "/api/contacts/submit", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	s.do(t, http.MethodPatch, "/api/order/contacts/email", FieldInput{Value: ""})
	rec, _ = s.do(t, http.MethodPost, "/api/contacts/submit", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, domain.MsgEmailRequired, problemOf(t, rec)["error"])
	require.Len(t, s.api.submitted, 1)
}

func TestSubmitContacts_RetryAfterFailureSucceeds(t *testing.T) {
	s := newStorefront(t)
	s.api.submitErr = errors.New("upstream down")
	s.do(t, http.MethodPost, "/api/basket/A/toggle", nil)
	s.do(t, http.MethodPatch, "/api/order/order/address", FieldInput{Value: "Elm St"})
	s.do(t, http.MethodPatch, "/api/order/order/payment", FieldInput{Value: "cash"})
	s.do(t, http.MethodPatch, "/api/order/contacts/email", FieldInput{Value: "a@b.c"})
	s.do(t, http.MethodPatch, "/api/order/contacts/phone", FieldInput{Value: "123"})
	rec, _ := s.do(t, http.MethodPost, "/api/contacts/submit", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	s.api.submitErr = nil
	rec, view := s.do(t, http.MethodPost, "/api/contacts/submit", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.StepSuccess, view.Step)
	require.Empty(t, view.Failure)
	require.Len(t, s.api.submitted, 2)
}

func TestSubmitContacts_InvalidContactsConflict(t *testing.T) {
	s := newStorefront(t)
	s.do(t, http.MethodPost, "/api/basket/A/toggle", nil)

	rec, _ := s.do(t, http.MethodPost, "/api/contacts/submit", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Enter your email; Enter your phone number", problemOf(t, rec)["error"])
	require.Empty(t, s.api.submitted)
}

func TestEventsStreamOverWebsocket(t *testing.T) {
	s := newStorefront(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, EventSnapshot, first.Event)
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/api/basket/A/toggle", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	seen := map[string]Message{}
	for len(seen) < 2 {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		seen[msg.Event] = msg
	}
	require.Contains(t, seen, domain.EventBasketChanged)
	require.Equal(t, 1, seen[domain.EventBasketChanged].View.Counter)
}
