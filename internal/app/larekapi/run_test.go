package larekapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	ordersworkflows "github.com/Apurer/web-larek/internal/domains/orders/adapters/workflows"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
)

func testInstruments() *platformobservability.Instruments {
	return &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newTestHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	services, err := NewServices(context.Background(), cfg, nil, nil, testInstruments())
	require.NoError(t, err)
	return NewHandler(cfg, services, ordersworkflows.NewInlineOrderWorkflows(services.Orders))
}

func testConfig() Config {
	return Config{BasePath: "/api/weblarek", CORSOrigins: []string{"http://shop.test"}}
}

func TestHandler_ServesSeededCatalog(t *testing.T) {
	handler := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weblarek/product", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int `json:"total"`
		Items []struct {
			ID    string `json:"id"`
			Price *int64 `json:"price"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 7, body.Total)
	require.Len(t, body.Items, 7)
}

func TestHandler_PlacesOrderForSeededProduct(t *testing.T) {
	handler := newTestHandler(t, testConfig())

	payload, err := json.Marshal(map[string]any{
		"payment": "card",
		"email":   "buyer@example.com",
		"phone":   "+70000000000",
		"address": "Main st 1",
		"total":   750,
		"items":   []string{"854cef69-976d-4c2a-a18c-2aa45046c390"},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/weblarek/order", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var placed struct {
		ID    string `json:"id"`
		Total int64  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	require.NotEmpty(t, placed.ID)
	require.Equal(t, int64(750), placed.Total)
}

func TestHandler_CORSPreflight(t *testing.T) {
	handler := newTestHandler(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/weblarek/order", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "http://shop.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewServices_CustomSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - id: only\n    title: Only one\n    price: 10\n"), 0o600))
	cfg := testConfig()
	cfg.SeedFile = path

	services, err := NewServices(context.Background(), cfg, nil, nil, testInstruments())
	require.NoError(t, err)
	products, err := services.Catalog.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "only", products[0].ID)
}

func TestNewServices_MissingSeedFile(t *testing.T) {
	cfg := testConfig()
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewServices(context.Background(), cfg, nil, nil, testInstruments())
	require.Error(t, err)
}
