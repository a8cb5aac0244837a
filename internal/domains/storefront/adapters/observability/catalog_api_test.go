package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
)

type stubAPI struct {
	products []domain.Product
	result   *domain.OrderResult
	err      error
}

func (s stubAPI) FetchCatalog(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s stubAPI) SubmitOrder(context.Context, domain.OrderRequest) (*domain.OrderResult, error) {
	return s.result, s.err
}

func TestCatalogAPI_PassesThrough(t *testing.T) {
	inner := stubAPI{
		products: []domain.Product{{ID: "A", Price: domain.Price(100)}},
		result:   &domain.OrderResult{ID: "o-1", Total: 100},
	}
	api := New(inner)

	products, err := api.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	result, err := api.SubmitOrder(context.Background(), domain.OrderRequest{Items: []string{"A"}, Total: 100})
	require.NoError(t, err)
	require.Equal(t, "o-1", result.ID)
}

func TestCatalogAPI_LogsAndCountsFailures(t *testing.T) {
	var buf bytes.Buffer
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	boom := errors.New("upstream unavailable")
	api := New(stubAPI{err: boom},
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithMeter(provider.Meter("test")),
	)

	_, err := api.SubmitOrder(context.Background(), domain.OrderRequest{Total: 10})
	require.ErrorIs(t, err, boom)
	require.Contains(t, buf.String(), "failed to submit order")
	require.Contains(t, buf.String(), "upstream unavailable")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "storefront.api.failures" {
				found = true
			}
		}
	}
	require.True(t, found)
}
