package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/domains/storefront/ports"
)

const tracerName = "github.com/Apurer/web-larek/internal/domains/storefront/adapters/observability/catalog_api"

// CatalogAPI decorates the remote catalog/order API with tracing, logging, and metrics.
type CatalogAPI struct {
	inner   ports.CatalogAPI
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics apiMetrics
}

type Option func(*CatalogAPI)

func WithLogger(logger *slog.Logger) Option {
	return func(a *CatalogAPI) {
		a.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(a *CatalogAPI) {
		a.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(a *CatalogAPI) {
		a.metrics = newAPIMetrics(m)
	}
}

// New wraps a CatalogAPI client.
func New(inner ports.CatalogAPI, opts ...Option) ports.CatalogAPI {
	a := &CatalogAPI{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newAPIMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.tracer == nil {
		a.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return a
}

func (a *CatalogAPI) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	ctx, span := a.tracer.Start(ctx, "CatalogAPI.FetchCatalog")
	defer span.End()

	a.logInfo(ctx, "fetching catalog")
	products, err := a.inner.FetchCatalog(ctx)
	if err != nil {
		a.metrics.recordFailure(ctx, "fetch_catalog")
		return nil, a.handleError(ctx, span, err, "failed to fetch catalog")
	}
	span.SetAttributes(attribute.Int("catalog.size", len(products)))
	a.logInfo(ctx, "catalog fetched", slog.Int("catalog.size", len(products)))
	return products, nil
}

func (a *CatalogAPI) SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	ctx, span := a.tracer.Start(ctx, "CatalogAPI.SubmitOrder",
		trace.WithAttributes(attribute.Int("order.items", len(req.Items)), attribute.Int64("order.total", req.Total)))
	defer span.End()

	a.logInfo(ctx, "submitting order", slog.Int("order.items", len(req.Items)), slog.Int64("order.total", req.Total))
	result, err := a.inner.SubmitOrder(ctx, req)
	if err != nil {
		a.metrics.recordFailure(ctx, "submit_order")
		return nil, a.handleError(ctx, span, err, "failed to submit order", slog.Int64("order.total", req.Total))
	}
	if result != nil {
		span.SetAttributes(attribute.String("order.id", result.ID))
		a.metrics.recordSubmitted(ctx, req.Payment)
		a.logInfo(ctx, "order submitted", slog.String("order.id", result.ID), slog.Int64("order.total", result.Total))
	}
	return result, nil
}

func (a *CatalogAPI) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if a.logger == nil {
		return
	}
	a.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (a *CatalogAPI) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if a.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		a.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type apiMetrics struct {
	ordersSubmitted metric.Int64Counter
	failures        metric.Int64Counter
}

func newAPIMetrics(m metric.Meter) apiMetrics {
	if m == nil {
		return apiMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("storefront.api.orders_submitted", metric.WithDescription("Number of orders accepted by the catalog API"))
	failures, _ := m.Int64Counter("storefront.api.failures", metric.WithDescription("Number of failed catalog API calls"))
	return apiMetrics{ordersSubmitted: ordersSubmitted, failures: failures}
}

func (m apiMetrics) recordSubmitted(ctx context.Context, payment domain.PaymentMethod) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment", string(payment))))
	}
}

func (m apiMetrics) recordFailure(ctx context.Context, op string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.CatalogAPI = (*CatalogAPI)(nil)
