package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/web-larek/internal/domains/orders/application"
	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
	"github.com/Apurer/web-larek/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/web-larek/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "OrderService.PlaceOrder",
		attribute.String("order.payment", input.Payment),
		attribute.Int("order.items", len(input.Items)),
		attribute.Int64("order.total", input.Total),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int("order.items", len(input.Items)), slog.Int64("order.total", input.Total))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, rejectionReason(err))
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("order.total", input.Total))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed", slog.String("order.id", result.ID), slog.Int64("order.total", result.Total))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "OrderService.GetOrder", attribute.String("order.id", id))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		level := slog.LevelError
		if errors.Is(err, application.ErrInvalidInput) || errors.Is(err, ports.ErrNotFound) {
			level = slog.LevelWarn
		}
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, application.ErrItemNotForSale):
		return "not_for_sale"
	case errors.Is(err, application.ErrTotalMismatch):
		return "total_mismatch"
	case errors.Is(err, ports.ErrUnknownItem):
		return "unknown_item"
	case errors.Is(err, ports.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	revenue        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of rejected order submissions"))
	revenue, _ := m.Int64Counter("orders.service.revenue", metric.WithDescription("Synapses charged for placed orders"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersRejected: ordersRejected, revenue: revenue}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment", string(order.Payment))))
	}
	if m.revenue != nil {
		m.revenue.Add(ctx, order.Total)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ ports.Service = (*Service)(nil)
