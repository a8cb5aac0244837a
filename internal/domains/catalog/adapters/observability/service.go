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

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/web-larek/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
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

// New wraps the core catalog service.
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

func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(attribute.String("catalog.category", category)))
	defer span.End()

	result, err := s.inner.List(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products", slog.String("catalog.category", category))
	}
	span.SetAttributes(attribute.Int("catalog.products", len(result)))
	s.metrics.recordListed(ctx, len(result))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	span.SetAttributes(attribute.Bool("product.for_sale", result.ForSale()))
	return result, nil
}

func (s *Service) Seed(ctx context.Context, products []*domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Seed", trace.WithAttributes(attribute.Int("catalog.products", len(products))))
	defer span.End()

	s.logInfo(ctx, "seeding catalog", slog.Int("catalog.products", len(products)))
	if err := s.inner.Seed(ctx, products); err != nil {
		return s.handleError(ctx, span, err, "failed to seed catalog")
	}
	s.logInfo(ctx, "catalog seeded", slog.Int("catalog.products", len(products)))
	return nil
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
	s.metrics.recordFailure(ctx)
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	listed   metric.Int64Counter
	failures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	listed, _ := m.Int64Counter("catalog.service.products_listed", metric.WithDescription("Number of products returned by list calls"))
	failures, _ := m.Int64Counter("catalog.service.failures", metric.WithDescription("Number of failed catalog calls"))
	return serviceMetrics{listed: listed, failures: failures}
}

func (m serviceMetrics) recordListed(ctx context.Context, n int) {
	if m.listed != nil {
		m.listed.Add(ctx, int64(n))
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context) {
	if m.failures != nil {
		m.failures.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
