package larekapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	larekserver "github.com/Apurer/web-larek/go"
	ordersworkflows "github.com/Apurer/web-larek/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/web-larek/internal/domains/orders/ports"
	"github.com/Apurer/web-larek/internal/platform/config"
	"github.com/Apurer/web-larek/internal/platform/httpserver"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
	platformpostgres "github.com/Apurer/web-larek/internal/platform/postgres"
	platformredis "github.com/Apurer/web-larek/internal/platform/redis"
	platformtemporal "github.com/Apurer/web-larek/internal/platform/temporal"
)

// ServiceName identifies the API in logs, traces and metrics.
const ServiceName = "larek-api"

// Run boots the larek HTTP API with observability, repositories, and workflows
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName, platformobservability.SettingsFromEnv())
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	redis, closeRedis := platformredis.ConnectOptional(ctx, cfg.RedisAddr, cfg.RedisPassword, logger)
	defer closeRedis()

	services, err := NewServices(ctx, cfg, db, redis, instruments)
	if err != nil {
		return err
	}
	defer func() {
		stats := services.Cache.Stats()
		logger.Info("catalog cache stats",
			slog.Uint64("hits", stats.Hits),
			slog.Uint64("misses", stats.Misses),
			slog.Uint64("errors", stats.Errors),
		)
	}()

	var workflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(services.Orders)
	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments.Tracer("temporal-client"), logger)
	switch {
	case errors.Is(err, platformtemporal.ErrDisabled):
		logger.Info("Temporal disabled, placing orders inline")
	case err != nil:
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	default:
		defer temporalClient.Close()
		workflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	handler := NewHandler(cfg, services, workflows)
	addr := config.Addr(cfg.Port)
	logger.Info("larek API listening", slog.String("addr", addr), slog.String("basePath", cfg.BasePath))
	if err := httpserver.Serve(ctx, addr, handler,
		httpserver.WithLogger(logger),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
	); err != nil {
		logger.Error("larek API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewHandler builds the traced gin router behind the CORS policy.
func NewHandler(cfg Config, services *Services, workflows ordersports.WorkflowOrchestrator) http.Handler {
	handlers := larekserver.ApiHandleFunctions{
		ProductAPI: larekserver.NewProductAPI(services.Catalog),
		OrderAPI:   larekserver.NewOrderAPI(services.Orders, workflows),
	}
	router := larekserver.NewRouter(cfg.BasePath, handlers, otelgin.Middleware(ServiceName))
	return newCORS(cfg.CORSOrigins).Handler(router)
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", larekserver.IdempotencyKeyHeader},
	})
}
