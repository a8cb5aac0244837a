// Package worker runs the Temporal worker that places orders.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/web-larek/internal/app/larekapi"
	ordersports "github.com/Apurer/web-larek/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
	platformpostgres "github.com/Apurer/web-larek/internal/platform/postgres"
	platformredis "github.com/Apurer/web-larek/internal/platform/redis"
	platformtemporal "github.com/Apurer/web-larek/internal/platform/temporal"
	orderactivities "github.com/Apurer/web-larek/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/web-larek/internal/platform/temporal/workflows/orders"
)

// ServiceName identifies the worker in logs, traces and metrics.
const ServiceName = "larek-worker"

type registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register adds the order placement workflow and its activity to r.
func Register(r registry, service ordersports.Service) {
	activities := orderactivities.NewActivities(service)
	r.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	r.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
}

// Run polls the order placement task queue until ctx is cancelled. It shares
// the larek-api configuration so both processes see the same storage.
func Run(ctx context.Context, cfg larekapi.Config) error {
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
	if db == nil {
		logger.Warn("worker is using in-memory storage, orders it places are not visible to larek-api")
	}

	services, err := larekapi.NewServices(ctx, cfg, db, redis, instruments)
	if err != nil {
		return err
	}

	settings := cfg.Temporal
	settings.Disabled = false
	temporalClient, err := platformtemporal.Dial(settings, instruments.Tracer("temporal-worker"), logger)
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	Register(w, services.Orders)
	if err := w.Start(); err != nil {
		return fmt.Errorf("start Temporal worker: %w", err)
	}
	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", settings.Namespace))
	<-ctx.Done()
	w.Stop()
	logger.Info("Temporal worker stopped")
	return nil
}
