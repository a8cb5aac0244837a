package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/web-larek/internal/clients/http/larek"
	storefronthttp "github.com/Apurer/web-larek/internal/domains/storefront/adapters/http"
	storefrontobs "github.com/Apurer/web-larek/internal/domains/storefront/adapters/observability"
	"github.com/Apurer/web-larek/internal/domains/storefront/application"
	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/domains/storefront/ports"
	"github.com/Apurer/web-larek/internal/platform/config"
	"github.com/Apurer/web-larek/internal/platform/httpserver"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

// ServiceName identifies the storefront in logs, traces and metrics.
const ServiceName = "storefront"

// App is one storefront session: the event bus, the checkout presenter and
// the views that render it.
type App struct {
	bus      *eventbus.Bus
	checkout *application.Checkout
	screen   *storefronthttp.Screen
	hub      *storefronthttp.Hub
	handler  *storefronthttp.Handler
	router   http.Handler
	logger   *slog.Logger
}

// New wires a storefront around api. The checkout is started but the catalog
// is not loaded yet.
func New(cfg Config, api ports.CatalogAPI, logger *slog.Logger) *App {
	bus := eventbus.New(eventbus.WithLogger(logger))
	state := application.NewAppState(bus,
		application.WithDraftRetention(cfg.Retention),
		application.WithStateLogger(logger),
	)
	checkout := application.NewCheckout(bus, state, api, application.WithCheckoutLogger(logger))
	checkout.Start()

	screen := storefronthttp.NewScreen(bus)
	hub := storefronthttp.NewHub(bus, screen,
		storefronthttp.WithHubLogger(logger),
		storefronthttp.WithCheckOrigin(originAllowed(cfg.CORSOrigins)),
	)
	handler := storefronthttp.NewHandler(bus, state, checkout, screen, hub, storefronthttp.WithHandlerLogger(logger))

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	handler.Register(router)

	return &App{
		bus:      bus,
		checkout: checkout,
		screen:   screen,
		hub:      hub,
		handler:  handler,
		router:   corsPolicy(cfg.CORSOrigins).Handler(router),
		logger:   logger,
	}
}

// Handler returns the HTTP surface of the storefront.
func (a *App) Handler() http.Handler {
	return a.router
}

// LoadCatalog fetches the first catalog.
func (a *App) LoadCatalog(ctx context.Context) error {
	return a.checkout.LoadCatalog(ctx)
}

// Refresh reloads the catalog every interval until ctx is done. The reload
// goes through the intent lock like any other user action.
func (a *App) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.logger.LogAttrs(ctx, slog.LevelDebug, "refreshing catalog")
			a.handler.Dispatch(ctx, domain.EventCatalogReload, nil)
		}
	}
}

// Close disconnects the live view clients and unsubscribes every collaborator.
func (a *App) Close() {
	a.hub.Close()
	a.screen.Close()
	a.checkout.Stop()
}

// Run boots the storefront against the remote larek API and serves until ctx
// is cancelled.
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

	client, err := larek.NewClient(cfg.LarekAPIURL, cfg.LarekCDNURL, larek.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	if err != nil {
		return fmt.Errorf("configure larek client: %w", err)
	}
	api := storefrontobs.New(client,
		storefrontobs.WithLogger(logger),
		storefrontobs.WithTracer(instruments.Tracer("internal.storefront.catalog_api")),
		storefrontobs.WithMeter(instruments.Meter("internal.storefront.catalog_api")),
	)

	app := New(cfg, api, logger)
	if err := app.LoadCatalog(ctx); err != nil {
		logger.Warn("initial catalog load failed, waiting for refresh", slog.String("error", err.Error()))
	}
	go app.Refresh(ctx, cfg.RefreshInterval)

	addr := config.Addr(cfg.Port)
	logger.Info("storefront listening", slog.String("addr", addr), slog.String("larekAPI", cfg.LarekAPIURL))
	if err := httpserver.Serve(ctx, addr, app.Handler(),
		httpserver.WithLogger(logger),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
		httpserver.OnShutdown(app.Close),
	); err != nil {
		logger.Error("storefront server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func corsPolicy(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
}

func originAllowed(origins []string) func(*http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
