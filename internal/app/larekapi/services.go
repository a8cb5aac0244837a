package larekapi

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogcache "github.com/Apurer/web-larek/internal/domains/catalog/adapters/cache"
	catalogmemory "github.com/Apurer/web-larek/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/web-larek/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/web-larek/internal/domains/catalog/adapters/persistence/postgres"
	catalogseed "github.com/Apurer/web-larek/internal/domains/catalog/adapters/seed"
	catalogapp "github.com/Apurer/web-larek/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/web-larek/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/web-larek/internal/domains/catalog/ports"
	orderscatalog "github.com/Apurer/web-larek/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/Apurer/web-larek/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/web-larek/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/web-larek/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/web-larek/internal/domains/orders/application"
	ordersports "github.com/Apurer/web-larek/internal/domains/orders/ports"
	"github.com/Apurer/web-larek/internal/platform/migrations"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
)

// Services holds the decorated catalog and orders services of one process.
type Services struct {
	Catalog catalogports.Service
	Orders  ordersports.Service
	Cache   *catalogcache.Repository
}

// NewServices wires the repositories, seeds the catalog and decorates both
// services. A nil db selects in-memory storage, and a nil redis disables the
// catalog cache.
func NewServices(ctx context.Context, cfg Config, db *gorm.DB, redis *goredis.Client, instruments *platformobservability.Instruments) (*Services, error) {
	logger := instruments.Logger

	var (
		productRepo catalogports.Repository
		orderRepo   ordersports.Repository
		idemStore   ordersports.IdempotencyStore
	)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		productRepo = catalogpostgres.NewRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
		idemStore = orderspostgres.NewIdempotencyStore(db)
		logger.Info("catalog and orders configured with postgres")
	} else {
		productRepo = catalogmemory.NewRepository()
		orderRepo = ordersmemory.NewRepository()
		idemStore = ordersmemory.NewIdempotencyStore()
	}

	var cacheClient goredis.UniversalClient
	if redis != nil {
		cacheClient = redis
	}
	cached := catalogcache.New(productRepo, cacheClient,
		catalogcache.WithTTL(cfg.CacheTTL),
		catalogcache.WithLogger(logger),
	)

	catalogService := catalogobs.New(
		catalogapp.NewService(cached),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	products, err := loadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	if err := catalogService.Seed(ctx, products); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, orderscatalog.NewLookup(catalogService), ordersapp.WithIdempotencyStore(idemStore)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	logger.Info("catalog seeded", slog.Int("products", len(products)), slog.Bool("cache", cacheClient != nil))
	return &Services{Catalog: catalogService, Orders: orderService, Cache: cached}, nil
}

func loadSeed(path string) ([]*catalogdomain.Product, error) {
	if path == "" {
		return catalogseed.Default()
	}
	return catalogseed.LoadFile(path)
}
