package larekapi

import (
	"time"

	"go.temporal.io/sdk/client"

	catalogcache "github.com/Apurer/web-larek/internal/domains/catalog/adapters/cache"
	"github.com/Apurer/web-larek/internal/platform/config"
	platformtemporal "github.com/Apurer/web-larek/internal/platform/temporal"
)

// Config carries environment-driven settings for the larek-api process.
type Config struct {
	Port            string
	BasePath        string
	PostgresDSN     string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration
	SeedFile        string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	Temporal        platformtemporal.Settings
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:          config.String("PORT", "8080"),
		BasePath:      config.String("LAREK_BASE_PATH", "/api/weblarek"),
		PostgresDSN:   config.String("POSTGRES_DSN", ""),
		RedisAddr:     config.String("REDIS_ADDR", ""),
		RedisPassword: config.String("REDIS_PASSWORD", ""),
		SeedFile:      config.String("CATALOG_SEED_FILE", ""),
		CORSOrigins:   config.List("CORS_ALLOWED_ORIGINS", []string{"*"}),
		Temporal: platformtemporal.Settings{
			Address:   config.String("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: config.String("TEMPORAL_NAMESPACE", client.DefaultNamespace),
			Disabled:  config.Bool("TEMPORAL_DISABLED"),
		},
	}
	var err error
	if cfg.CacheTTL, err = config.Duration("CATALOG_CACHE_TTL", catalogcache.DefaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = config.Duration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
