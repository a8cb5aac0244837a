package storefront

import (
	"time"

	"github.com/Apurer/web-larek/internal/domains/storefront/application"
	"github.com/Apurer/web-larek/internal/platform/config"
)

// Config carries environment-driven settings for the storefront process.
type Config struct {
	Port            string
	LarekAPIURL     string
	LarekCDNURL     string
	HTTPTimeout     time.Duration
	Retention       application.DraftRetention
	RefreshInterval time.Duration
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        config.String("STOREFRONT_PORT", "8081"),
		LarekAPIURL: config.String("LAREK_API_URL", "http://localhost:8080/api/weblarek"),
		LarekCDNURL: config.String("LAREK_CDN_URL", "http://localhost:8080/content/weblarek"),
		Retention:   application.RetainContacts,
		CORSOrigins: config.List("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
	if !config.IsTruthy(config.String("STOREFRONT_RETAIN_CONTACTS", "true")) {
		cfg.Retention = application.ResetDraft
	}
	var err error
	if cfg.HTTPTimeout, err = config.Duration("LAREK_HTTP_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval, err = config.Duration("CATALOG_REFRESH_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = config.Duration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
