package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/storefront/application"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STOREFRONT_PORT", "LAREK_API_URL", "LAREK_CDN_URL", "LAREK_HTTP_TIMEOUT",
		"STOREFRONT_RETAIN_CONTACTS", "CATALOG_REFRESH_INTERVAL", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "http://localhost:8080/api/weblarek", cfg.LarekAPIURL)
	require.Equal(t, application.RetainContacts, cfg.Retention)
	require.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfig_ResetDraft(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_RETAIN_CONTACTS", "false")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "1m")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, application.ResetDraft, cfg.Retention)
	require.Equal(t, time.Minute, cfg.RefreshInterval)
}

func TestLoadConfig_RejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAREK_HTTP_TIMEOUT", "never")
	_, err := LoadConfig()
	require.Error(t, err)
}
