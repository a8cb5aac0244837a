package larekapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	catalogcache "github.com/Apurer/web-larek/internal/domains/catalog/adapters/cache"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LAREK_BASE_PATH", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD",
		"CATALOG_SEED_FILE", "CORS_ALLOWED_ORIGINS", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
		"TEMPORAL_DISABLED", "CATALOG_CACHE_TTL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "/api/weblarek", cfg.BasePath)
	require.Empty(t, cfg.PostgresDSN)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, catalogcache.DefaultTTL, cfg.CacheTTL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, client.DefaultHostPort, cfg.Temporal.Address)
	require.False(t, cfg.Temporal.Disabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "cache:6379", cfg.RedisAddr)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.True(t, cfg.Temporal.Disabled)
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_CACHE_TTL", "0s")
	_, err := LoadConfig()
	require.Error(t, err)
}
