package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/saadjs/healthy-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the test; envconfig treats set-but-empty as a value.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t,
		"HEALTHY_DB_PATH", "HEALTHY_OFF_BASE_URL", "HEALTHY_LOOKUP_TIMEOUT", "HEALTHY_LOOKUP_CACHE_TTL", "HEALTHY_FOOD_TABLE", "HEALTHY_DEBUG",
		"DB_PATH", "OFF_BASE_URL", "LOOKUP_TIMEOUT", "LOOKUP_CACHE_TTL", "FOOD_TABLE", "DEBUG",
	)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://world.openfoodfacts.org", cfg.OFFBaseURL)
	assert.Equal(t, 8*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 168*time.Hour, cfg.LookupCacheTTL)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	unsetenv(t, "HEALTHY_LOOKUP_CACHE_TTL", "LOOKUP_CACHE_TTL")
	t.Setenv("HEALTHY_DB_PATH", "/tmp/h.db")
	t.Setenv("HEALTHY_OFF_BASE_URL", "http://localhost:9999/")
	t.Setenv("HEALTHY_LOOKUP_TIMEOUT", "3s")
	t.Setenv("HEALTHY_DEBUG", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:9999", cfg.OFFBaseURL)
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	unsetenv(t, "HEALTHY_OFF_BASE_URL", "OFF_BASE_URL")
	t.Setenv("HEALTHY_LOOKUP_TIMEOUT", "0s")
	_, err := config.Load()
	assert.Error(t, err)
}
