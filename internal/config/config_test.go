package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chipp-go/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, "https://app.chipp.ai/api/v1", cfg.Chipp.BaseURL)
		require.Equal(t, 30, cfg.Chipp.Timeout)
		require.Equal(t, 3, cfg.Chipp.MaxRetries)
		require.Equal(t, 100, cfg.Chipp.InitialRetryDelay)
		require.Equal(t, 10000, cfg.Chipp.MaxRetryDelay)
		require.Empty(t, cfg.Chipp.APIKey)
		require.Empty(t, cfg.Chipp.Model)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("CHIPP_API_KEY", "test-key")
		t.Setenv("CHIPP_BASE_URL", "https://chipp.test/api/v1")
		t.Setenv("CHIPP_MODEL", "myapp-123")
		t.Setenv("CHIPP_TIMEOUT", "120")
		t.Setenv("CHIPP_MAX_RETRIES", "5")
		t.Setenv("CHIPP_INITIAL_RETRY_DELAY", "250")
		t.Setenv("CHIPP_MAX_RETRY_DELAY", "5000")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, "test-key", cfg.Chipp.APIKey)
		require.Equal(t, "https://chipp.test/api/v1", cfg.Chipp.BaseURL)
		require.Equal(t, "myapp-123", cfg.Chipp.Model)
		require.Equal(t, 120, cfg.Chipp.Timeout)
		require.Equal(t, 5, cfg.Chipp.MaxRetries)
		require.Equal(t, 250, cfg.Chipp.InitialRetryDelay)
		require.Equal(t, 5000, cfg.Chipp.MaxRetryDelay)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	cfg := &config.Config{}

	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Chipp, deps.ChippConfig)
}
