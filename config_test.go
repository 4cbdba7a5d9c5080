package chipp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chipp "github.com/davidbz/chipp-go"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	client, err := chipp.NewClient("", "myapp-123")

	require.Error(t, err)
	require.Nil(t, client)

	var cfgErr *chipp.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "APIKey", cfgErr.Field)
}

func TestNewClient_MissingModel(t *testing.T) {
	client, err := chipp.NewClient("test-api-key", "")

	require.Error(t, err)
	require.Nil(t, client)

	var cfgErr *chipp.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "Model", cfgErr.Field)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := chipp.NewClient("test-api-key", "myapp-123")

	require.NoError(t, err)
	require.NotNil(t, client)

	cfg := client.Config()
	require.Equal(t, chipp.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, 3, cfg.MaxRetries)
	require.Equal(t, 100*time.Millisecond, cfg.InitialRetryDelay)
	require.Equal(t, 10*time.Second, cfg.MaxRetryDelay)
}

func TestNewClient_OptionsOverrideDefaults(t *testing.T) {
	client, err := chipp.NewClient("test-api-key", "myapp-123",
		chipp.WithBaseURL("https://example.com/api"),
		chipp.WithTimeout(5*time.Second),
		chipp.WithMaxRetries(1),
		chipp.WithInitialRetryDelay(50*time.Millisecond),
		chipp.WithMaxRetryDelay(time.Second),
	)

	require.NoError(t, err)

	cfg := client.Config()
	require.Equal(t, "https://example.com/api", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 1, cfg.MaxRetries)
	require.Equal(t, 50*time.Millisecond, cfg.InitialRetryDelay)
	require.Equal(t, time.Second, cfg.MaxRetryDelay)
}

func TestNewClient_ExplicitZeroRetriesKept(t *testing.T) {
	client, err := chipp.NewClient("test-api-key", "myapp-123",
		chipp.WithMaxRetries(0),
	)

	require.NoError(t, err)
	require.Equal(t, 0, client.Config().MaxRetries)
}

func TestConfig_StringRedactsAPIKey(t *testing.T) {
	cfg := chipp.Config{
		APIKey: "sk-very-secret",
		Model:  "myapp-123",
	}

	rendered := cfg.String()

	require.NotContains(t, rendered, "sk-very-secret")
	require.Contains(t, rendered, "[REDACTED]")
	require.Contains(t, rendered, "myapp-123")
}
