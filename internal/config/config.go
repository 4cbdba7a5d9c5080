package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

// Config represents the CLI configuration.
type Config struct {
	Chipp ChippConfig
}

// ChippConfig contains the Chipp API client settings.
//
// The client library itself performs no environment lookup; this loader is
// the collaborator that resolves values before handing them over.
type ChippConfig struct {
	APIKey            string `env:"CHIPP_API_KEY"`
	BaseURL           string `env:"CHIPP_BASE_URL"             envDefault:"https://app.chipp.ai/api/v1"`
	Model             string `env:"CHIPP_MODEL"`
	Timeout           int    `env:"CHIPP_TIMEOUT"              envDefault:"30"`
	MaxRetries        int    `env:"CHIPP_MAX_RETRIES"          envDefault:"3"`
	InitialRetryDelay int    `env:"CHIPP_INITIAL_RETRY_DELAY"  envDefault:"100"`
	MaxRetryDelay     int    `env:"CHIPP_MAX_RETRY_DELAY"      envDefault:"10000"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ChippConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Chipp,
	}
}
