package chipp

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// DefaultBaseURL is the canonical Chipp API base.
const DefaultBaseURL = "https://app.chipp.ai/api/v1"

// Default values applied by NewClient unless overridden by an Option.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultInitialRetryDelay = 100 * time.Millisecond
	DefaultMaxRetryDelay     = 10 * time.Second
)

// Config is the effective client configuration. It is assembled by
// NewClient from the required credentials plus options, copied into the
// Client, and never mutated afterwards.
type Config struct {
	// APIKey is the Chipp API key used as a bearer credential.
	APIKey string

	// BaseURL is the API base (default DefaultBaseURL).
	BaseURL string

	// Model is the Chipp appNameId, e.g. "myapp-123".
	Model string

	// Timeout bounds each HTTP attempt, including streaming body reads.
	Timeout time.Duration

	// MaxRetries is the number of retries after the initial attempt.
	// Zero means a single attempt with no retry loop.
	MaxRetries int

	// InitialRetryDelay is the backoff before the first retry.
	InitialRetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff.
	MaxRetryDelay time.Duration
}

// Option adjusts an optional configuration field.
type Option func(*Config)

// WithBaseURL overrides the API base.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) { c.BaseURL = baseURL }
}

// WithTimeout overrides the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithMaxRetries overrides the retry budget. Zero disables retries
// entirely: exactly one attempt goes out.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		c.MaxRetries = maxRetries
	}
}

// WithInitialRetryDelay overrides the backoff before the first retry.
func WithInitialRetryDelay(delay time.Duration) Option {
	return func(c *Config) { c.InitialRetryDelay = delay }
}

// WithMaxRetryDelay overrides the backoff cap.
func WithMaxRetryDelay(delay time.Duration) Option {
	return func(c *Config) { c.MaxRetryDelay = delay }
}

func newConfig(apiKey, model string, opts []Option) (Config, error) {
	cfg := Config{
		APIKey:            apiKey,
		BaseURL:           DefaultBaseURL,
		Model:             model,
		Timeout:           DefaultTimeout,
		MaxRetries:        DefaultMaxRetries,
		InitialRetryDelay: DefaultInitialRetryDelay,
		MaxRetryDelay:     DefaultMaxRetryDelay,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.APIKey == "" {
		return Config{}, &ConfigError{Field: "APIKey"}
	}
	if cfg.Model == "" {
		return Config{}, &ConfigError{Field: "Model"}
	}

	return cfg, nil
}

// String renders the configuration with the API key redacted.
func (c Config) String() string {
	return fmt.Sprintf(
		"chipp.Config{APIKey: [REDACTED], BaseURL: %q, Model: %q, Timeout: %s, MaxRetries: %d, InitialRetryDelay: %s, MaxRetryDelay: %s}",
		c.BaseURL, c.Model, c.Timeout, c.MaxRetries, c.InitialRetryDelay, c.MaxRetryDelay,
	)
}

// MarshalLogObject implements zapcore.ObjectMarshaler so the config can be
// logged without exposing the API key.
func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("api_key", "[REDACTED]")
	enc.AddString("base_url", c.BaseURL)
	enc.AddString("model", c.Model)
	enc.AddDuration("timeout", c.Timeout)
	enc.AddInt("max_retries", c.MaxRetries)
	enc.AddDuration("initial_retry_delay", c.InitialRetryDelay)
	enc.AddDuration("max_retry_delay", c.MaxRetryDelay)
	return nil
}
