package chipp

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing required configuration field. It is
// returned by NewClient and never retried.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chipp: config field %s is required", e.Field)
}

// TransportError wraps a network-level failure: connection refused, DNS
// failure, timeout. Retryable in the non-streaming path.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chipp: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx HTTP response from the API. Only 5xx and 429 are
// retryable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chipp: API returned status %d: %s", e.StatusCode, e.Message)
}

// InvalidResponseError reports a malformed or structurally incomplete
// success response. Never retried: re-sending the request won't fix a
// parsing mismatch.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("chipp: invalid API response: %s", e.Reason)
}

// StreamError is a malformed record encountered mid-stream. It is the final
// item of the stream; fragments already yielded remain valid.
type StreamError struct {
	Reason string
	Err    error
}

func (e *StreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chipp: stream error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("chipp: stream error: %s", e.Reason)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError wraps the last underlying error once all attempts
// are spent. Attempts is the total number of HTTP requests issued
// (the initial attempt plus MaxRetries retries).
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("chipp: retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
