package chipp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/davidbz/chipp-go/internal/observability"
)

// Client issues chat exchanges against the Chipp API.
//
// A Client owns one connection-pooled *http.Client shared by every call;
// it is safe for concurrent use provided each conversation uses its own
// Session.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient builds a client for one Chipp application. APIKey and model
// are required; everything else defaults per the package constants and can
// be overridden with options.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	config, err := newConfig(apiKey, model, opts)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Config returns a copy of the client's effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Request/response bodies for the chat completions endpoint.
type chatCompletionRequest struct {
	Model         string    `json:"model"`
	Messages      []Message `json:"messages"`
	Stream        bool      `json:"stream"`
	ChatSessionID string    `json:"chatSessionId,omitempty"`
}

type chatCompletionResponse struct {
	ChatSessionID string `json:"chatSessionId"`
	Choices       []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// Chat performs one non-streaming exchange, retrying transient failures per
// the configured policy. On success the session's continuity token is
// replaced with the one from the response; on any failure the session is
// left untouched.
//
// MaxRetries counts retries after the initial attempt, so up to
// MaxRetries+1 requests go out. Each attempt gets a fresh correlation ID
// and a fresh timeout window.
func (c *Client) Chat(ctx context.Context, session *Session, messages []Message) (*ChatResult, error) {
	logger := observability.FromContext(ctx).With(zap.String("model", c.config.Model))

	maxAttempts := c.config.MaxRetries + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt-1, c.config.InitialRetryDelay, c.config.MaxRetryDelay)
			logger.Warn("retrying chat request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Bool("timeout", isTimeout(lastErr)),
				zap.Error(lastErr),
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, &TransportError{Err: err}
			}
		}

		// A retried attempt never reuses the previous correlation ID.
		correlationID := observability.GenerateCorrelationID()

		result, err := c.chatAttempt(ctx, session, messages, correlationID)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			logger.Debug("chat request failed with non-retryable error", zap.Error(err))
			return nil, err
		}
	}

	logger.Warn("chat retries exhausted",
		zap.Int("attempts", maxAttempts),
		zap.Error(lastErr),
	)

	return nil, &RetriesExhaustedError{Attempts: maxAttempts, Err: lastErr}
}

// chatAttempt issues a single HTTP request. The session is only mutated
// after the response parsed cleanly, so an abandoned or failed attempt
// leaves no partial state behind.
func (c *Client) chatAttempt(ctx context.Context, session *Session, messages []Message, correlationID string) (*ChatResult, error) {
	body := chatCompletionRequest{
		Model:         c.config.Model,
		Messages:      messages,
		Stream:        false,
		ChatSessionID: session.ID(),
	}

	resp, err := c.send(ctx, body, correlationID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed chatCompletionResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("failed to decode body: %v", decodeErr)}
	}

	if parsed.ChatSessionID == "" {
		return nil, &InvalidResponseError{Reason: "missing chatSessionId"}
	}
	if len(parsed.Choices) == 0 {
		return nil, &InvalidResponseError{Reason: "no choices in response"}
	}

	// The server may rotate the token between exchanges.
	session.chatSessionID = parsed.ChatSessionID

	return &ChatResult{
		Content:       parsed.Choices[0].Message.Content,
		ChatSessionID: parsed.ChatSessionID,
		Usage:         parsed.Usage,
	}, nil
}

// send serializes body, issues the POST and maps transport and status
// failures. A 2xx response is returned with its body still open.
func (c *Client) send(ctx context.Context, body chatCompletionRequest, correlationID string) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.config.BaseURL+"/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("X-Correlation-ID", correlationID)
	if body.ChatSessionID != "" {
		httpReq.Header.Set("X-Chat-Session-ID", body.ChatSessionID)
	}
	if body.Stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	return resp, nil
}

// Ping measures the round-trip latency of a lightweight HEAD request to
// the completions path. Any response counts as reachable; the status code
// is not inspected.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodHead,
		c.config.BaseURL+"/chat/completions",
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, &TransportError{Err: err}
	}
	_ = resp.Body.Close()

	return time.Since(start), nil
}
