package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// CorrelationIDKey holds the per-call correlation identifier.
	CorrelationIDKey contextKey = "correlation_id"

	// SessionIDKey holds the conversation continuity token.
	SessionIDKey contextKey = "session_id"

	// ModelKey holds the model name for this request.
	ModelKey contextKey = "model"
)

// WithCorrelationID injects a correlation ID into context.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// WithSessionID injects a session ID into context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// WithModel injects a model name into context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetCorrelationID extracts the correlation ID from context.
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// GetSessionID extracts the session ID from context.
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}

// GetModel extracts the model name from context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// GenerateCorrelationID generates a unique per-call identifier (UUID).
func GenerateCorrelationID() string {
	return uuid.New().String()
}
