package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/chipp-go/internal/observability"
)

func TestFromContext_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	ctx := context.Background()
	ctx = observability.WithCorrelationID(ctx, "corr-1")
	ctx = observability.WithSessionID(ctx, "sess-1")
	ctx = observability.WithModel(ctx, "myapp-123")

	observability.FromContext(ctx).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "corr-1", fields["correlation_id"])
	require.Equal(t, "sess-1", fields["session_id"])
	require.Equal(t, "myapp-123", fields["model"])
}

func TestFromContext_EmptyContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	observability.FromContext(context.Background()).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Context)
}

func TestGenerateCorrelationID_Unique(t *testing.T) {
	a := observability.GenerateCorrelationID()
	b := observability.GenerateCorrelationID()

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
