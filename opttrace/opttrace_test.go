package opttrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestIsTraceContextVerbose(t *testing.T) {
	t.Run("returns false if no span context", func(t *testing.T) {
		ctx := context.Background()
		assert.False(t, IsTraceContextVerbose(ctx))
	})

	t.Run("returns false if trace state does not contain key", func(t *testing.T) {
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    [16]byte{1, 2, 3},
			SpanID:     [8]byte{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)
		assert.False(t, IsTraceContextVerbose(ctx))
	})

	t.Run("returns true if trace state contains verbose_recurrence_trace=true", func(t *testing.T) {
		ts, err := trace.ParseTraceState("verbose_recurrence_trace=true")
		require.NoError(t, err)

		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    [16]byte{1, 2, 3},
			SpanID:     [8]byte{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
			TraceState: ts,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)
		assert.True(t, IsTraceContextVerbose(ctx))
	})

	t.Run("returns false if trace state contains verbose_recurrence_trace=false", func(t *testing.T) {
		ts, err := trace.ParseTraceState("verbose_recurrence_trace=false")
		require.NoError(t, err)

		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    [16]byte{1, 2, 3},
			SpanID:     [8]byte{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
			TraceState: ts,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)
		assert.False(t, IsTraceContextVerbose(ctx))
	})
}

func TestTraceContextVerbose(t *testing.T) {
	t.Run("errors without a valid span context", func(t *testing.T) {
		_, err := TraceContextVerbose(context.Background())
		require.Error(t, err)
	})

	t.Run("marks the trace state and round-trips through IsTraceContextVerbose", func(t *testing.T) {
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    [16]byte{1, 2, 3},
			SpanID:     [8]byte{4, 5, 6},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		ctx, err := TraceContextVerbose(ctx)
		require.NoError(t, err)
		assert.True(t, IsTraceContextVerbose(ctx))
	})
}
