package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory provider for the rest of the test.
func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	old := otel.GetTracerProvider()

	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	t.Cleanup(func() { otel.SetTracerProvider(old) })

	return exporter
}

//nolint:paralleltest // swaps the global tracer provider
func TestStartEnd(t *testing.T) {
	exporter := recordSpans(t)

	_, ok := Start(context.Background(), "test", "ok", attribute.Int("n", 3))
	End(ok, nil)

	_, failed := Start(context.Background(), "test", "failed")
	End(failed, errors.New("boom")) //nolint:err113

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "ok", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int("n", 3))

	assert.Equal(t, "failed", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "boom", spans[1].Status.Description)
	require.Len(t, spans[1].Events, 1)
	assert.Equal(t, "exception", spans[1].Events[0].Name)
}

//nolint:paralleltest // installs a global tracer provider
func TestInitialize(t *testing.T) {
	old := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(old) })

	ctx := context.Background()

	t.Run("disabled is a no-op", func(t *testing.T) {
		require.NoError(t, Initialize(ctx, Config{Endpoint: "http://127.0.0.1:4318"}))

		_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.False(t, isSDK)
		require.NoError(t, Shutdown(ctx))
	})

	t.Run("enabled needs an endpoint", func(t *testing.T) {
		require.ErrorIs(t, Initialize(ctx, Config{Enabled: true}), ErrNoEndpoint)
	})

	t.Run("enabled installs a provider", func(t *testing.T) {
		require.NoError(t, Initialize(ctx, Config{
			ServiceName: "telemetry-test",
			Endpoint:    "http://127.0.0.1:4318",
			Enabled:     true,
		}))

		_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.True(t, isSDK)

		require.NoError(t, Shutdown(ctx))
		require.NoError(t, Shutdown(ctx))
	})
}
