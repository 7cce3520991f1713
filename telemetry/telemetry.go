// Package telemetry sets up OpenTelemetry tracing for flatset programs.
//
// Library packages only ask the global provider for a tracer, which is a
// no-op until Initialize installs an OTLP exporter.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amp-labs/flatset/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
)

var (
	providerMu     sync.Mutex              //nolint:gochecknoglobals
	tracerProvider *sdktrace.TracerProvider //nolint:gochecknoglobals
)

// ErrNoEndpoint is returned by Initialize when tracing is enabled without an
// exporter endpoint.
var ErrNoEndpoint = errors.New("OTLP traces endpoint not configured")

// Config holds the tracing configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is the OTLP/HTTP traces URL, e.g. http://localhost:4318.
	Endpoint string
	Enabled  bool
	// Timeout bounds each export. Zero means five seconds.
	Timeout time.Duration
}

// Initialize installs a batching OTLP/HTTP tracer provider as the global
// provider. With Enabled false it does nothing and spans stay no-ops.
func Initialize(ctx context.Context, config Config) error {
	if !config.Enabled {
		logger.Get(ctx).Debug("tracing is disabled")

		return nil
	}

	if config.Endpoint == "" {
		return ErrNoEndpoint
	}

	if config.ServiceVersion == "" {
		config.ServiceVersion = defaultServiceVersion
	}

	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	providerMu.Lock()
	tracerProvider = provider
	providerMu.Unlock()

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Get(ctx).Info("tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"endpoint", config.Endpoint,
	)

	return nil
}

// Shutdown flushes and stops the provider installed by Initialize, if any.
func Shutdown(ctx context.Context) error {
	providerMu.Lock()
	provider := tracerProvider
	tracerProvider = nil
	providerMu.Unlock()

	if provider == nil {
		return nil
	}

	logger.Get(ctx).Debug("shutting down tracer provider")

	return provider.Shutdown(ctx)
}

// Start opens a span named name on the global tracer for instrumentation
// scope. The caller must call End on the returned span.
//
//nolint:spancheck // ended by the caller
func Start(ctx context.Context, scope, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(scope).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
