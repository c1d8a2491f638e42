// Package otel configures OpenTelemetry tracing for portfolio processes.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Settings controls tracing setup. Endpoint and Enabled map to
// PORTFOLIO_OTEL_ENDPOINT and PORTFOLIO_OTEL_ENABLED.
type Settings struct {
	Endpoint    string `env:"PORTFOLIO_OTEL_ENDPOINT"`
	Enabled     string `env:"PORTFOLIO_OTEL_ENABLED"`
	ServiceName string
	// Attributes are attached to the process resource (database name, etc).
	Attributes map[string]string
}

// Setup initialises OpenTelemetry tracing.
//
// Tracing is opt-in: when the endpoint is empty or Enabled is "false", Setup
// returns a no-op shutdown function and no global provider is registered.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, settings Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(strings.TrimSpace(settings.Enabled), "false") {
		return noop, nil
	}
	endpoint := strings.TrimSpace(settings.Endpoint)
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(settings.ServiceName)}
	for key, value := range settings.Attributes {
		attrs = append(attrs, attribute.String(key, value))
	}
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
