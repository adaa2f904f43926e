// Package trace sets up OpenTelemetry tracing. Until Init is called with tracing
// enabled, StartSpan returns non-recording spans.
package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rxtech-lab/argo-quant"

// Config controls tracing.
type Config struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" jsonschema:"title=Enabled,description=Export spans to stdout,default=false"`
	ServiceName string `yaml:"service_name" json:"service_name" jsonschema:"title=Service Name,default=argo-quant"`
	PrettyPrint bool   `yaml:"pretty_print" json:"pretty_print" jsonschema:"title=Pretty Print,default=false"`
}

var (
	mu             sync.RWMutex
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
)

// Init installs a stdout exporting tracer provider when tracing is enabled.
func Init(config Config, version string) error {
	if !config.Enabled {
		return nil
	}

	var opts []stdouttrace.Option
	if config.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}

	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return err
	}

	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = "argo-quant"
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	mu.Lock()
	tracerProvider = provider
	tracer = provider.Tracer(instrumentationName)
	mu.Unlock()

	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	provider := tracerProvider
	tracerProvider = nil
	tracer = nil
	mu.Unlock()

	if provider != nil {
		return provider.Shutdown(ctx)
	}

	return nil
}

// Enabled reports whether Init installed a provider.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()

	return tracer != nil
}

func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()

	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	return t.Start(ctx, spanName, opts...)
}

// TraceFields returns the ids of the span in ctx for log correlation.
func TraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return "", "", false
	}

	return span.SpanContext().TraceID().String(), span.SpanContext().SpanID().String(), true
}
