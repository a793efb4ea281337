// Package telemetry wires mazecrawl's tracing. Spans are only exported when
// an OTLP endpoint is configured; otherwise the global no-op provider drops
// them.
//
// Spans emitted:
//
//	maze.generate       carving one level (world)
//	session.start       creating a session and its first level
//	session.turn        a left or right turn
//	session.move        a forward move and its tile effect
//	session.regenerate  replacing the level after the door is reached
//	game.run            the terminal loop
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "mazecrawl"
	serviceVersion = "0.1.0"
	tracerPrefix   = serviceName + "/"
)

// Span names.
const (
	SpanGenerate   = "maze.generate"
	SpanStart      = "session.start"
	SpanTurn       = "session.turn"
	SpanMove       = "session.move"
	SpanRegenerate = "session.regenerate"
	SpanRun        = "game.run"
)

// Setup installs a batching OTLP/HTTP tracer provider as the global one.
// The exporter takes its endpoint and headers from OTEL_EXPORTER_OTLP_*.
// The returned function flushes pending spans; call it before exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Not merged with resource.Default(): the schema URLs conflict.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the tracer for a mazecrawl component, e.g. "world" or "session".
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerPrefix + component)
}

// NoopTracer returns a tracer that records nothing, for tests and sessions
// with tracing disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerPrefix + "noop")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
