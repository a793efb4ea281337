package telemetry

import (
	"context"
	"testing"
)

func TestNoopTracerRecordsNothing(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), SpanMove)
	defer span.End()

	if span.IsRecording() {
		t.Error("noop span is recording")
	}
	if span.SpanContext().IsValid() {
		t.Error("noop span has a valid span context")
	}
}

func TestTracerWithoutSetupIsNoop(t *testing.T) {
	_, span := Tracer("world").Start(context.Background(), SpanGenerate)
	defer span.End()

	if span.IsRecording() {
		t.Error("span recorded before Setup installed a provider")
	}
}
