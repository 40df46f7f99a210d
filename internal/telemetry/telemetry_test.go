package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerUsesInstalledProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	Install(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := Tracer("world").Start(context.Background(), "level.load")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("Ended spans = %d, want 1", len(ended))
	}
	if got := ended[0].Name(); got != "level.load" {
		t.Errorf("Span name = %q, want level.load", got)
	}
	if got := ended[0].InstrumentationScope().Name; got != "cavetactics/world" {
		t.Errorf("Tracer name = %q, want cavetactics/world", got)
	}
}

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	shutdown, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error: %v", err)
	}
	if _, span := Tracer("game").Start(context.Background(), "game.init"); span.SpanContext().IsValid() {
		t.Error("Spans should not be recorded without an endpoint")
	}
}
