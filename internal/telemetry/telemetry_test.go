package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{Enabled: false})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown error = %v", err)
	}

	_, span := Tracer("disabled").Start(context.Background(), "ignored")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("disabled telemetry produced a valid span context")
	}
}

func TestTracerUsesInstalledProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := Tracer("test").Start(context.Background(), "unit.span")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(ended))
	}
	if ended[0].Name() != "unit.span" {
		t.Errorf("span name = %q, want unit.span", ended[0].Name())
	}
	if got := ended[0].InstrumentationScope().Name; got != "fracturecrawl/test" {
		t.Errorf("tracer name = %q, want fracturecrawl/test", got)
	}
}
