package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("taskgraph")
	if cfg.ServiceName != "taskgraph" {
		t.Errorf("expected service name taskgraph, got %q", cfg.ServiceName)
	}
	if cfg.Endpoint == "" {
		t.Error("expected default endpoint")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("taskgraph")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.Interval)
	}
}

func TestStartSpan_NoProvider(t *testing.T) {
	// With no provider installed the no-op tracer must still return a
	// usable span.
	ctx, span := StartSpan(context.Background(), "test.span")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	span.End()
}

func TestSetSpanAttribute_NoPanic(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "node.name", "prepare")
	SetSpanAttribute(ctx, "pool.workers", 3)
	SetSpanAttribute(ctx, "ratio", 2.5)
	SetSpanAttribute(ctx, "ok", true)
}

func TestSetSpanError_NoPanic(t *testing.T) {
	SetSpanError(context.Background(), context.Canceled)
}

func TestNewMetrics(t *testing.T) {
	metrics, err := NewMetrics(otel.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordEvaluateStart(ctx)
	metrics.RecordNode(ctx, "prepare", "task", "done", 150*time.Millisecond)
	metrics.RecordNode(ctx, "gather", "composite", "failed", time.Millisecond)
	metrics.RecordError(ctx, "TASK_FAILED", "scheduler")
	metrics.RecordEvaluateEnd(ctx, "gather", "done", time.Second)
}
