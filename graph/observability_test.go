package graph

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/kbukum/taskgraph/errors"
	"github.com/kbukum/taskgraph/logger"
	"github.com/kbukum/taskgraph/observability"
)

func TestWithLogging_PreservesResult(t *testing.T) {
	a := constTask("a", "1")
	wrapped := WithLogging(a, logger.Get("graph"))

	if wrapped == a {
		t.Fatal("expected a distinct node identity")
	}
	got, err := Evaluate(context.Background(), wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected %q, got %v", "1", got)
	}
}

func TestWithLogging_PreservesError(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := WithLogging(failTask("bad", cause), logger.Get("graph"))

	_, err := Evaluate(context.Background(), wrapped)
	if !stderrors.Is(err, cause) {
		t.Errorf("expected original cause, got %v", err)
	}
}

func TestWithTracing_NoExporterConfigured(t *testing.T) {
	// Without an initialized tracer provider spans are no-ops; the call must
	// still run normally.
	wrapped := WithTracing(constTask("a", "1"), "test")

	got, err := Evaluate(context.Background(), wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected %q, got %v", "1", got)
	}
}

func TestWithTracing_DefaultPrefix(t *testing.T) {
	wrapped := WithTracing(constTask("a", "1"), "")

	got, err := Evaluate(context.Background(), wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected %q, got %v", "1", got)
	}
}

func TestEvaluate_WithInstrumentation(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("graph-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Evaluate(context.Background(),
		NewGather("root", constTask("a", "1")),
		WithInstrumentation(metrics))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"1"}) {
		t.Errorf("expected [1], got %v", got)
	}

	// Failure path records a failed run without changing the error.
	_, err = Evaluate(context.Background(),
		failTask("bad", stderrors.New("boom")),
		WithInstrumentation(metrics))
	if !errors.HasCode(err, errors.ErrCodeTaskFailed) {
		t.Fatalf("expected TASK_FAILED, got %v", err)
	}
}

func TestDecorators_CompositePassThrough(t *testing.T) {
	c := NewGather("c", constTask("a", "1"))
	if WithLogging(c, logger.Get("graph")) != c {
		t.Error("expected composite to pass through unchanged")
	}
	if WithTracing(c, "test") != c {
		t.Error("expected composite to pass through unchanged")
	}
}
