package graph

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
)

// incrementReport sleeps a fixed duration, then reports x and x+1 in the
// two-line report format used by the parallelism scenario below.
func incrementReport(x int, d time.Duration) *Node {
	return NewTask(fmt.Sprintf("inc-%d", x), func(ctx context.Context) (any, error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return fmt.Sprintf("x: %d\ny: %d\n\n", x, x+1), nil
	})
}

// Three independent tasks of fixed duration must run concurrently when the
// pool allows it: wall time with 3 workers is close to one task's duration,
// while a single worker serializes all three. The materialized values must
// be identical either way.
func TestEvaluate_ParallelSpeedup(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-sensitive")
	}

	const taskDuration = 250 * time.Millisecond
	build := func() *Node {
		return NewGather("batch",
			incrementReport(1, taskDuration),
			incrementReport(2, taskDuration),
			incrementReport(3, taskDuration),
		)
	}
	want := []any{
		"x: 1\ny: 2\n\n",
		"x: 2\ny: 3\n\n",
		"x: 3\ny: 4\n\n",
	}

	start := time.Now()
	serial, err := Evaluate(context.Background(), build(), WithWorkers(1))
	if err != nil {
		t.Fatalf("serial run failed: %v", err)
	}
	serialElapsed := time.Since(start)

	start = time.Now()
	parallel, err := Evaluate(context.Background(), build(), WithWorkers(3))
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}
	parallelElapsed := time.Since(start)

	if !reflect.DeepEqual(serial, want) {
		t.Errorf("serial run: expected %q, got %v", want, serial)
	}
	if !reflect.DeepEqual(parallel, want) {
		t.Errorf("parallel run: expected %q, got %v", want, parallel)
	}

	speedup := float64(serialElapsed) / float64(parallelElapsed)
	if speedup <= 2.0 {
		t.Errorf("expected speedup > 2.0 with 3 workers, got %.2f (serial %v, parallel %v)",
			speedup, serialElapsed, parallelElapsed)
	}
}

func TestValues(t *testing.T) {
	got, err := Values([]any{"a", 1, nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"a", 1, nil}) {
		t.Errorf("expected identity result, got %v", got)
	}
}

func TestNewGather_Empty(t *testing.T) {
	got, err := Evaluate(context.Background(), NewGather("empty"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []any{}) {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
		ok    bool
	}{
		{"strings", []any{"a", "b"}, []string{"a", "b"}, true},
		{"empty", []any{}, []string{}, true},
		{"mixed", []any{"a", 1}, nil, false},
		{"not a slice", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Strings(tt.value)
			if ok != tt.ok {
				t.Fatalf("Strings(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
