package runner

import (
	"context"

	"github.com/kbukum/taskgraph/graph"
)

// Runner resolves an operation id and parameters to captured text output.
type Runner interface {
	// Execute runs the operation identified by opID and returns its output.
	// Implementations return *errors.AppError values: UNKNOWN_OPERATION for
	// unregistered ids, OPERATION_FAILED when the run itself fails.
	Execute(ctx context.Context, opID string, params map[string]any) (string, error)
}

// Func adapts a plain function to the Runner interface.
type Func func(ctx context.Context, opID string, params map[string]any) (string, error)

// Execute implements Runner.
func (f Func) Execute(ctx context.Context, opID string, params map[string]any) (string, error) {
	return f(ctx, opID, params)
}

// TaskOf wraps a Runner invocation as a deferred graph task node. The
// operation does not run until the node is scheduled by an evaluation.
func TaskOf(r Runner, name, opID string, params map[string]any) *graph.Node {
	return graph.NewTask(name, func(ctx context.Context) (any, error) {
		return r.Execute(ctx, opID, params)
	})
}
