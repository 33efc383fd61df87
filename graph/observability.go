package graph

import (
	"context"
	"time"

	"github.com/kbukum/taskgraph/logger"
	"github.com/kbukum/taskgraph/observability"
)

// WithTracing wraps a task node's deferred call with OpenTelemetry span
// creation. Each execution creates a span named "{prefix}.{nodeName}";
// an empty prefix defaults to observability.SpanNodeRun. Composite nodes
// combine inline on the coordinator and pass through unchanged.
func WithTracing(n *Node, prefix string) *Node {
	if prefix == "" {
		prefix = observability.SpanNodeRun
	}
	return wrapCall(n, func(inner Call) Call {
		return func(ctx context.Context) (any, error) {
			ctx, span := observability.StartSpan(ctx, prefix+"."+n.name)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrNodeName, n.name)
			observability.SetSpanAttribute(ctx, observability.AttrNodeKind, n.kind.String())

			value, err := inner(ctx)
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			return value, err
		}
	})
}

// WithMetrics wraps a task node's deferred call with metric recording.
// Records execution count, duration, and errors.
func WithMetrics(n *Node, metrics *observability.Metrics) *Node {
	return wrapCall(n, func(inner Call) Call {
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			value, err := inner(ctx)
			duration := time.Since(start)

			status := "done"
			if err != nil {
				status = "failed"
				metrics.RecordError(ctx, "TASK_FAILED", n.name)
			}
			metrics.RecordNode(ctx, n.name, n.kind.String(), status, duration)

			return value, err
		}
	})
}

// WithLogging wraps a task node's deferred call with execution logging.
// Logs: node name, duration, and success/error status.
func WithLogging(n *Node, log *logger.Logger) *Node {
	return wrapCall(n, func(inner Call) Call {
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			value, err := inner(ctx)
			duration := time.Since(start)

			fields := map[string]interface{}{
				logger.FieldNode:     n.name,
				logger.FieldDuration: duration.Milliseconds(),
			}

			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("node call failed", fields)
			} else {
				log.Debug("node call completed", fields)
			}

			return value, err
		}
	})
}

// wrapCall clones a task node with a decorated deferred call. The clone is
// a distinct node identity; decorate before wiring nodes into composites.
// Composites are returned unchanged.
func wrapCall(n *Node, mw func(Call) Call) *Node {
	if n.kind != KindTask {
		return n
	}
	return NewTask(n.name, mw(n.call))
}
