package graph

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/taskgraph/errors"
	"github.com/kbukum/taskgraph/logger"
	"github.com/kbukum/taskgraph/observability"
)

// Option configures one evaluation.
type Option func(*options)

type options struct {
	workers int
	log     *logger.Logger
	metrics *observability.Metrics
}

// WithWorkers sets the worker pool size for this evaluation. The pool may
// be as small as 1, serializing execution. Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger for this evaluation.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithInstrumentation records run-level metrics for this evaluation:
// active/total evaluation counts and a duration histogram keyed by root
// and status. Per-node metrics stay opt-in via the WithMetrics decorator.
func WithInstrumentation(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Evaluate resolves root's value, blocking the caller until the whole graph
// completes or fails.
//
// It builds the dependency graph (rejecting cycles before any worker is
// dispatched), then schedules task nodes across a bounded worker pool and
// resolves composites once their dependencies are done. On failure it
// returns a structured error attributable to a specific node, wrapping the
// first encountered failure's cause.
//
// Each call is an independent run: node state lives in a per-run table, so
// evaluating the same root again re-runs the graph from scratch with no
// reuse of prior results.
func Evaluate(ctx context.Context, root *Node, opts ...Option) (any, error) {
	o := options{
		workers: runtime.NumCPU(),
		log:     logger.Get("graph"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		return nil, errors.InvalidInput("workers", "pool size must be at least 1")
	}

	g, err := Build(root)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := o.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanEvaluate)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	observability.SetSpanAttribute(ctx, observability.AttrWorkers, o.workers)

	log.Debug("evaluating graph", map[string]interface{}{
		logger.FieldNode:    root.name,
		logger.FieldWorkers: o.workers,
		"nodes":             g.Size(),
	})

	if o.metrics != nil {
		o.metrics.RecordEvaluateStart(ctx)
	}
	start := time.Now()
	value, err := newScheduler(g, o.workers, log).run(ctx)
	elapsed := time.Since(start)

	status := "done"
	if err != nil {
		status = "failed"
	}
	if o.metrics != nil {
		o.metrics.RecordEvaluateEnd(ctx, root.name, status, elapsed)
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	observability.SetSpanAttribute(ctx, observability.AttrDurationMs, elapsed.Milliseconds())

	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Error("evaluation failed", map[string]interface{}{
			logger.FieldNode:     root.name,
			logger.FieldDuration: elapsed.Milliseconds(),
			logger.FieldError:    err.Error(),
		})
		return nil, err
	}

	log.Info("evaluation done", map[string]interface{}{
		logger.FieldNode:     root.name,
		logger.FieldDuration: elapsed.Milliseconds(),
		"nodes":              g.Size(),
	})
	return value, nil
}
