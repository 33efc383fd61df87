// Package observability provides OpenTelemetry tracing and metrics
// integration for the task-graph engine.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("taskgraph"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "graph.evaluate")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("taskgraph"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("taskgraph"))
//	metrics.RecordNode(ctx, "prepare", "task", "done", duration)
package observability
