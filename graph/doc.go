// Package graph provides a deferred task-graph execution engine.
//
// Callers describe units of work as lazily-evaluated nodes, compose them
// into aggregate nodes, and trigger evaluation once. The engine schedules
// independent tasks across a bounded worker pool and resolves each
// composite's value in declared dependency order, regardless of the order
// workers finish in.
//
//	a := graph.NewTask("a", callA)
//	b := graph.NewTask("b", callB)
//	c := graph.NewTask("c", callC)
//	all := graph.NewGather("all", a, b, c)
//
//	out, err := graph.Evaluate(ctx, all, graph.WithWorkers(3))
//
// Construction is pure: no work runs until Evaluate. Node state lives in a
// per-run table, so evaluating the same root again is a fresh run.
package graph
