// Package runner executes named operations and bridges them into graph
// task nodes.
//
// A Runner resolves an operation id plus a parameter map to captured text
// output. The Registry dispatches to in-process Go functions; ProcessRunner
// shells out to an external binary, passing parameters as command-line
// flags and capturing stdout. TaskOf wraps any Runner invocation as a
// deferred graph node, so operations participate in dependency graphs like
// any other task.
package runner
