// Package errors provides structured error handling for the task-graph
// engine. Every failure surfaced by an evaluation carries a machine-readable
// code, the identity of the node it is attributable to, and the underlying
// cause chain.
package errors
