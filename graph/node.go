package graph

import (
	"context"

	"github.com/google/uuid"
)

// Kind distinguishes the two node variants.
type Kind int

const (
	// KindTask is a leaf node wrapping a zero-argument deferred call.
	KindTask Kind = iota
	// KindComposite is a node whose inputs are the results of other nodes.
	KindComposite
)

// String returns the kind name for logs and errors.
func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Call is a deferred unit of work. It runs on a worker slot during
// evaluation and must be side-effect-isolated per invocation.
type Call func(ctx context.Context) (any, error)

// CombineFunc merges the resolved values of a composite's dependencies,
// given in declared order. It is invoked at most once per evaluation, only
// after every dependency is done.
type CombineFunc func(values []any) (any, error)

// Node is a deferred unit in a task graph. Identity is the pointer: the
// same *Node referenced from multiple composites is executed once per
// evaluation and its value shared by all dependents.
//
// Nodes are immutable after construction. Per-evaluation state (pending,
// running, done, failed) is held by the run, never on the node, so a node
// can participate in any number of evaluations.
type Node struct {
	id   string
	name string
	kind Kind

	// task
	call Call

	// composite
	deps    []*Node
	combine CombineFunc
}

// NewTask wraps a deferred call as a leaf node. No work runs until the node
// is reached by an evaluation.
func NewTask(name string, call Call) *Node {
	return &Node{
		id:   uuid.NewString(),
		name: name,
		kind: KindTask,
		call: call,
	}
}

// NewComposite creates a node depending on the results of deps, in the
// given order. Once all dependencies resolve, combine is applied to their
// values in that same declared order.
func NewComposite(name string, deps []*Node, combine CombineFunc) *Node {
	return &Node{
		id:      uuid.NewString(),
		name:    name,
		kind:    KindComposite,
		deps:    append([]*Node(nil), deps...),
		combine: combine,
	}
}

// ID returns the node's unique id.
func (n *Node) ID() string { return n.id }

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Dependencies returns the node's dependencies in declared order.
func (n *Node) Dependencies() []*Node {
	return append([]*Node(nil), n.deps...)
}
