package graph

// State is a node's lifecycle state within one evaluation.
type State int

const (
	StatePending State = iota
	StateRunning
	StateDone
	StateFailed
)

// String returns the state name for logs and errors.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state is terminal.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// allowedTransition enforces monotonic resolution: a node resolves to
// exactly one value or one failure, never both, and never moves backwards.
func allowedTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateRunning || to == StateFailed
	case StateRunning:
		return to == StateDone || to == StateFailed
	default:
		return false
	}
}

// nodeRun holds a node's per-evaluation state. It is written only by the
// scheduler's coordinating loop.
type nodeRun struct {
	state State
	value any
	err   error

	// waiting counts dependencies not yet done.
	waiting int
}
