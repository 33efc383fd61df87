package runner

import (
	"context"
	"sort"
	"sync"

	"github.com/kbukum/taskgraph/errors"
)

// Operation is an in-process operation implementation.
type Operation func(ctx context.Context, params map[string]any) (string, error)

// Registry dispatches operation ids to registered Go functions. It is safe
// for concurrent use, including registration during evaluation.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds an operation under the given id, replacing any previous
// registration.
func (r *Registry) Register(opID string, op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[opID] = op
}

// Get retrieves an operation by id.
func (r *Registry) Get(opID string) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[opID]
	return op, ok
}

// List returns sorted ids of all registered operations.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.ops))
	for id := range r.ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Execute implements Runner. Unregistered ids fail with UNKNOWN_OPERATION;
// an operation error is wrapped as OPERATION_FAILED.
func (r *Registry) Execute(ctx context.Context, opID string, params map[string]any) (string, error) {
	op, ok := r.Get(opID)
	if !ok {
		return "", errors.UnknownOperation(opID)
	}
	out, err := op(ctx, params)
	if err != nil {
		if _, isApp := errors.AsAppError(err); isApp {
			return "", err
		}
		return "", errors.OperationFailed(opID, err)
	}
	return out, nil
}
