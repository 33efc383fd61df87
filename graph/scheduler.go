package graph

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/taskgraph/errors"
	"github.com/kbukum/taskgraph/logger"
)

// completion is a worker's report back to the coordinating loop.
type completion struct {
	node     *Node
	value    any
	err      error
	duration time.Duration
}

// scheduler drives every node of one graph to done or failed.
//
// The coordinating loop is the only writer of node state. Workers never
// touch runs; they report through the results channel. The worker pool is
// owned by one scheduler for the duration of one run and every slot is
// returned on every exit path.
type scheduler struct {
	g       *Graph
	workers int
	log     *logger.Logger

	runs map[*Node]*nodeRun

	// ready is a FIFO queue of nodes whose dependencies are all done.
	// FIFO by readiness time keeps dispatch fair when workers are scarce.
	ready []*Node
}

func newScheduler(g *Graph, workers int, log *logger.Logger) *scheduler {
	s := &scheduler{
		g:       g,
		workers: workers,
		log:     log,
		runs:    make(map[*Node]*nodeRun, g.Size()),
	}
	for _, n := range g.nodes {
		r := &nodeRun{state: StatePending, waiting: len(n.deps)}
		s.runs[n] = r
		if r.waiting == 0 {
			s.ready = append(s.ready, n)
		}
	}
	return s
}

// run blocks until the root is done or failed and returns its resolution.
func (s *scheduler) run(ctx context.Context) (any, error) {
	work := make(chan *Node, s.g.Size())
	results := make(chan completion, s.g.Size())

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range work {
				start := time.Now()
				value, err := n.call(ctx)
				results <- completion{node: n, value: value, err: err, duration: time.Since(start)}
			}
		}()
	}
	defer func() {
		close(work)
		wg.Wait()
	}()

	inFlight := 0
	for {
		// Dispatch in readiness order. Tasks go to worker slots; composites
		// combine inline on the coordinator, which may enqueue dependents.
		// Once the root is terminal nothing new starts; only work already
		// handed to the pool finishes.
		for len(s.ready) > 0 && !s.runs[s.g.root].state.IsTerminal() {
			n := s.ready[0]
			s.ready = s.ready[1:]
			r := s.runs[n]
			if r.state != StatePending {
				// Failed by a cascade while queued.
				continue
			}
			s.transition(n, StateRunning)
			if n.kind == KindTask {
				inFlight++
				work <- n
				continue
			}
			s.combineNode(n)
		}

		if root := s.runs[s.g.root]; root.state.IsTerminal() {
			// Running siblings finish on their slots; results are discarded.
			s.drain(results, inFlight)
			return root.value, root.err
		}

		if inFlight == 0 {
			// No ready work, nothing running, root still pending. Cycles are
			// rejected at build time, so this signals an engine bug.
			return nil, errors.SchedulerStalled(s.countPending())
		}

		select {
		case <-ctx.Done():
			s.drain(results, inFlight)
			return nil, ctx.Err()
		case c := <-results:
			inFlight--
			s.handleCompletion(c)
		}
	}
}

// handleCompletion records a worker's result and recomputes readiness.
func (s *scheduler) handleCompletion(c completion) {
	if c.err != nil {
		s.fail(c.node, errors.TaskFailed(c.node.name, c.err).WithDetail("node_id", c.node.id))
		return
	}
	s.log.Debug("node done", map[string]interface{}{
		logger.FieldNode:     c.node.name,
		logger.FieldKind:     c.node.kind.String(),
		logger.FieldDuration: c.duration.Milliseconds(),
	})
	s.resolve(c.node, c.value)
}

// combineNode applies a composite's combining function to its dependencies'
// values in declared order. All dependencies are done by construction of
// the ready queue.
func (s *scheduler) combineNode(n *Node) {
	values := make([]any, len(n.deps))
	for i, dep := range n.deps {
		values[i] = s.runs[dep].value
	}
	value, err := n.combine(values)
	if err != nil {
		s.fail(n, errors.CombineFailed(n.name, err).WithDetail("node_id", n.id))
		return
	}
	s.resolve(n, value)
}

// resolve marks a node done and enqueues dependents that became ready.
func (s *scheduler) resolve(n *Node, value any) {
	r := s.runs[n]
	s.transition(n, StateDone)
	r.value = value

	for _, d := range s.g.dependents[n] {
		rd := s.runs[d]
		if rd.state != StatePending {
			continue
		}
		rd.waiting--
		if rd.waiting == 0 {
			s.ready = append(s.ready, d)
		}
	}
}

// fail marks a node failed and cascades to every transitive dependent. No
// combining function runs on a failing path. Only composites can have
// dependents, and composites resolve inline, so the cascade never meets a
// running node.
func (s *scheduler) fail(n *Node, ferr error) {
	r := s.runs[n]
	if r.state.IsTerminal() {
		return
	}
	s.transition(n, StateFailed)
	r.err = ferr

	s.log.Debug("node failed", map[string]interface{}{
		logger.FieldNode:  n.name,
		logger.FieldKind:  n.kind.String(),
		logger.FieldError: ferr.Error(),
	})

	for _, d := range s.g.dependents[n] {
		if s.runs[d].state.IsTerminal() {
			continue
		}
		s.fail(d, errors.DependencyFailed(d.name, n.name, ferr).WithDetail("node_id", d.id))
	}
}

// transition applies a validated state change. A disallowed transition is
// an engine bug; it is logged and ignored rather than applied.
func (s *scheduler) transition(n *Node, to State) {
	r := s.runs[n]
	if !allowedTransition(r.state, to) {
		s.log.Error("disallowed state transition", map[string]interface{}{
			logger.FieldNode:  n.name,
			logger.FieldState: r.state.String(),
			"to":              to.String(),
		})
		return
	}
	r.state = to
}

// drain consumes outstanding completions so every worker slot is idle
// before the pool shuts down.
func (s *scheduler) drain(results chan completion, inFlight int) {
	for ; inFlight > 0; inFlight-- {
		<-results
	}
}

func (s *scheduler) countPending() int {
	pending := 0
	for _, r := range s.runs {
		if !r.state.IsTerminal() {
			pending++
		}
	}
	return pending
}
