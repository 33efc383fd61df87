package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/taskgraph/errors"
)

// --- test helpers ---

func constTask(name, value string) *Node {
	return NewTask(name, func(ctx context.Context) (any, error) {
		return value, nil
	})
}

// --- Node tests ---

func TestNewTask_Identity(t *testing.T) {
	a := constTask("a", "1")
	b := constTask("a", "1")
	if a == b {
		t.Fatal("distinct nodes must have distinct identity")
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct node ids")
	}
	if a.Kind() != KindTask {
		t.Errorf("expected task kind, got %s", a.Kind())
	}
}

func TestNewComposite_CopiesDeps(t *testing.T) {
	a := constTask("a", "1")
	deps := []*Node{a}
	c := NewComposite("c", deps, Values)
	deps[0] = nil

	got := c.Dependencies()
	if len(got) != 1 || got[0] != a {
		t.Error("composite must copy its dependency list at construction")
	}
}

func TestKind_String(t *testing.T) {
	if KindTask.String() != "task" || KindComposite.String() != "composite" {
		t.Error("unexpected kind names")
	}
}

// --- Build tests ---

func TestBuild_NilRoot(t *testing.T) {
	_, err := Build(nil)
	if !errors.HasCode(err, errors.ErrCodeInvalidGraph) {
		t.Fatalf("expected INVALID_GRAPH, got %v", err)
	}
}

func TestBuild_SingleTask(t *testing.T) {
	a := constTask("a", "1")
	g, err := Build(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Size() != 1 {
		t.Errorf("expected 1 node, got %d", g.Size())
	}
	if g.Root() != a {
		t.Error("expected root to be the given node")
	}
}

func TestBuild_DeduplicatesSharedNodes(t *testing.T) {
	shared := constTask("shared", "1")
	left := NewGather("left", shared)
	right := NewGather("right", shared)
	root := NewGather("root", left, right)

	g, err := Build(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// shared, left, right, root
	if g.Size() != 4 {
		t.Errorf("expected 4 distinct nodes, got %d", g.Size())
	}
	if len(g.Dependents(shared)) != 2 {
		t.Errorf("expected 2 dependents of shared, got %d", len(g.Dependents(shared)))
	}
}

func TestBuild_RejectsCycle(t *testing.T) {
	x := NewGather("x")
	y := NewGather("y", x)
	// Constructors cannot express a cycle; close one directly to exercise
	// the back-edge check.
	x.deps = append(x.deps, y)

	_, err := Build(y)
	if !errors.HasCode(err, errors.ErrCodeCycle) {
		t.Fatalf("expected CYCLE_DETECTED, got %v", err)
	}
	if !strings.Contains(err.Error(), "->") {
		t.Errorf("expected cycle path in message, got %q", err.Error())
	}
}

func TestBuild_RejectsSelfDependency(t *testing.T) {
	x := NewGather("x")
	x.deps = append(x.deps, x)

	_, err := Build(x)
	if !errors.HasCode(err, errors.ErrCodeCycle) {
		t.Fatalf("expected CYCLE_DETECTED, got %v", err)
	}
}

func TestBuild_InvalidNodes(t *testing.T) {
	tests := []struct {
		name string
		root *Node
	}{
		{"nil task call", NewTask("t", nil)},
		{"nil combine", NewComposite("c", nil, nil)},
		{"nil dependency", NewComposite("c", []*Node{nil}, Values)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.root)
			if !errors.HasCode(err, errors.ErrCodeInvalidGraph) {
				t.Fatalf("expected INVALID_GRAPH, got %v", err)
			}
		})
	}
}

func TestBuild_DuplicateDependencyEntries(t *testing.T) {
	a := constTask("a", "1")
	c := NewComposite("c", []*Node{a, a}, Values)

	g, err := Build(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Size() != 2 {
		t.Errorf("expected 2 distinct nodes, got %d", g.Size())
	}
	// Each declared entry is an edge.
	if len(g.Dependents(a)) != 2 {
		t.Errorf("expected 2 dependent edges, got %d", len(g.Dependents(a)))
	}
}

func TestBuild_IsPure(t *testing.T) {
	ran := false
	a := NewTask("a", func(ctx context.Context) (any, error) {
		ran = true
		return nil, nil
	})

	if _, err := Build(NewGather("root", a)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran {
		t.Error("build must not run any node")
	}
}
