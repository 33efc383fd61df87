package graph

import (
	"github.com/kbukum/taskgraph/errors"
)

// Graph is the set of nodes reachable from a root, with the dependency
// edges implied by composite references. Build rejects cycles, so the
// dependency relation is always acyclic.
type Graph struct {
	root *Node

	// nodes in deterministic discovery order, deduplicated by identity.
	nodes []*Node

	// dependents maps a node to the nodes that consume its value.
	dependents map[*Node][]*Node
}

// Root returns the designated root node.
func (g *Graph) Root() *Node { return g.root }

// Size returns the number of distinct nodes in the graph.
func (g *Graph) Size() int { return len(g.nodes) }

// Nodes returns the graph's nodes in discovery order.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// Dependents returns the nodes that directly consume n's value.
func (g *Graph) Dependents(n *Node) []*Node {
	return append([]*Node(nil), g.dependents[n]...)
}

// dfs colors for cycle detection.
type color int

const (
	colorWhite color = iota // unvisited
	colorGray               // in progress
	colorBlack              // done
)

// Build traverses the dependency graph reachable from root, deduplicating
// shared nodes by identity and failing fast on cycles. The traversal is
// pure: no node runs.
func Build(root *Node) (*Graph, error) {
	if root == nil {
		return nil, errors.InvalidGraph("nil root node")
	}

	g := &Graph{
		root:       root,
		dependents: make(map[*Node][]*Node),
	}
	colors := make(map[*Node]color)

	var visit func(n *Node, path []string) error
	visit = func(n *Node, path []string) error {
		switch colors[n] {
		case colorBlack:
			return nil
		case colorGray:
			// Back-edge: n (transitively) depends on itself.
			return errors.CycleDetected(n.name, cyclePath(path, n.name)).
				WithDetail("node_id", n.id)
		}

		if err := validateNode(n); err != nil {
			return err
		}

		colors[n] = colorGray
		path = append(path, n.name)
		for _, dep := range n.deps {
			if dep == nil {
				return errors.InvalidGraph("node " + n.name + " has a nil dependency").
					WithDetail("node", n.name)
			}
			g.dependents[dep] = append(g.dependents[dep], n)
			if err := visit(dep, path); err != nil {
				return err
			}
		}
		colors[n] = colorBlack
		g.nodes = append(g.nodes, n)
		return nil
	}

	if err := visit(root, nil); err != nil {
		return nil, err
	}
	return g, nil
}

func validateNode(n *Node) error {
	switch n.kind {
	case KindTask:
		if n.call == nil {
			return errors.InvalidGraph("task " + n.name + " has a nil call").
				WithDetail("node", n.name)
		}
	case KindComposite:
		if n.combine == nil {
			return errors.InvalidGraph("composite " + n.name + " has a nil combine function").
				WithDetail("node", n.name)
		}
	}
	return nil
}

// cyclePath trims the DFS path to start at the revisited node, then closes
// the loop, e.g. [root a b] revisiting a yields [a b a].
func cyclePath(path []string, name string) []string {
	for i, p := range path {
		if p == name {
			path = path[i:]
			break
		}
	}
	return append(append([]string(nil), path...), name)
}
