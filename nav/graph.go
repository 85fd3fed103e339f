// Package nav implements a directed multigraph of navigable locations.
// Nodes carry a position, arcs carry a strictly positive cost and a unit
// starting direction, and both live in dense collections owned by the
// graph; arcs refer to their endpoints by handle.
//
// A graph has two lifecycle states. While under construction a single
// owner adds nodes and arcs; Freeze then makes it permanently read-only
// and builds the spatial index. A frozen graph is safe to share across
// goroutines without locking, because nothing can mutate it anymore.
package nav

import (
	"fmt"
	"io"

	"navgraph/geom"
)

// Graph owns the node and arc collections. The zero value is not usable;
// call New.
type Graph struct {
	nodes  []Node
	arcs   []Arc
	outs   [][]ArcID
	frozen bool
	index  *nodeIndex
}

// New returns an empty graph in the under-construction state.
func New() *Graph {
	return &Graph{}
}

// AddNode adds a node at the given position and returns its handle. The
// name is an optional label and need not be unique.
func (g *Graph) AddNode(name string, position geom.Vec3) (NodeID, error) {
	if g.frozen {
		return 0, ErrFrozen
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Name: name, Position: position})
	g.outs = append(g.outs, nil)
	return id, nil
}

// AddArc adds a directed arc and returns its handle. The endpoints must be
// distinct existing nodes, the cost strictly positive, and the direction
// unit length within tolerance; a violation returns the matching sentinel
// error and adds nothing. Parallel arcs between the same ordered pair are
// permitted.
func (g *Graph) AddArc(from, to NodeID, cost float32, direction geom.Vec3) (ArcID, error) {
	if g.frozen {
		return 0, ErrFrozen
	}
	if !g.validNode(from) {
		return 0, fmt.Errorf("arc origin %d: %w", from, ErrNodeNotFound)
	}
	if !g.validNode(to) {
		return 0, fmt.Errorf("arc destination %d: %w", to, ErrNodeNotFound)
	}
	if from == to {
		return 0, fmt.Errorf("node %d: %w", from, ErrSelfLoop)
	}
	if !(cost > 0) {
		return 0, fmt.Errorf("cost %f: %w", cost, ErrNonPositiveCost)
	}
	if !direction.IsUnit() {
		return 0, fmt.Errorf("direction %s: %w", direction, ErrNonUnitDirection)
	}
	id := ArcID(len(g.arcs))
	g.arcs = append(g.arcs, Arc{From: from, To: to, Cost: cost, StartDirection: direction})
	g.outs[from] = append(g.outs[from], id)
	return id, nil
}

// Freeze makes the graph permanently read-only and builds the spatial
// index over node positions. Freezing an already frozen graph is a no-op.
func (g *Graph) Freeze() {
	if g.frozen {
		return
	}
	g.index = newNodeIndex(g.nodes)
	g.frozen = true
}

// Frozen reports whether the graph has been frozen.
func (g *Graph) Frozen() bool { return g.frozen }

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumArcs returns the number of arcs.
func (g *Graph) NumArcs() int { return len(g.arcs) }

// Node returns a copy of the node with the given handle.
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.validNode(id) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return g.nodes[id], nil
}

// Arc returns a copy of the arc with the given handle.
func (g *Graph) Arc(id ArcID) (Arc, error) {
	if id < 0 || int(id) >= len(g.arcs) {
		return Arc{}, fmt.Errorf("arc %d: %w", id, ErrArcNotFound)
	}
	return g.arcs[id], nil
}

// ArcsFrom returns the handles of all arcs originating at the given node,
// in insertion order.
func (g *Graph) ArcsFrom(id NodeID) ([]ArcID, error) {
	if !g.validNode(id) {
		return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return append([]ArcID(nil), g.outs[id]...), nil
}

// DescribeArc renders one arc as a descriptive line with named endpoints.
func (g *Graph) DescribeArc(id ArcID) (string, error) {
	if id < 0 || int(id) >= len(g.arcs) {
		return "", fmt.Errorf("arc %d: %w", id, ErrArcNotFound)
	}
	a := g.arcs[id]
	return fmt.Sprintf("%s to %s len=%f dir=%s",
		g.nodes[a.From].Label(), g.nodes[a.To].Label(), a.Cost, a.StartDirection), nil
}

// Describe writes a line-oriented summary of every node and arc to w.
func (g *Graph) Describe(w io.Writer) error {
	state := "under construction"
	if g.frozen {
		state = "frozen"
	}
	if _, err := fmt.Fprintf(w, "graph (%s): %d nodes, %d arcs\n",
		state, len(g.nodes), len(g.arcs)); err != nil {
		return err
	}
	for _, n := range g.nodes {
		if _, err := fmt.Fprintf(w, "  %s\n", n); err != nil {
			return err
		}
	}
	for id := range g.arcs {
		line, _ := g.DescribeArc(ArcID(id))
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) validNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
