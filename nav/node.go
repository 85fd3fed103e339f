package nav

import (
	"fmt"

	"navgraph/geom"
)

// NodeID is a handle into a graph's node collection. Handles are stable for
// the lifetime of the graph; nodes are never merged or removed.
type NodeID int32

// ArcID is a handle into a graph's arc collection.
type ArcID int32

// Node is a navigable location in a graph. The Name is an optional label
// for descriptions and need not be unique; identity is the handle.
type Node struct {
	ID       NodeID
	Name     string
	Position geom.Vec3
}

// Label returns the node's name, or a handle-based placeholder when it has
// none.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("node#%d", n.ID)
}

// String formats n for debug output.
func (n Node) String() string {
	return fmt.Sprintf("%s at %s", n.Label(), n.Position)
}

// Arc is a directed, costed transition between two distinct nodes, fixed at
// construction. StartDirection is the unit direction of travel at the
// moment of departure. Accessing an arc through the graph yields a copy, so
// no caller can reach into graph state.
type Arc struct {
	From           NodeID
	To             NodeID
	Cost           float32
	StartDirection geom.Vec3
}

// String formats a with handle-based endpoints. For named endpoints use
// Graph.DescribeArc.
func (a Arc) String() string {
	return fmt.Sprintf("#%d to #%d len=%f dir=%s", a.From, a.To, a.Cost, a.StartDirection)
}
