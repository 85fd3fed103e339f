package nav

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"navgraph/geom"
	"navgraph/planar"
)

// pointExtent pads node positions into the small boxes the R-tree requires.
const pointExtent = 1e-6

type nodeEntry struct {
	id   NodeID
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *nodeEntry) Bounds() rtreego.Rect { return e.rect }

// nodeIndex answers horizontal proximity queries over node positions.
type nodeIndex struct {
	tree *rtreego.Rtree
}

func newNodeIndex(nodes []Node) *nodeIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range nodes {
		p := nodes[i].Position
		rect := rtreego.Point{float64(p.X), float64(p.Z)}.ToRect(pointExtent)
		tree.Insert(&nodeEntry{id: NodeID(i), rect: rect})
	}
	return &nodeIndex{tree: tree}
}

// NearestNode returns the node whose position is horizontally closest to p,
// together with the horizontal distance. The graph must be frozen and
// non-empty.
func (g *Graph) NearestNode(p geom.Vec3) (NodeID, float32, error) {
	if !g.frozen {
		return 0, 0, ErrNotFrozen
	}
	if len(g.nodes) == 0 {
		return 0, 0, ErrEmptyGraph
	}
	query := rtreego.Point{float64(p.X), float64(p.Z)}
	entry := g.index.tree.NearestNeighbor(query).(*nodeEntry)
	return entry.id, horizontalDistance(p, g.nodes[entry.id].Position), nil
}

// NearestNodes returns the handles of up to k nodes closest to p,
// horizontally, nearest first. The graph must be frozen.
func (g *Graph) NearestNodes(p geom.Vec3, k int) ([]NodeID, error) {
	if !g.frozen {
		return nil, ErrNotFrozen
	}
	if k <= 0 {
		return nil, nil
	}
	query := rtreego.Point{float64(p.X), float64(p.Z)}
	results := g.index.tree.NearestNeighbors(k, query)
	ids := make([]NodeID, 0, len(results))
	for _, item := range results {
		if item == nil {
			continue
		}
		ids = append(ids, item.(*nodeEntry).id)
	}
	return ids, nil
}

// NodesWithin returns the handles of all nodes within the given horizontal
// radius of center, in handle order. The graph must be frozen.
func (g *Graph) NodesWithin(center geom.Vec3, radius float32) ([]NodeID, error) {
	if !g.frozen {
		return nil, ErrNotFrozen
	}
	if !(radius >= 0) {
		return nil, fmt.Errorf("nav: negative radius %f", radius)
	}
	extent := float64(radius)
	if extent < pointExtent {
		extent = pointExtent
	}
	query := rtreego.Point{float64(center.X), float64(center.Z)}.ToRect(extent)
	var ids []NodeID
	for _, item := range g.index.tree.SearchIntersect(query) {
		entry := item.(*nodeEntry)
		if horizontalDistance(center, g.nodes[entry.id].Position) <= radius {
			ids = append(ids, entry.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// horizontalDistance measures the XZ-plane distance between two positions.
func horizontalDistance(a, b geom.Vec3) float32 {
	return planar.FromVec3(b.Sub(a)).Length()
}
