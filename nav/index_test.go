package nav

import (
	"errors"
	"testing"

	"navgraph/geom"
)

func gridGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	mustNode(t, g, "origin", geom.V(0, 0, 0))
	mustNode(t, g, "east", geom.V(0, 0, 10))
	mustNode(t, g, "north", geom.V(10, 0, 0))
	mustNode(t, g, "far", geom.V(10, 0, 10))
	return g
}

func TestSpatialQueriesRequireFreeze(t *testing.T) {
	g := gridGraph(t)
	if _, _, err := g.NearestNode(geom.Zero); !errors.Is(err, ErrNotFrozen) {
		t.Errorf("NearestNode: err %v, want ErrNotFrozen", err)
	}
	if _, err := g.NearestNodes(geom.Zero, 2); !errors.Is(err, ErrNotFrozen) {
		t.Errorf("NearestNodes: err %v, want ErrNotFrozen", err)
	}
	if _, err := g.NodesWithin(geom.Zero, 1); !errors.Is(err, ErrNotFrozen) {
		t.Errorf("NodesWithin: err %v, want ErrNotFrozen", err)
	}
}

func TestNearestNode(t *testing.T) {
	g := gridGraph(t)
	g.Freeze()

	id, dist, err := g.NearestNode(geom.V(2, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("nearest: got node %d, want 0", id)
	}
	// Elevation is ignored; the distance is horizontal.
	if !near(dist, 2.236068) {
		t.Errorf("distance: got %v, want sqrt(5)", dist)
	}

	id, _, err = g.NearestNode(geom.V(9, 0, 8))
	if err != nil {
		t.Fatal(err)
	}
	if id != 3 {
		t.Errorf("nearest: got node %d, want 3", id)
	}
}

func TestNearestNodeEmpty(t *testing.T) {
	g := New()
	g.Freeze()
	if _, _, err := g.NearestNode(geom.Zero); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("err %v, want ErrEmptyGraph", err)
	}
}

func TestNearestNodes(t *testing.T) {
	g := gridGraph(t)
	g.Freeze()

	ids, err := g.NearestNodes(geom.V(1, 0, 1), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 0 {
		t.Errorf("two nearest to the origin corner: got %v", ids)
	}

	ids, err = g.NearestNodes(geom.Zero, 0)
	if err != nil || ids != nil {
		t.Errorf("k=0: got %v, %v; want nil, nil", ids, err)
	}

	ids, err = g.NearestNodes(geom.Zero, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 4 {
		t.Errorf("k beyond size: got %d handles, want 4", len(ids))
	}
}

func TestNodesWithin(t *testing.T) {
	g := gridGraph(t)
	g.Freeze()

	ids, err := g.NodesWithin(geom.V(0, 0, 0), 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Fatalf("radius 12: got %v, want nodes 0, 1, 2", ids)
	}
	for i, want := range []NodeID{0, 1, 2} {
		if ids[i] != want {
			t.Errorf("handle order: got %v", ids)
			break
		}
	}

	ids, err = g.NodesWithin(geom.V(0, 3, 0), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 0 {
		t.Errorf("radius 0 at a node: got %v, want [0]", ids)
	}

	if _, err := g.NodesWithin(geom.Zero, -1); err == nil {
		t.Error("negative radius accepted")
	}
}
