package nav

import (
	"errors"
	"math"
	"strings"
	"testing"

	"navgraph/geom"
	"navgraph/planar"
)

func mustNode(t *testing.T, g *Graph, name string, p geom.Vec3) NodeID {
	t.Helper()
	id, err := g.AddNode(name, p)
	if err != nil {
		t.Fatalf("AddNode(%s): %v", name, err)
	}
	return id
}

func TestAddArcContract(t *testing.T) {
	g := New()
	a := mustNode(t, g, "A", geom.V(0, 0, 0))
	b := mustNode(t, g, "B", geom.V(5, 0, 0))

	cases := []struct {
		name string
		from NodeID
		to   NodeID
		cost float32
		dir  geom.Vec3
		want error
	}{
		{"self loop", a, a, 1, geom.UnitX, ErrSelfLoop},
		{"zero cost", a, b, 0, geom.UnitX, ErrNonPositiveCost},
		{"negative cost", a, b, -2, geom.UnitX, ErrNonPositiveCost},
		{"nan cost", a, b, float32(math.NaN()), geom.UnitX, ErrNonPositiveCost},
		{"direction too long", a, b, 1, geom.V(2, 0, 0), ErrNonUnitDirection},
		{"zero direction", a, b, 1, geom.Zero, ErrNonUnitDirection},
		{"bad origin", -1, b, 1, geom.UnitX, ErrNodeNotFound},
		{"bad destination", a, 99, 1, geom.UnitX, ErrNodeNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := g.AddArc(c.from, c.to, c.cost, c.dir); !errors.Is(err, c.want) {
				t.Errorf("err %v, want %v", err, c.want)
			}
		})
	}
	if g.NumArcs() != 0 {
		t.Fatalf("rejected arcs were stored: %d arcs", g.NumArcs())
	}

	// A direction within tolerance of unit length is accepted.
	if _, err := g.AddArc(a, b, 1, geom.V(1.00001, 0, 0)); err != nil {
		t.Fatalf("near-unit direction rejected: %v", err)
	}
}

func TestGraphScenario(t *testing.T) {
	g := New()
	a := mustNode(t, g, "A", geom.V(0, 0, 0))
	b := mustNode(t, g, "B", geom.V(5, 0, 0))
	c := mustNode(t, g, "C", geom.V(5, 0, 3))

	ab, err := g.AddArc(a, b, 5, geom.UnitX)
	if err != nil {
		t.Fatal(err)
	}
	bc, err := g.AddArc(b, c, 3, geom.UnitZ)
	if err != nil {
		t.Fatal(err)
	}

	arc, err := g.Arc(ab)
	if err != nil {
		t.Fatal(err)
	}
	if arc.Cost != 5 {
		t.Errorf("A to B cost: got %v, want 5", arc.Cost)
	}
	if az := planar.FromVec3(arc.StartDirection).Azimuth(); az != 0 {
		t.Errorf("A to B azimuth: got %v, want 0", az)
	}

	arc, err = g.Arc(bc)
	if err != nil {
		t.Fatal(err)
	}
	if az := planar.FromVec3(arc.StartDirection).Azimuth(); !near(az, math.Pi/2) {
		t.Errorf("B to C azimuth: got %v, want pi/2", az)
	}

	out, err := g.ArcsFrom(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != ab {
		t.Errorf("ArcsFrom(A): got %v, want [%d]", out, ab)
	}

	line, err := g.DescribeArc(ab)
	if err != nil {
		t.Fatal(err)
	}
	if line != "A to B len=5.000000 dir=(1, 0, 0)" {
		t.Errorf("DescribeArc: got %q", line)
	}
}

func TestParallelArcs(t *testing.T) {
	g := New()
	a := mustNode(t, g, "A", geom.V(0, 0, 0))
	b := mustNode(t, g, "B", geom.V(1, 0, 0))

	first, err := g.AddArc(a, b, 1, geom.UnitX)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.AddArc(a, b, 2.5, geom.UnitZ)
	if err != nil {
		t.Fatalf("parallel arc rejected: %v", err)
	}
	if first == second {
		t.Fatal("parallel arcs share a handle")
	}
	out, _ := g.ArcsFrom(a)
	if len(out) != 2 {
		t.Fatalf("ArcsFrom: got %d arcs, want 2", len(out))
	}
}

func TestFreeze(t *testing.T) {
	g := New()
	a := mustNode(t, g, "A", geom.V(0, 0, 0))
	b := mustNode(t, g, "B", geom.V(1, 0, 0))
	if _, err := g.AddArc(a, b, 1, geom.UnitX); err != nil {
		t.Fatal(err)
	}

	if g.Frozen() {
		t.Fatal("new graph reports frozen")
	}
	g.Freeze()
	g.Freeze() // idempotent
	if !g.Frozen() {
		t.Fatal("graph not frozen after Freeze")
	}

	if _, err := g.AddNode("C", geom.V(2, 0, 0)); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddNode after freeze: err %v, want ErrFrozen", err)
	}
	if _, err := g.AddArc(b, a, 1, geom.UnitX.Negate()); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddArc after freeze: err %v, want ErrFrozen", err)
	}

	// Reads still work when frozen.
	if _, err := g.Node(a); err != nil {
		t.Errorf("Node after freeze: %v", err)
	}
	if got := g.NumNodes(); got != 2 {
		t.Errorf("NumNodes: got %d, want 2", got)
	}
}

func TestAccessorCopies(t *testing.T) {
	g := New()
	a := mustNode(t, g, "A", geom.V(1, 2, 3))
	b := mustNode(t, g, "B", geom.V(4, 5, 6))
	id, err := g.AddArc(a, b, 2, geom.UnitZ)
	if err != nil {
		t.Fatal(err)
	}

	node, _ := g.Node(a)
	node.Position = geom.V(-9, -9, -9)
	node.Name = "tampered"
	arc, _ := g.Arc(id)
	arc.Cost = -1
	arc.StartDirection = geom.Zero

	fresh, _ := g.Node(a)
	if fresh.Position != geom.V(1, 2, 3) || fresh.Name != "A" {
		t.Error("mutating a returned node reached graph state")
	}
	freshArc, _ := g.Arc(id)
	if freshArc.Cost != 2 || freshArc.StartDirection != geom.UnitZ {
		t.Error("mutating a returned arc reached graph state")
	}

	out, _ := g.ArcsFrom(a)
	out[0] = 99
	again, _ := g.ArcsFrom(a)
	if again[0] != id {
		t.Error("mutating a returned arc list reached graph state")
	}
}

func TestLookupErrors(t *testing.T) {
	g := New()
	if _, err := g.Node(0); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Node on empty graph: err %v, want ErrNodeNotFound", err)
	}
	if _, err := g.Arc(0); !errors.Is(err, ErrArcNotFound) {
		t.Errorf("Arc on empty graph: err %v, want ErrArcNotFound", err)
	}
	if _, err := g.ArcsFrom(3); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("ArcsFrom: err %v, want ErrNodeNotFound", err)
	}
	if _, err := g.DescribeArc(-1); !errors.Is(err, ErrArcNotFound) {
		t.Errorf("DescribeArc: err %v, want ErrArcNotFound", err)
	}
}

func TestDescribe(t *testing.T) {
	g := New()
	a := mustNode(t, g, "dock", geom.V(0, 0, 0))
	mustNode(t, g, "", geom.V(1, 0, 0))
	if _, err := g.AddArc(a, 1, 1, geom.UnitX); err != nil {
		t.Fatal(err)
	}
	g.Freeze()

	var sb strings.Builder
	if err := g.Describe(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"graph (frozen): 2 nodes, 1 arcs",
		"dock at (0, 0, 0)",
		"node#1 at (1, 0, 0)",
		"dock to node#1 len=1.000000 dir=(1, 0, 0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe output missing %q:\n%s", want, out)
		}
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) <= 1e-5
}
