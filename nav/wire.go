package nav

import (
	"fmt"
	"math/rand"

	"navgraph/geom"
)

// Blocker rejects node positions and straight horizontal segments that are
// infeasible, such as points inside a restricted region.
type Blocker interface {
	// Contains reports whether the position lies inside a blocked region.
	Contains(p geom.Vec3) bool
	// Blocks reports whether the segment from one position to another
	// crosses or enters a blocked region.
	Blocks(from, to geom.Vec3) bool
}

// CostFunc computes the cost of an arc between two placed nodes. It must
// return a strictly positive value.
type CostFunc func(from, to Node) float32

// ConnectOptions adjust how ConnectWithinRadius wires arcs.
type ConnectOptions struct {
	// Bidirectional also adds the reverse arc of every connection.
	Bidirectional bool
	// Blocked drops connections whose segment it rejects. Nil blocks
	// nothing.
	Blocked Blocker
	// Cost computes arc costs. Nil means horizontal distance.
	Cost CostFunc
}

// Bounds is an axis-aligned horizontal region for node placement.
type Bounds struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

func (b Bounds) valid() bool {
	return b.MaxX >= b.MinX && b.MaxZ >= b.MinZ
}

// Scatter adds up to n nodes at random positions inside b, rejecting
// positions inside blocked regions, and returns the handles of the nodes it
// placed. Placement gives up after 10n attempts, returning the nodes placed
// so far along with an error. The rng must not be nil; nodes are placed at
// elevation zero.
func (g *Graph) Scatter(n int, b Bounds, rng *rand.Rand, blocked Blocker) ([]NodeID, error) {
	if g.frozen {
		return nil, ErrFrozen
	}
	if !b.valid() {
		return nil, fmt.Errorf("nav: invalid bounds %+v", b)
	}
	if n <= 0 {
		return nil, nil
	}

	placed := make([]NodeID, 0, n)
	maxAttempts := 10 * n
	for attempt := 0; attempt < maxAttempts && len(placed) < n; attempt++ {
		p := geom.Vec3{
			X: b.MinX + rng.Float32()*(b.MaxX-b.MinX),
			Z: b.MinZ + rng.Float32()*(b.MaxZ-b.MinZ),
		}
		if blocked != nil && blocked.Contains(p) {
			continue
		}
		id, err := g.AddNode("", p)
		if err != nil {
			return placed, err
		}
		placed = append(placed, id)
	}
	if len(placed) < n {
		return placed, fmt.Errorf("nav: placed %d of %d nodes before giving up", len(placed), n)
	}
	return placed, nil
}

// ConnectWithinRadius adds arcs between every pair of nodes whose
// horizontal separation is at most radius, skipping pairs whose segment is
// blocked or whose positions coincide. It returns how many arcs were added
// and how many candidate connections were skipped. The graph must still be
// under construction.
func (g *Graph) ConnectWithinRadius(radius float32, opt ConnectOptions) (added, skipped int, err error) {
	if g.frozen {
		return 0, 0, ErrFrozen
	}
	if !(radius > 0) {
		return 0, 0, fmt.Errorf("nav: connect radius must be positive, got %f", radius)
	}
	cost := opt.Cost
	if cost == nil {
		cost = func(from, to Node) float32 {
			return horizontalDistance(from.Position, to.Position)
		}
	}

	// Pairs are scanned once; the reverse arc is wired in the same step.
	count := len(g.nodes)
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			from := g.nodes[i]
			to := g.nodes[j]
			if horizontalDistance(from.Position, to.Position) > radius {
				continue
			}
			if opt.Blocked != nil && opt.Blocked.Blocks(from.Position, to.Position) {
				skipped++
				continue
			}
			direction := to.Position.Sub(from.Position).Normalize()
			if direction.IsZero() {
				skipped++
				continue
			}
			if _, err := g.AddArc(from.ID, to.ID, cost(from, to), direction); err != nil {
				return added, skipped, fmt.Errorf("connect %s to %s: %w", from.Label(), to.Label(), err)
			}
			added++
			if !opt.Bidirectional {
				continue
			}
			back := from.Position.Sub(to.Position).Normalize()
			if _, err := g.AddArc(to.ID, from.ID, cost(to, from), back); err != nil {
				return added, skipped, fmt.Errorf("connect %s to %s: %w", to.Label(), from.Label(), err)
			}
			added++
		}
	}
	return added, skipped, nil
}
