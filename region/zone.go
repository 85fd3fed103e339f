// Package region models blocked horizontal areas that navigation wiring
// must avoid. Zones are orb polygons in world coordinates: element 0 of a
// point is the north (X) coordinate and element 1 the east (Z) coordinate.
// A Set indexes its zones in an R-tree so containment and segment
// feasibility checks only visit zones whose bounding boxes qualify.
package region

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"navgraph/geom"
)

// Zone is one named blocked area.
type Zone struct {
	Name    string
	Polygon orb.Polygon
}

// Set holds zones behind a bounding-box index. A nil Set blocks nothing.
type Set struct {
	zones []Zone
	tree  *rtreego.Rtree
}

type zoneEntry struct {
	index int
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *zoneEntry) Bounds() rtreego.Rect { return e.rect }

// NewSet returns a Set over the given zones.
func NewSet(zones ...Zone) *Set {
	s := &Set{zones: zones}
	s.rebuild()
	return s
}

func (s *Set) rebuild() {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range s.zones {
		rect, ok := boundRect(s.zones[i].Polygon)
		if !ok {
			continue
		}
		tree.Insert(&zoneEntry{index: i, rect: rect})
	}
	s.tree = tree
}

// Len returns the number of zones.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.zones)
}

// Zones returns the zones in load order. The polygons are shared, not
// copied; treat them as read-only.
func (s *Set) Zones() []Zone {
	if s == nil {
		return nil
	}
	return append([]Zone(nil), s.zones...)
}

// Contains reports whether the position lies inside any zone.
func (s *Set) Contains(p geom.Vec3) bool {
	if s == nil {
		return false
	}
	point := pointOf(p)
	for _, index := range s.candidates(pointRect(point)) {
		if planar.PolygonContains(s.zones[index].Polygon, point) {
			return true
		}
	}
	return false
}

// Blocks reports whether the straight horizontal segment between two
// positions enters or crosses any zone. Both endpoints, the midpoint, and
// every boundary edge of each candidate zone are checked.
func (s *Set) Blocks(from, to geom.Vec3) bool {
	if s == nil {
		return false
	}
	a := pointOf(from)
	b := pointOf(to)
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	for _, index := range s.candidates(segmentRect(a, b)) {
		polygon := s.zones[index].Polygon
		if planar.PolygonContains(polygon, a) ||
			planar.PolygonContains(polygon, b) ||
			planar.PolygonContains(polygon, mid) {
			return true
		}
		for _, ring := range polygon {
			if ringCrossed(ring, a, b) {
				return true
			}
		}
	}
	return false
}

// Simplify reduces every zone outline with Douglas-Peucker at the given
// tolerance and reindexes the set. The tolerance must not be negative.
func (s *Set) Simplify(tolerance float64) error {
	if !(tolerance >= 0) {
		return fmt.Errorf("region: negative tolerance %f", tolerance)
	}
	simplifier := simplify.DouglasPeucker(tolerance)
	for i := range s.zones {
		s.zones[i].Polygon = simplifier.Polygon(s.zones[i].Polygon)
	}
	s.rebuild()
	return nil
}

func (s *Set) candidates(query rtreego.Rect) []int {
	results := s.tree.SearchIntersect(query)
	indexes := make([]int, 0, len(results))
	for _, item := range results {
		indexes = append(indexes, item.(*zoneEntry).index)
	}
	return indexes
}

func pointOf(v geom.Vec3) orb.Point {
	return orb.Point{float64(v.X), float64(v.Z)}
}
