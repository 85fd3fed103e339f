package region

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent pads degenerate bounding boxes; the R-tree rejects zero-length
// sides.
const minExtent = 1e-9

func boundRect(polygon orb.Polygon) (rtreego.Rect, bool) {
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return rtreego.Rect{}, false
	}
	bound := polygon.Bound()
	return rectFor(bound.Min, bound.Max), true
}

func pointRect(p orb.Point) rtreego.Rect {
	return rectFor(p, p)
}

func segmentRect(a, b orb.Point) rtreego.Rect {
	lo := orb.Point{min(a[0], b[0]), min(a[1], b[1])}
	hi := orb.Point{max(a[0], b[0]), max(a[1], b[1])}
	return rectFor(lo, hi)
}

func rectFor(lo, hi orb.Point) rtreego.Rect {
	lengths := []float64{hi[0] - lo[0], hi[1] - lo[1]}
	for i := range lengths {
		if lengths[i] < minExtent {
			lengths[i] = minExtent
		}
	}
	// NewRect only fails on non-positive lengths, which the padding rules out.
	rect, err := rtreego.NewRect(rtreego.Point{lo[0], lo[1]}, lengths)
	if err != nil {
		return rtreego.Rect{}
	}
	return rect
}

// ringCrossed reports whether the segment from a to b intersects any edge
// of the ring. Rings may arrive unclosed from hand-built zones; the closing
// edge is checked either way.
func ringCrossed(ring orb.Ring, a, b orb.Point) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	for i := 0; i+1 < n; i++ {
		if segmentsIntersect(a, b, ring[i], ring[i+1]) {
			return true
		}
	}
	if ring[0] != ring[n-1] && segmentsIntersect(a, b, ring[n-1], ring[0]) {
		return true
	}
	return false
}

// segmentsIntersect reports whether segment (p1, q1) intersects segment
// (p2, q2), including collinear overlap and shared endpoints.
func segmentsIntersect(p1, q1, p2, q2 orb.Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// orientation classifies the ordered triplet: 0 collinear, 1 clockwise,
// 2 counter-clockwise.
func orientation(p, q, r orb.Point) int {
	val := (q[1]-p[1])*(r[0]-q[0]) - (q[0]-p[0])*(r[1]-q[1])
	switch {
	case val > 0:
		return 1
	case val < 0:
		return 2
	}
	return 0
}

// onSegment reports whether q lies on segment (p, r), assuming the three
// points are collinear.
func onSegment(p, q, r orb.Point) bool {
	return q[0] <= max(p[0], r[0]) && q[0] >= min(p[0], r[0]) &&
		q[1] <= max(p[1], r[1]) && q[1] >= min(p[1], r[1])
}
