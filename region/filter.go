package region

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// FilterContained drops zones that lie entirely inside another zone, which
// keeps redundant areas out of the index. When two zones contain each other
// the earlier one is kept.
func FilterContained(zones []Zone) []Zone {
	kept := make([]Zone, 0, len(zones))
	for i := range zones {
		if !containedByAnother(zones, i) {
			kept = append(kept, zones[i])
		}
	}
	return kept
}

func containedByAnother(zones []Zone, i int) bool {
	for j := range zones {
		if j == i {
			continue
		}
		if !polygonInside(zones[i].Polygon, zones[j].Polygon) {
			continue
		}
		if j > i && polygonInside(zones[j].Polygon, zones[i].Polygon) {
			continue
		}
		return true
	}
	return false
}

// polygonInside reports whether every outer-ring vertex of inner lies
// inside outer, with a bounding-box pre-check.
func polygonInside(inner, outer orb.Polygon) bool {
	if len(inner) == 0 || len(inner[0]) == 0 || len(outer) == 0 {
		return false
	}
	outerBound := outer.Bound()
	innerBound := inner.Bound()
	if !outerBound.Contains(innerBound.Min) || !outerBound.Contains(innerBound.Max) {
		return false
	}
	for _, vertex := range inner[0] {
		if !planar.PolygonContains(outer, vertex) {
			return false
		}
	}
	return true
}
