// Package geometry provides the 2D primitives shared by the costmap and
// clearing packages: rotation about a pivot and polygon containment.
//
// Points are orb.Point values. A point is either a world-frame coordinate
// (metres) or a grid-frame coordinate (cell indices); the two are never
// mixed within one polygon.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// RotateAround rotates p about pivot by yaw radians (counter-clockwise).
func RotateAround(pivot, p orb.Point, yaw float64) orb.Point {
	sin, cos := math.Sincos(yaw)
	dx := p.X() - pivot.X()
	dy := p.Y() - pivot.Y()
	return orb.Point{
		pivot.X() + dx*cos - dy*sin,
		pivot.Y() + dx*sin + dy*cos,
	}
}

// PointInRing reports whether p lies inside the ring using ray casting.
// The ring does not need to be closed (last vertex equal to first) and the
// result is independent of winding order. Rings with fewer than three
// vertices contain nothing.
func PointInRing(p orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	count := 0
	for i := 0; i < n; i++ {
		v1 := ring[i]
		v2 := ring[(i+1)%n]

		// Count edges crossed by the horizontal ray from p to the right.
		if (v1.Y() > p.Y()) != (v2.Y() > p.Y()) {
			slope := (p.X()-v1.X())*(v2.Y()-v1.Y()) - (v2.X()-v1.X())*(p.Y()-v1.Y())
			if v2.Y() > v1.Y() {
				if slope > 0 {
					count++
				}
			} else {
				if slope < 0 {
					count++
				}
			}
		}
	}

	return count%2 == 1
}
