// Package prim holds the 2D geometric primitives consumed by the planar mesh:
// points and vectors, lines, rays, segments, triangles and simple polygons,
// together with the orientation predicates the mesh algorithms are built on.
//
// Points are plain float64 pairs. Predicates are not exact; callers that need
// slack use the tolerance helpers.
package prim

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position in the plane.
type Point = r2.Point

// Vector is a displacement in the plane. It shares its representation with
// Point so that the affine arithmetic of r2 applies to both.
type Vector = r2.Point

// AABB is an axis aligned box given by its min and max corner.
type AABB = r2.Rect

// Tolerance is the default absolute slack for coordinate comparisons.
const Tolerance = 1e-6

// Side classifies a point against a directed line.
type Side int

const (
	// SideOn means the point lies on the line.
	SideOn Side = iota
	// SideLeft means the point is counterclockwise of the direction.
	SideLeft
	// SideRight means the point is clockwise of the direction.
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "on"
	}
}

// Result is the outcome of an intersection query.
type Result int

const (
	// ResultNone means there is no intersection.
	ResultNone Result = iota
	// ResultOne means there is exactly one intersection point.
	ResultOne
	// ResultInfinite means the primitives overlap (coincident lines).
	ResultInfinite
	// ResultInvalid means at least one of the primitives is degenerate.
	ResultInvalid
)

func (r Result) String() string {
	switch r {
	case ResultOne:
		return "one"
	case ResultInfinite:
		return "infinite"
	case ResultInvalid:
		return "invalid"
	default:
		return "none"
	}
}

// Equal compares two scalars within Tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// PointsEqual compares two points coordinate wise within Tolerance.
func PointsEqual(a, b Point) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}

// CircularIndex maps i into [0, n) treating a slice of length n as a ring.
// Unlike the raw modulo operator it never yields negative values.
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// SquaredDistance between two points.
func SquaredDistance(a, b Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// Distance between two points.
func Distance(a, b Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

// BoxCorners returns the corners of a box in counterclockwise order, starting
// at the min corner.
func BoxCorners(box AABB) [4]Point {
	return box.Vertices()
}

// BoundsOf returns the smallest box containing all points. It is empty when
// no points are given.
func BoundsOf(points ...Point) AABB {
	if len(points) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(points...)
}
