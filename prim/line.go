package prim

import "math"

// parallelTolerance is the relative sine below which two directions are
// treated as parallel.
const parallelTolerance = 1e-12

// Line2D is an infinite line in parametric form: Support + t*Direction.
type Line2D struct {
	Support   Point
	Direction Vector
}

// LineThrough returns the line from a towards b.
func LineThrough(a, b Point) Line2D {
	return Line2D{Support: a, Direction: b.Sub(a)}
}

// Point evaluates the line at parameter t.
func (l Line2D) Point(t float64) Point {
	return l.Support.Add(l.Direction.Mul(t))
}

// T is the parameter of the orthogonal projection of p onto the line.
func (l Line2D) T(p Point) float64 {
	return p.Sub(l.Support).Dot(l.Direction) / l.Direction.Dot(l.Direction)
}

// Project returns the point of the line closest to p.
func (l Line2D) Project(p Point) Point {
	return l.Point(l.T(p))
}

// Equation is the unnormalized signed distance of p: positive on the left.
func (l Line2D) Equation(p Point) float64 {
	return l.Direction.Cross(p.Sub(l.Support))
}

// Distance is the unsigned distance from p to the line.
func (l Line2D) Distance(p Point) float64 {
	return math.Abs(l.Equation(p)) / l.Direction.Norm()
}

// Classify tells on which side of the directed line p lies, without slack.
func (l Line2D) Classify(p Point) Side {
	eq := l.Equation(p)
	switch {
	case eq > 0:
		return SideLeft
	case eq < 0:
		return SideRight
	}
	return SideOn
}

// ClassifyTolerant is Classify with an absolute distance slack.
func (l Line2D) ClassifyTolerant(p Point, tolerance float64) Side {
	eq := l.Equation(p)
	if math.Abs(eq) <= tolerance*l.Direction.Norm() {
		return SideOn
	}
	if eq > 0 {
		return SideLeft
	}
	return SideRight
}

// IsDegenerate reports a zero direction.
func (l Line2D) IsDegenerate() bool {
	return l.Direction.X == 0 && l.Direction.Y == 0
}

// IntersectLines intersects two lines. On ResultOne, tA and tB are the
// parameters of the intersection point on a and b respectively.
func IntersectLines(a, b Line2D) (result Result, tA, tB float64) {
	if a.IsDegenerate() || b.IsDegenerate() {
		return ResultInvalid, 0, 0
	}
	denom := a.Direction.Cross(b.Direction)
	delta := b.Support.Sub(a.Support)
	if math.Abs(denom) <= parallelTolerance*a.Direction.Norm()*b.Direction.Norm() {
		if math.Abs(delta.Cross(a.Direction)) <= parallelTolerance*a.Direction.Norm()*math.Max(delta.Norm(), 1) {
			return ResultInfinite, 0, 0
		}
		return ResultNone, 0, 0
	}
	return ResultOne, delta.Cross(b.Direction) / denom, delta.Cross(a.Direction) / denom
}

// Ray2D is a half line starting at Support.
type Ray2D struct {
	Support   Point
	Direction Vector
}

// Point evaluates the ray at parameter t. Only t >= 0 lies on the ray.
func (r Ray2D) Point(t float64) Point {
	return r.Support.Add(r.Direction.Mul(t))
}

// T is the parameter of the projection of p onto the ray's supporting line.
func (r Ray2D) T(p Point) float64 {
	return r.Line().T(p)
}

// Line is the supporting line of the ray.
func (r Ray2D) Line() Line2D {
	return Line2D{Support: r.Support, Direction: r.Direction}
}

// Classify tells on which side of the ray's supporting line p lies.
func (r Ray2D) Classify(p Point) Side {
	return r.Line().Classify(p)
}

// LineSegment2D is the closed segment from Tail to Head.
type LineSegment2D struct {
	Tail, Head Point
}

// Vector is Head - Tail.
func (s LineSegment2D) Vector() Vector {
	return s.Head.Sub(s.Tail)
}

// Length of the segment.
func (s LineSegment2D) Length() float64 {
	return s.Vector().Norm()
}

// Point evaluates the segment at t, with t in [0, 1] between Tail and Head.
func (s LineSegment2D) Point(t float64) Point {
	return s.Tail.Add(s.Vector().Mul(t))
}

// T is the parameter of the projection of p on the supporting line.
func (s LineSegment2D) T(p Point) float64 {
	return s.Line().T(p)
}

// Line is the supporting line, directed from Tail to Head.
func (s LineSegment2D) Line() Line2D {
	return LineThrough(s.Tail, s.Head)
}

// Ray is the ray from Tail through Head.
func (s LineSegment2D) Ray() Ray2D {
	return Ray2D{Support: s.Tail, Direction: s.Vector()}
}

// Reverse swaps Tail and Head.
func (s LineSegment2D) Reverse() LineSegment2D {
	return LineSegment2D{Tail: s.Head, Head: s.Tail}
}

// Intersect finds the crossing point of two closed segments. Overlapping
// collinear segments yield ResultInfinite.
func (s LineSegment2D) Intersect(other LineSegment2D) (Result, Point) {
	result, tA, tB := IntersectLines(s.Line(), other.Line())
	switch result {
	case ResultOne:
		if tA < 0 || tA > 1 || tB < 0 || tB > 1 {
			return ResultNone, Point{}
		}
		return ResultOne, s.Point(tA)
	case ResultInfinite:
		a, b := s.T(other.Tail), s.T(other.Head)
		if math.Max(a, b) < 0 || math.Min(a, b) > 1 {
			return ResultNone, Point{}
		}
		return ResultInfinite, Point{}
	}
	return result, Point{}
}
