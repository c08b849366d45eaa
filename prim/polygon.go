package prim

import "math"

// SimplePolygon2D is a closed chain of vertices. The closing edge from the
// last vertex back to the first is implicit.
type SimplePolygon2D struct {
	Points []Point
}

// Len is the number of vertices.
func (poly SimplePolygon2D) Len() int {
	return len(poly.Points)
}

// At returns vertex i, wrapping around in both directions.
func (poly SimplePolygon2D) At(i int) Point {
	return poly.Points[CircularIndex(i, len(poly.Points))]
}

// Edge returns the segment from vertex i to vertex i+1.
func (poly SimplePolygon2D) Edge(i int) LineSegment2D {
	return LineSegment2D{Tail: poly.At(i), Head: poly.At(i + 1)}
}

// SignedArea is positive for counterclockwise polygons.
func (poly SimplePolygon2D) SignedArea() float64 {
	var sum float64
	for i, p := range poly.Points {
		q := poly.At(i + 1)
		sum += p.Cross(q)
	}
	return sum / 2
}

func (poly SimplePolygon2D) Area() float64 {
	return math.Abs(poly.SignedArea())
}

func (poly SimplePolygon2D) IsCCW() bool {
	return poly.SignedArea() > 0
}

// Centroid is the area centroid. Degenerate polygons fall back to the mean of
// their vertices.
func (poly SimplePolygon2D) Centroid() Point {
	var cx, cy, twiceArea float64
	for i, p := range poly.Points {
		q := poly.At(i + 1)
		cross := p.Cross(q)
		twiceArea += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	if twiceArea == 0 {
		var mean Point
		for _, p := range poly.Points {
			mean = mean.Add(p)
		}
		return mean.Mul(1 / float64(len(poly.Points)))
	}
	return Point{X: cx / (3 * twiceArea), Y: cy / (3 * twiceArea)}
}

// ContainsPointByEvenOdd is the even-odd point in polygon test.
func (poly SimplePolygon2D) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// CrossingCount counts the polygon edges crossed by a horizontal ray from p
// towards +X. Vertices at the same height as p are treated as lying above it,
// so a ray through a vertex is counted once.
func (poly SimplePolygon2D) CrossingCount(p Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.At(i + 1)
		if below(vertex, p) == below(nextVertex, p) {
			continue
		}
		x := vertex.X + (p.Y-vertex.Y)*(nextVertex.X-vertex.X)/(nextVertex.Y-vertex.Y)
		if p.X < x {
			crossingCount++
		}
	}
	return crossingCount
}

func below(a, b Point) bool {
	return a.Y < b.Y
}

// Reverse flips the winding.
func (poly SimplePolygon2D) Reverse() SimplePolygon2D {
	newPoly := SimplePolygon2D{Points: make([]Point, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Bounds is the bounding box of the vertices.
func (poly SimplePolygon2D) Bounds() AABB {
	return BoundsOf(poly.Points...)
}

// PolygonList is a set of polygons interpreted with the even-odd rule, so
// nested polygons act as holes.
type PolygonList []SimplePolygon2D

func (pl PolygonList) ContainsPointByEvenOdd(p Point) bool {
	count := 0
	for _, poly := range pl {
		count += poly.CrossingCount(p)
	}
	return count%2 == 1
}

// Bounds is the bounding box of every vertex in the list.
func (pl PolygonList) Bounds() AABB {
	var pts []Point
	for _, poly := range pl {
		pts = append(pts, poly.Points...)
	}
	return BoundsOf(pts...)
}

// Triangle2D is a triangle given by its three corners.
type Triangle2D struct {
	A, B, C Point
}

func (t Triangle2D) SignedArea() float64 {
	return DoubleTriangleArea(t.A, t.B, t.C) / 2
}

func (t Triangle2D) Area() float64 {
	return math.Abs(t.SignedArea())
}

func (t Triangle2D) IsCCW() bool {
	return t.SignedArea() > 0
}

func (t Triangle2D) Centroid() Point {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3)
}

// Contains is an inclusive containment test for counterclockwise triangles.
func (t Triangle2D) Contains(p Point) bool {
	return WeakCcw(t.A, t.B, p) && WeakCcw(t.B, t.C, p) && WeakCcw(t.C, t.A, p)
}

func (t Triangle2D) Polygon() SimplePolygon2D {
	return SimplePolygon2D{Points: []Point{t.A, t.B, t.C}}
}
