package planarmesh

import (
	"math"

	"github.com/cocamware/lass-sub002/internal/dbg"
	"github.com/cocamware/lass-sub002/prim"
)

// Org is the position of the origin of e.
func (m *PlanarMesh[P, E, F]) Org(e Edge) prim.Point {
	m.checkPrimary(e)
	return m.org(e)
}

// Dest is the position of the destination of e.
func (m *PlanarMesh[P, E, F]) Dest(e Edge) prim.Point {
	m.checkPrimary(e)
	return m.dest(e)
}

func (m *PlanarMesh[P, E, F]) ONext(e Edge) Edge { return m.edges.ONext(e) }
func (m *PlanarMesh[P, E, F]) OPrev(e Edge) Edge { return m.edges.OPrev(e) }
func (m *PlanarMesh[P, E, F]) DNext(e Edge) Edge { return m.edges.DNext(e) }
func (m *PlanarMesh[P, E, F]) DPrev(e Edge) Edge { return m.edges.DPrev(e) }
func (m *PlanarMesh[P, E, F]) LNext(e Edge) Edge { return m.edges.LNext(e) }
func (m *PlanarMesh[P, E, F]) LPrev(e Edge) Edge { return m.edges.LPrev(e) }
func (m *PlanarMesh[P, E, F]) RNext(e Edge) Edge { return m.edges.RNext(e) }
func (m *PlanarMesh[P, E, F]) RPrev(e Edge) Edge { return m.edges.RPrev(e) }

// IsConstrained reports whether e is a constraint. Boundary edges are always
// constrained.
func (m *PlanarMesh[P, E, F]) IsConstrained(e Edge) bool {
	return m.edges.IsConstrained(e)
}

// IsFaceConstrained reports whether the faces on both sides of e carry
// different handles.
func (m *PlanarMesh[P, E, F]) IsFaceConstrained(e Edge) bool {
	return m.edges.IsFaceConstrained(e)
}

// HasLeftFace reports whether the face left of e lies inside the boundary.
func (m *PlanarMesh[P, E, F]) HasLeftFace(e Edge) bool {
	m.checkPrimary(e)
	return m.hasLeftFace(e)
}

func (m *PlanarMesh[P, E, F]) HasRightFace(e Edge) bool {
	m.checkPrimary(e)
	return m.hasRightFace(e)
}

// Triangle returns the left face of e as a triangle. It fails if that face
// does not have exactly three edges.
func (m *PlanarMesh[P, E, F]) Triangle(e Edge) (tri prim.Triangle2D, err error) {
	defer catch(&err)
	m.checkPrimary(e)
	if n := m.chainOrder(e); n != 3 {
		return prim.Triangle2D{}, newError(ErrInvariant, "face left of %v has %d edges", e, n)
	}
	next := m.edges.LNext(e)
	return prim.Triangle2D{A: m.org(e), B: m.org(next), C: m.dest(next)}, nil
}

// Polygon returns the corners of the left face of e, starting at org(e).
func (m *PlanarMesh[P, E, F]) Polygon(e Edge) prim.SimplePolygon2D {
	m.checkPrimary(e)
	return m.facePolygon(m.edges.LeftRing(e))
}

func (m *PlanarMesh[P, E, F]) facePolygon(ring []Edge) prim.SimplePolygon2D {
	points := make([]prim.Point, len(ring))
	for i, f := range ring {
		points[i] = m.org(f)
	}
	return prim.SimplePolygon2D{Points: points}
}

// RightOf reports whether p lies strictly right of the line through e.
func (m *PlanarMesh[P, E, F]) RightOf(p prim.Point, e Edge) bool {
	m.checkPrimary(e)
	return m.rightOf(p, e)
}

// LeftOf reports whether p lies strictly left of the line through e.
func (m *PlanarMesh[P, E, F]) LeftOf(p prim.Point, e Edge) bool {
	m.checkPrimary(e)
	return m.leftOf(p, e)
}

// OnEdge reports whether p lies on the closed segment of e, within the
// relative tolerance of the mesh.
func (m *PlanarMesh[P, E, F]) OnEdge(p prim.Point, e Edge) bool {
	m.checkPrimary(e)
	return m.onEdge(p, e)
}

// InConvexCell reports whether p lies inside or on the left face of e,
// assuming that face is convex.
func (m *PlanarMesh[P, E, F]) InConvexCell(p prim.Point, e Edge) bool {
	m.checkPrimary(e)
	return m.inConvexCell(p, e)
}

func (m *PlanarMesh[P, E, F]) rightOf(p prim.Point, e Edge) bool {
	return prim.Ccw(p, m.dest(e), m.org(e))
}

func (m *PlanarMesh[P, E, F]) leftOf(p prim.Point, e Edge) bool {
	return prim.Ccw(p, m.org(e), m.dest(e))
}

func (m *PlanarMesh[P, E, F]) onEdge(p prim.Point, e Edge) bool {
	o, d := m.org(e), m.dest(e)
	if p == o || p == d {
		return true
	}
	return m.onSegment(p, o, d)
}

// onSegment is the tolerant closed segment test: the area spanned with the
// segment must vanish relative to its squared length.
func (m *PlanarMesh[P, E, F]) onSegment(p, tail, head prim.Point) bool {
	v := head.Sub(tail)
	w := p.Sub(tail)
	lengthSq := v.Dot(v)
	if math.Abs(v.Cross(w)) > m.tolerance*lengthSq {
		return false
	}
	t := w.Dot(v)
	return t >= 0 && t <= lengthSq
}

// onSegmentInterior is onSegment without the endpoints.
func (m *PlanarMesh[P, E, F]) onSegmentInterior(p, tail, head prim.Point) bool {
	if p == tail || p == head {
		return false
	}
	v := head.Sub(tail)
	w := p.Sub(tail)
	lengthSq := v.Dot(v)
	if math.Abs(v.Cross(w)) > m.tolerance*lengthSq {
		return false
	}
	t := w.Dot(v)
	return t > 0 && t < lengthSq
}

func (m *PlanarMesh[P, E, F]) inConvexCell(p prim.Point, e Edge) bool {
	for _, f := range m.edges.LeftRing(e) {
		if m.rightOf(p, f) {
			return false
		}
	}
	return true
}

// ChainOrder is the number of edges around the left face of e.
func (m *PlanarMesh[P, E, F]) ChainOrder(e Edge) int {
	m.checkPrimary(e)
	return m.chainOrder(e)
}

// VertexOrder is the number of edges leaving the origin of e.
func (m *PlanarMesh[P, E, F]) VertexOrder(e Edge) int {
	m.checkPrimary(e)
	return m.vertexOrder(e)
}

// AllEqualChainOrder reports whether every face around the origin of e has
// the same number of edges.
func (m *PlanarMesh[P, E, F]) AllEqualChainOrder(e Edge) bool {
	m.checkPrimary(e)
	order := m.chainOrder(e)
	for _, f := range m.edges.OrgRing(e) {
		if m.chainOrder(f) != order {
			return false
		}
	}
	return true
}

func (m *PlanarMesh[P, E, F]) chainOrder(e Edge) int {
	n := 1
	for f := m.edges.LNext(e); f != e; f = m.edges.LNext(f) {
		n++
	}
	return n
}

func (m *PlanarMesh[P, E, F]) vertexOrder(e Edge) int {
	n := 1
	for f := m.edges.ONext(e); f != e; f = m.edges.ONext(f) {
		n++
	}
	return n
}

// Describe names e for logs and debug output, colored by its kind.
func (m *PlanarMesh[P, E, F]) Describe(e Edge) string {
	if e == Nil || !m.edges.Alive(e) {
		return dbg.Name(nil)
	}
	kind := dbg.EdgePlain
	switch {
	case e.IsPrimary() && (!m.hasLeftFace(e) || !m.hasRightFace(e)):
		kind = dbg.EdgeBoundary
	case m.edges.IsConstrained(e):
		kind = dbg.EdgeConstrained
	}
	return dbg.EdgeName(e.Quad(), e.Rotation(), kind)
}
