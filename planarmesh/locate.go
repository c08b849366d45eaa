package planarmesh

import (
	"math"

	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
)

// Locate returns an edge whose left face contains p, or an edge starting at
// p if p is a vertex. A point on the boundary may come back as a boundary
// edge with p on its right.
func (m *PlanarMesh[P, E, F]) Locate(p prim.Point) (e Edge, err error) {
	defer catch(&err)
	m.checkInside(p)
	return m.locate(p), nil
}

// PointLocate returns an edge whose origin is exactly p. It fails if p is not
// a vertex of the mesh.
func (m *PlanarMesh[P, E, F]) PointLocate(p prim.Point) (e Edge, err error) {
	defer catch(&err)
	m.checkInside(p)
	return m.pointLocate(p), nil
}

// checkInside fails for points clearly outside the initial boundary.
func (m *PlanarMesh[P, E, F]) checkInside(p prim.Point) {
	n := len(m.boundary)
	for i := 0; i < n; i++ {
		a, b := m.boundary[i], m.boundary[(i+1)%n]
		v := b.Sub(a)
		if v.Cross(p.Sub(a)) < -m.tolerance*v.Dot(v) {
			fail(ErrOutsideBoundary, "point %v lies outside the mesh boundary", p)
		}
	}
}

// locate walks from the last located edge towards p, crossing one face at a
// time. If the walk does not settle within edgeCount+2 steps, every face is
// tested instead.
func (m *PlanarMesh[P, E, F]) locate(p prim.Point) Edge {
	e := m.lastLocateEdge
	if e == Nil || !m.edges.Alive(e) {
		e = m.startEdge
	}
	limit := m.edges.Len() + 2
	for i := 0; i < limit; i++ {
		if !m.hasLeftFace(e) {
			e = e.Sym()
		}
		if p == m.org(e) {
			m.lastLocateEdge = e
			return e
		}
		if p == m.dest(e) {
			m.lastLocateEdge = e.Sym()
			return e.Sym()
		}
		if m.rightOf(p, e) {
			if !m.hasRightFace(e) {
				return e
			}
			e = e.Sym()
			continue
		}
		next, found := m.stepFace(p, e)
		if found {
			m.lastLocateEdge = next
			return next
		}
		e = next
	}
	if ce := m.log.Check(zap.DebugLevel, "locate walk did not settle, scanning all faces"); ce != nil {
		ce.Write(zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.Int("steps", limit))
	}
	e = m.bruteForceLocate(p)
	m.lastLocateEdge = e
	return e
}

// stepFace looks at the left face of e, which p is not right of. It either
// reports the face as the answer or returns the edge to cross next.
func (m *PlanarMesh[P, E, F]) stepFace(p prim.Point, e Edge) (Edge, bool) {
	if m.chainOrder(e) == 3 {
		if next := m.edges.ONext(e); !m.rightOf(p, next) {
			return next, false
		}
		if next := m.edges.DPrev(e); !m.rightOf(p, next) {
			return next, false
		}
		return e, true
	}
	for f := m.edges.LNext(e); f != e; f = m.edges.LNext(f) {
		if m.rightOf(p, f) {
			if !m.hasRightFace(f) {
				return f, true
			}
			return f.Sym(), false
		}
	}
	return e, true
}

func (m *PlanarMesh[P, E, F]) bruteForceLocate(p prim.Point) Edge {
	found := Nil
	m.edges.ForEachQuad(func(q Edge) bool {
		for _, e := range [2]Edge{q, q.Sym()} {
			if m.hasLeftFace(e) && m.inConvexCell(p, e) {
				found = e
				return false
			}
		}
		return true
	})
	if found != Nil {
		return found
	}
	// No convex cell holds p. Settle for the nearest edge that has a face.
	best, bestDistance := Nil, math.Inf(1)
	m.edges.ForEachQuad(func(q Edge) bool {
		for _, e := range [2]Edge{q, q.Sym()} {
			if !m.hasLeftFace(e) {
				continue
			}
			if d := segmentDistance(p, m.org(e), m.dest(e)); d < bestDistance {
				best, bestDistance = e, d
			}
		}
		return true
	})
	if best == Nil {
		fatalf("could not locate %v in a mesh without faces", p)
	}
	return best
}

func segmentDistance(p, a, b prim.Point) float64 {
	seg := prim.LineSegment2D{Tail: a, Head: b}
	t := math.Max(0, math.Min(1, seg.T(p)))
	return prim.Distance(p, seg.Point(t))
}

func (m *PlanarMesh[P, E, F]) pointLocate(p prim.Point) Edge {
	e := m.locate(p)
	if m.org(e) == p {
		return e
	}
	for _, f := range m.edges.LeftRing(e) {
		if m.org(f) == p {
			m.lastLocateEdge = f
			return f
		}
	}
	if ce := m.log.Check(zap.DebugLevel, "point not found around located face, scanning all vertices"); ce != nil {
		ce.Write(zap.Float64("x", p.X), zap.Float64("y", p.Y))
	}
	for _, v := range m.vertices {
		if v.pos == p && v.edge != Nil {
			m.lastLocateEdge = v.edge
			return v.edge
		}
	}
	fatalf("%v is not a vertex of the mesh", p)
	return Nil
}
