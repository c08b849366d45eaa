package planarmesh

import (
	"github.com/cocamware/lass-sub002/prim"
)

// Intersection is a crossing of a walked segment with a mesh edge.
type Intersection struct {
	Edge  Edge
	Point prim.Point
}

// Shoot returns the first edge the ray leaves its starting face through, or
// Nil if none is found.
func (m *PlanarMesh[P, E, F]) Shoot(ray prim.Ray2D) (e Edge, err error) {
	defer catch(&err)
	m.checkInside(ray.Support)
	return m.shoot(ray), nil
}

// PointShoot is Shoot for a ray starting exactly at a vertex. It fails if the
// support is not a vertex or no edge is hit.
func (m *PlanarMesh[P, E, F]) PointShoot(ray prim.Ray2D) (e Edge, err error) {
	defer catch(&err)
	m.checkInside(ray.Support)
	return m.pointShoot(ray), nil
}

// Walk returns the edges crossed by the segment, in order from tail to head.
func (m *PlanarMesh[P, E, F]) Walk(seg prim.LineSegment2D) (crossed []Edge, err error) {
	defer catch(&err)
	m.checkInside(seg.Tail)
	m.checkInside(seg.Head)
	return m.walk(seg), nil
}

// WalkIntersections is Walk with the crossing points.
func (m *PlanarMesh[P, E, F]) WalkIntersections(seg prim.LineSegment2D) (hits []Intersection, err error) {
	defer catch(&err)
	m.checkInside(seg.Tail)
	m.checkInside(seg.Head)
	for _, e := range m.walk(seg) {
		hits = append(hits, Intersection{Edge: e, Point: m.crossing(e, seg)})
	}
	return hits, nil
}

// PointWalk walks from the vertex at the origin of e towards head.
func (m *PlanarMesh[P, E, F]) PointWalk(e Edge, head prim.Point) (crossed []Edge, err error) {
	defer catch(&err)
	m.checkPrimary(e)
	m.checkInside(head)
	return m.pointWalk(e, head), nil
}

// exits reports whether a line heading through the left face of e leaves it
// through e: org(e) lies right of the line and dest(e) does not, and a
// destination on the line must lie ahead of the support.
func (m *PlanarMesh[P, E, F]) exits(line prim.Line2D, e Edge) bool {
	if line.Classify(m.org(e)) != prim.SideRight {
		return false
	}
	switch line.Classify(m.dest(e)) {
	case prim.SideLeft:
		return true
	case prim.SideOn:
		return line.T(m.dest(e)) > 0
	}
	return false
}

// shootFromVertex finds the edge opposite the origin of e that a ray from
// that origin leaves through.
func (m *PlanarMesh[P, E, F]) shootFromVertex(e Edge, direction prim.Vector) Edge {
	line := prim.Line2D{Support: m.org(e), Direction: direction}
	f := e
	for i, n := 0, m.vertexOrder(e); i < n; i++ {
		if m.hasLeftFace(f) {
			last := m.edges.LPrev(f)
			for g := m.edges.LNext(f); g != last; g = m.edges.LNext(g) {
				if m.exits(line, g) {
					return g
				}
			}
		}
		f = m.edges.ONext(f)
	}
	return Nil
}

func (m *PlanarMesh[P, E, F]) shootFromFace(e Edge, line prim.Line2D) Edge {
	for _, g := range m.edges.LeftRing(e) {
		if m.exits(line, g) {
			return g
		}
	}
	return Nil
}

func (m *PlanarMesh[P, E, F]) shoot(ray prim.Ray2D) Edge {
	e := m.locate(ray.Support)
	switch ray.Support {
	case m.org(e):
		return m.shootFromVertex(e, ray.Direction)
	case m.dest(e):
		return m.shootFromVertex(e.Sym(), ray.Direction)
	}
	if !m.hasLeftFace(e) {
		e = e.Sym()
	}
	if g := m.shootFromFace(e, ray.Line()); g != Nil {
		return g
	}
	if m.hasRightFace(e) {
		// The support sits on e and the ray heads into the other face.
		return m.shootFromFace(e.Sym(), ray.Line())
	}
	return Nil
}

func (m *PlanarMesh[P, E, F]) pointShoot(ray prim.Ray2D) Edge {
	e := m.pointLocate(ray.Support)
	g := m.shootFromVertex(e, ray.Direction)
	if g == Nil {
		fatalf("ray from %v along %v hits no edge", ray.Support, ray.Direction)
	}
	return g
}

func (m *PlanarMesh[P, E, F]) walk(seg prim.LineSegment2D) []Edge {
	first := m.shoot(seg.Ray())
	if first == Nil {
		return nil
	}
	return m.walkFrom(first, seg)
}

func (m *PlanarMesh[P, E, F]) pointWalk(e Edge, head prim.Point) []Edge {
	seg := prim.LineSegment2D{Tail: m.org(e), Head: head}
	first := m.shootFromVertex(e, seg.Vector())
	if first == Nil {
		fatalf("no edge leaves %v towards %v", seg.Tail, head)
	}
	return m.walkFrom(first, seg)
}

// walkFrom collects the edges crossed by seg, starting with e, the edge the
// segment leaves its first face through. The walk passes through vertices
// lying exactly on the segment and stops at the boundary.
func (m *PlanarMesh[P, E, F]) walkFrom(e Edge, seg prim.LineSegment2D) []Edge {
	line := seg.Line()
	limit := 2*m.edges.Len() + 2
	var crossed []Edge
	for steps := 0; e != Nil; steps++ {
		if steps > limit {
			fatalf("walk from %v to %v does not end", seg.Tail, seg.Head)
		}
		if m.org(e) == seg.Head || m.dest(e) == seg.Head || m.leftOf(seg.Head, e) {
			break
		}
		crossed = append(crossed, e)
		if !m.hasRightFace(e) {
			break
		}
		if line.Classify(m.dest(e)) == prim.SideOn {
			e = m.shootFromVertex(e.Sym(), line.Direction)
			continue
		}
		e = m.nextExit(line, e.Sym())
	}
	return crossed
}

// nextExit finds where line leaves the left face of f after entering it
// through f.
func (m *PlanarMesh[P, E, F]) nextExit(line prim.Line2D, f Edge) Edge {
	for g := m.edges.LNext(f); g != f; g = m.edges.LNext(g) {
		if m.exits(line, g) {
			return g
		}
	}
	fatalf("lost track of the line through %v after crossing %v", line.Support, f)
	return Nil
}

// crossing is where seg crosses the line through e. Parallel lines fall back
// to the endpoint of e closest to the tail of seg.
func (m *PlanarMesh[P, E, F]) crossing(e Edge, seg prim.LineSegment2D) prim.Point {
	o, d := m.org(e), m.dest(e)
	edgeLine := prim.LineThrough(o, d)
	if result, _, t := prim.IntersectLines(seg.Line(), edgeLine); result == prim.ResultOne {
		return edgeLine.Point(t)
	}
	if prim.SquaredDistance(seg.Tail, o) <= prim.SquaredDistance(seg.Tail, d) {
		return o
	}
	return d
}
