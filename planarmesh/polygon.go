package planarmesh

import (
	"github.com/cocamware/lass-sub002/prim"
)

// InsertPolygon inserts every side of poly as a constrained edge, closing
// the loop. Each side gets left on its forward direction and right on the
// other. It returns the edge leaving the first corner.
func (m *PlanarMesh[P, E, F]) InsertPolygon(poly prim.SimplePolygon2D, left, right E) (Edge, error) {
	return m.InsertPolygonOpt(poly, left, right, true)
}

// InsertPolygonOpt is InsertPolygon with control over the Delaunay repair.
func (m *PlanarMesh[P, E, F]) InsertPolygonOpt(poly prim.SimplePolygon2D, left, right E, makeDelaunay bool) (first Edge, err error) {
	defer catch(&err)
	if poly.Len() < 3 {
		return Nil, newError(ErrDegenerate, "polygon has %d corners, need at least 3", poly.Len())
	}
	first = Nil
	for i := 0; i < poly.Len(); i++ {
		e := m.insertEdge(poly.Edge(i), left, right, makeDelaunay)
		if i == 0 {
			first = e
		}
	}
	return first, nil
}

// MarkPolygon gives handle h to every face whose centroid lies inside poly.
// The search starts at the corners of poly and at the constrained edges, so
// its sides need not be constrained as long as they are edges of the mesh.
func (m *PlanarMesh[P, E, F]) MarkPolygon(poly prim.SimplePolygon2D, h F) error {
	return m.MarkPolygons(prim.PolygonList{poly}, h)
}

// MarkPolygons is MarkPolygon for a region bounded by several polygons, with
// even-odd containment. Holes are left untouched.
func (m *PlanarMesh[P, E, F]) MarkPolygons(polys prim.PolygonList, h F) (err error) {
	defer catch(&err)
	m.markPolygons(polys, h)
	return nil
}

// markPolygons floods faces from the corners of the polygons and from both
// sides of every constrained edge, crossing any edge into a face whose
// centroid is still inside. The corners seed polygons that were never
// inserted as constraints; the constrained edges seed regions that
// overlapping polygons cut off from the corners.
func (m *PlanarMesh[P, E, F]) markPolygons(polys prim.PolygonList, h F) {
	for _, poly := range polys {
		for _, p := range poly.Points {
			m.checkInside(p)
		}
	}

	visited := m.newMarker()
	defer visited.release()

	var stack edgeStack
	for _, poly := range polys {
		for _, p := range poly.Points {
			e := m.locate(p)
			stack.Push(e)
			stack.Push(e.Sym())
			for _, f := range m.edges.LeftRing(e) {
				if m.org(f) == p {
					for _, g := range m.edges.OrgRing(f) {
						stack.Push(g)
					}
					break
				}
			}
		}
	}
	m.edges.ForEachQuad(func(q Edge) bool {
		if m.edges.IsConstrained(q) {
			stack.Push(q)
			stack.Push(q.Sym())
		}
		return true
	})
	for !stack.Empty() {
		e := stack.Pop()
		if !m.hasLeftFace(e) || visited.marked(e) {
			continue
		}
		ring := m.edges.LeftRing(e)
		visited.setAll(ring, true)
		if !polys.ContainsPointByEvenOdd(m.facePolygon(ring).Centroid()) {
			continue
		}
		m.setFaceHandle(e.InvRot(), h)
		for _, f := range ring {
			if m.hasRightFace(f) {
				stack.Push(f.Sym())
			}
		}
	}
}
