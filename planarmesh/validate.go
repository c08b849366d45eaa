package planarmesh

import (
	"go.uber.org/multierr"

	"github.com/cocamware/lass-sub002/prim"
)

// Validate checks the structural invariants of the mesh and returns every
// violation it finds: the edge algebra, origins shared around each vertex,
// counterclockwise faces and the Euler relation V - E + F = 2, counting the
// outside as one face.
func (m *PlanarMesh[P, E, F]) Validate() error {
	var problems error
	report := func(format string, args ...interface{}) {
		problems = multierr.Append(problems, newError(ErrInvariant, format, args...))
	}

	m.edges.ForEachQuad(func(q Edge) bool {
		for r := Edge(0); r < 4; r++ {
			e := q + r
			if e.Rot().Rot() != e.Sym() || e.Sym().Sym() != e {
				report("broken rotation algebra at %v", e)
			}
			if m.edges.ONext(m.edges.OPrev(e)) != e {
				report("oNext does not undo oPrev at %v", e)
			}
		}
		for _, e := range [2]Edge{q, q.Sym()} {
			if m.orgID(e) < 0 {
				report("edge %v has no origin", e)
				continue
			}
			for _, g := range m.edges.OrgRing(e) {
				if m.orgID(g) != m.orgID(e) {
					report("edges %v and %v share a ring but not an origin", e, g)
				}
			}
			if m.hasLeftFace(e) && m.facePolygon(m.edges.LeftRing(e)).SignedArea() <= 0 {
				report("face left of %v is not counterclockwise", e)
			}
		}
		return true
	})

	outer := 0
	m.edges.ForEachQuad(func(q Edge) bool {
		for _, e := range [2]Edge{q, q.Sym()} {
			if !m.hasLeftFace(e) {
				outer++
			}
		}
		return true
	})
	if outer != len(m.boundaryEdges()) {
		report("%d edges face outside, but the boundary ring has %d", outer, len(m.boundaryEdges()))
	}

	for id, v := range m.vertices {
		if v.edge == Nil || !m.edges.Alive(v.edge) || m.orgID(v.edge) != int32(id) {
			report("vertex %d at %v lost its edge", id, v.pos)
		}
	}

	faces := m.FaceCount() + 1
	if euler := m.VertexCount() - m.EdgeCount() + faces; euler != 2 {
		report("V - E + F = %d - %d + %d = %d", m.VertexCount(), m.EdgeCount(), faces, euler)
	}
	return problems
}

// boundaryEdges returns the ring of edges facing outside, starting at
// StartEdge.Sym.
func (m *PlanarMesh[P, E, F]) boundaryEdges() []Edge {
	if m.startEdge == Nil {
		return nil
	}
	return m.edges.LeftRing(m.startEdge.Sym())
}

// BoundaryPolygon returns the current outline of the mesh, including the
// vertices inserted on it, in counterclockwise order.
func (m *PlanarMesh[P, E, F]) BoundaryPolygon() prim.SimplePolygon2D {
	ring := m.boundaryEdges()
	points := make([]prim.Point, len(ring))
	for i, e := range ring {
		// ring runs clockwise around the outside.
		points[len(ring)-1-i] = m.org(e)
	}
	return prim.SimplePolygon2D{Points: points}
}
