package planarmesh

import (
	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
)

// Swap replaces e, the diagonal of the quadrilateral formed by its two
// triangles, with the other diagonal. Constrained edges and non convex
// quadrilaterals are refused.
func (m *PlanarMesh[P, E, F]) Swap(e Edge) (err error) {
	defer catch(&err)
	m.checkPrimary(e)
	if m.edges.IsConstrained(e) {
		return newError(ErrConstrainedEdge, "cannot swap constrained edge %v", e)
	}
	if !m.swappable(e) {
		return newError(ErrDegenerate, "edge %v is not the diagonal of a convex quadrilateral", e)
	}
	m.swap(e)
	return nil
}

// DeleteEdge removes e, merging the faces on both sides. It refuses
// constrained edges and edges whose removal would leave a dangling vertex
// or a reflex corner in the merged face.
func (m *PlanarMesh[P, E, F]) DeleteEdge(e Edge) bool {
	m.checkPrimary(e)
	if m.edges.IsConstrained(e) || !m.keepsConvex(e) || !m.keepsConvex(e.Sym()) {
		return false
	}
	m.deleteEdge(e)
	return true
}

// keepsConvex reports whether the corner at org(e) stays convex once e is
// gone. A straight corner is allowed.
func (m *PlanarMesh[P, E, F]) keepsConvex(e Edge) bool {
	if m.vertexOrder(e) < 3 {
		return false
	}
	return !prim.Cw(m.org(e), m.dest(m.edges.OPrev(e)), m.dest(m.edges.ONext(e)))
}

func (m *PlanarMesh[P, E, F]) deleteEdge(e Edge) {
	o, d := m.orgID(e), m.destID(e)
	if m.vertices[o].edge == e {
		m.vertices[o].edge = m.edges.ONext(e)
	}
	if m.vertices[d].edge == e.Sym() {
		m.vertices[d].edge = m.edges.ONext(e.Sym())
	}
	if m.lastLocateEdge.Quad() == e.Quad() {
		m.lastLocateEdge = m.startEdge
	}
	// The merged face keeps the handle of the face left of e.
	h := m.faceHandles[e.InvRot().Index()]
	survivor := m.edges.LNext(e)
	m.edges.DeleteEdge(e)
	m.setFaceHandle(survivor.InvRot(), h)
}

// FixEdge restores the Delaunay property around e by flipping edges outward
// from it until every visited edge is locally Delaunay or constrained.
func (m *PlanarMesh[P, E, F]) FixEdge(e Edge) (err error) {
	defer catch(&err)
	m.checkPrimary(e)
	m.legalizeEdges([]Edge{e})
	return nil
}

// swap flips e and keeps origins, vertex representatives and face handles
// consistent. Afterwards e runs between the two opposite corners.
func (m *PlanarMesh[P, E, F]) swap(e Edge) {
	if m.edges.IsConstrained(e) {
		fail(ErrConstrainedEdge, "cannot swap constrained edge %v", e)
	}
	a := m.edges.OPrev(e)
	b := m.edges.OPrev(e.Sym())
	o, d := m.orgID(e), m.destID(e)
	m.edges.Swap(e)
	if m.vertices[o].edge == e {
		m.vertices[o].edge = a
	}
	if m.vertices[d].edge == e.Sym() {
		m.vertices[d].edge = b
	}
	m.setOrgID(e, m.destID(a))
	m.setOrgID(e.Sym(), m.destID(b))
	// Each new triangle takes the handle of its side after e and spreads it
	// over the whole outline, refreshing the face flags on the way.
	left := m.faceHandles[m.edges.LNext(e).InvRot().Index()]
	right := m.faceHandles[m.edges.LNext(e.Sym()).InvRot().Index()]
	m.setFaceHandle(e.InvRot(), left)
	m.setFaceHandle(e.Rot(), right)
}

// swappable reports whether e is an unconstrained diagonal of a strictly
// convex quadrilateral made of two triangles.
func (m *PlanarMesh[P, E, F]) swappable(e Edge) bool {
	if m.edges.IsConstrained(e) || !m.hasLeftFace(e) || !m.hasRightFace(e) {
		return false
	}
	if m.chainOrder(e) != 3 || m.chainOrder(e.Sym()) != 3 {
		return false
	}
	o, d := m.org(e), m.dest(e)
	left := m.dest(m.edges.LNext(e))
	right := m.dest(m.edges.LNext(e.Sym()))
	return prim.Ccw(o, right, left) && prim.Ccw(right, d, left)
}

// isIllegal reports whether e is an unconstrained edge whose opposite corner
// on the right lies inside the circumcircle of its left triangle.
func (m *PlanarMesh[P, E, F]) isIllegal(e Edge) bool {
	if !m.swappable(e) {
		return false
	}
	left := m.dest(m.edges.LNext(e))
	right := m.dest(m.edges.LNext(e.Sym()))
	return prim.InCircle(m.org(e), m.dest(e), left, right)
}

// legalizeAround flips the edges opposite a freshly inserted vertex at the
// origin of site until all of them are locally Delaunay.
func (m *PlanarMesh[P, E, F]) legalizeAround(site Edge) {
	var stack edgeStack
	for _, g := range m.edges.OrgRing(site) {
		if m.hasLeftFace(g) {
			stack.Push(m.edges.LNext(g))
		}
	}
	flips := 0
	limit := m.flipLimit()
	for !stack.Empty() {
		f := stack.Pop()
		if !m.isIllegal(f) {
			continue
		}
		a := m.edges.OPrev(f)
		b := m.edges.LNext(a)
		m.swap(f)
		stack.Push(a)
		stack.Push(b)
		if flips++; flips > limit {
			fatalf("legalizing around %v does not settle", m.org(site))
		}
	}
	if flips > 0 {
		if ce := m.log.Check(zap.DebugLevel, "legalized site"); ce != nil {
			ce.Write(zap.Float64("x", m.org(site).X), zap.Float64("y", m.org(site).Y), zap.Int("flips", flips))
		}
	}
}

// legalizeEdges is the general Lawson pass: flip illegal edges and revisit
// the outline of every flipped quadrilateral.
func (m *PlanarMesh[P, E, F]) legalizeEdges(edges []Edge) {
	stack := edgeStack(append([]Edge(nil), edges...))
	flips := 0
	limit := m.flipLimit()
	for !stack.Empty() {
		f := stack.Pop()
		if !m.edges.Alive(f) || !m.isIllegal(f) {
			continue
		}
		around := [4]Edge{
			m.edges.LNext(f), m.edges.LPrev(f),
			m.edges.LNext(f.Sym()), m.edges.LPrev(f.Sym()),
		}
		m.swap(f)
		for _, g := range around {
			stack.Push(g)
		}
		if flips++; flips > limit {
			fatalf("legalizing %d edges does not settle", len(edges))
		}
	}
}

func (m *PlanarMesh[P, E, F]) flipLimit() int {
	n := m.edges.Len() + 1
	return n*n + 64
}
