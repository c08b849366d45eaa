package planarmesh

import "github.com/cocamware/lass-sub002/prim"

// PointHandle is the handle of the origin of e.
func (m *PlanarMesh[P, E, F]) PointHandle(e Edge) P {
	m.checkPrimary(e)
	return m.vertices[m.orgID(e)].handle
}

// SetPointHandle sets the handle of the origin of e. Every edge leaving that
// vertex sees the new handle.
func (m *PlanarMesh[P, E, F]) SetPointHandle(e Edge, h P) {
	m.checkPrimary(e)
	m.vertices[m.orgID(e)].handle = h
}

// EdgeHandle is the handle attached to the directed edge e.
func (m *PlanarMesh[P, E, F]) EdgeHandle(e Edge) E {
	m.checkPrimary(e)
	return m.edgeHandles[e.Index()]
}

func (m *PlanarMesh[P, E, F]) SetEdgeHandle(e Edge, h E) {
	m.checkPrimary(e)
	m.edgeHandles[e.Index()] = h
}

// SetOrientedEdgeHandle stores left on the direction of e that agrees with
// direction and right on the opposite one.
func (m *PlanarMesh[P, E, F]) SetOrientedEdgeHandle(e Edge, left, right E, direction prim.Vector) {
	m.checkPrimary(e)
	m.setOrientedEdgeHandle(e, left, right, direction)
}

func (m *PlanarMesh[P, E, F]) setOrientedEdgeHandle(e Edge, left, right E, direction prim.Vector) {
	if m.dest(e).Sub(m.org(e)).Dot(direction) < 0 {
		e = e.Sym()
	}
	m.edgeHandles[e.Index()] = left
	m.edgeHandles[e.Sym().Index()] = right
}

// FaceHandle is the handle of the face at the origin of the dual edge e.
func (m *PlanarMesh[P, E, F]) FaceHandle(e Edge) F {
	m.checkDual(e)
	return m.faceHandles[e.Index()]
}

// SetFaceHandle sets the handle of the face at the origin of the dual edge e
// and refreshes the face constraint flag of every edge around it.
func (m *PlanarMesh[P, E, F]) SetFaceHandle(e Edge, h F) {
	m.checkDual(e)
	m.setFaceHandle(e, h)
}

func (m *PlanarMesh[P, E, F]) setFaceHandle(e Edge, h F) {
	for _, d := range m.edges.OrgRing(e) {
		m.faceHandles[d.Index()] = h
		m.refreshFaceConstraint(d)
	}
}

func (m *PlanarMesh[P, E, F]) refreshFaceConstraint(d Edge) {
	m.edges.SetFaceConstrained(d, m.faceHandles[d.Index()] != m.faceHandles[d.Sym().Index()])
}

// LeftFaceHandle is the handle of the face left of the primary edge e.
func (m *PlanarMesh[P, E, F]) LeftFaceHandle(e Edge) F {
	m.checkPrimary(e)
	return m.faceHandles[e.InvRot().Index()]
}

// RightFaceHandle is the handle of the face right of the primary edge e.
func (m *PlanarMesh[P, E, F]) RightFaceHandle(e Edge) F {
	m.checkPrimary(e)
	return m.faceHandles[e.Rot().Index()]
}

func (m *PlanarMesh[P, E, F]) SetLeftFaceHandle(e Edge, h F) {
	m.checkPrimary(e)
	m.setFaceHandle(e.InvRot(), h)
}

func (m *PlanarMesh[P, E, F]) SetRightFaceHandle(e Edge, h F) {
	m.checkPrimary(e)
	m.setFaceHandle(e.Rot(), h)
}

// Marking is the persistent user flag of the undirected edge of e.
func (m *PlanarMesh[P, E, F]) Marking(e Edge) bool {
	return m.marks[e.Quad()]
}

func (m *PlanarMesh[P, E, F]) SetMarking(e Edge, mark bool) {
	m.marks[e.Quad()] = mark
}

// MaxStackDepth is the number of nested traversals that may hold internal
// marks at the same time.
const MaxStackDepth = 4

// marker owns one level of the internal marking stack. All its marks are
// cleared when it is acquired; release it when the traversal ends.
type marker[P any, E any, F comparable] struct {
	m   *PlanarMesh[P, E, F]
	bit uint8
}

func (m *PlanarMesh[P, E, F]) newMarker() *marker[P, E, F] {
	if m.stackDepth >= MaxStackDepth {
		fail(ErrStackOverflow, "more than %d nested traversals", MaxStackDepth)
	}
	bit := uint8(1) << m.stackDepth
	m.stackDepth++
	for i := range m.internalMarks {
		m.internalMarks[i] &^= bit
	}
	return &marker[P, E, F]{m: m, bit: bit}
}

func (k *marker[P, E, F]) release() {
	k.m.stackDepth--
}

func (k *marker[P, E, F]) marked(e Edge) bool {
	return k.m.internalMarks[e.Index()]&k.bit != 0
}

func (k *marker[P, E, F]) set(e Edge, mark bool) {
	if mark {
		k.m.internalMarks[e.Index()] |= k.bit
	} else {
		k.m.internalMarks[e.Index()] &^= k.bit
	}
}

func (k *marker[P, E, F]) setAll(edges []Edge, mark bool) {
	for _, e := range edges {
		k.set(e, mark)
	}
}

// top is the marker of the innermost running traversal.
func (m *PlanarMesh[P, E, F]) top() *marker[P, E, F] {
	if m.stackDepth == 0 {
		fatalf("internal markings are only available during a traversal")
	}
	return &marker[P, E, F]{m: m, bit: uint8(1) << (m.stackDepth - 1)}
}

// InternalMarking reads the mark of e at the level of the innermost running
// traversal. It panics outside ForAllVertices and ForAllFaces callbacks.
func (m *PlanarMesh[P, E, F]) InternalMarking(e Edge) bool {
	return m.top().marked(e)
}

func (m *PlanarMesh[P, E, F]) SetInternalMarking(e Edge, mark bool) {
	m.top().set(e, mark)
}

// SetInternalMarkingAroundVertex marks every edge leaving the origin of e.
func (m *PlanarMesh[P, E, F]) SetInternalMarkingAroundVertex(e Edge, mark bool) {
	m.top().setAll(m.edges.OrgRing(e), mark)
}

// SetInternalMarkingInFace marks every edge around the left face of e.
func (m *PlanarMesh[P, E, F]) SetInternalMarkingInFace(e Edge, mark bool) {
	m.top().setAll(m.edges.LeftRing(e), mark)
}
