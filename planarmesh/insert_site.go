package planarmesh

import (
	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
)

// InsertSite adds p as a vertex and restores the Delaunay property around
// it. It returns an edge whose origin is the vertex at p. A point within the
// point distance tolerance of an existing vertex returns that vertex; a point
// on an edge splits the edge.
func (m *PlanarMesh[P, E, F]) InsertSite(p prim.Point) (Edge, error) {
	return m.InsertSiteOpt(p, true)
}

// InsertSiteOpt is InsertSite with control over the Delaunay repair.
func (m *PlanarMesh[P, E, F]) InsertSiteOpt(p prim.Point, makeDelaunay bool) (e Edge, err error) {
	defer catch(&err)
	return m.insertSite(p, makeDelaunay), nil
}

func (m *PlanarMesh[P, E, F]) insertSite(p prim.Point, makeDelaunay bool) Edge {
	m.checkInside(p)
	e := m.locate(p)
	if !m.hasLeftFace(e) {
		e = e.Sym()
		if !m.hasLeftFace(e) {
			fatalf("edge %v has no face on either side", e)
		}
	}
	ring := m.edges.LeftRing(e)
	for _, f := range ring {
		if prim.Distance(p, m.org(f)) <= m.pointDistanceTolerance {
			return f
		}
	}
	for _, f := range ring {
		if m.onEdge(p, f) {
			return m.insertOnEdge(p, f, makeDelaunay)
		}
	}
	for _, f := range ring {
		line := prim.LineThrough(m.org(f), m.dest(f))
		if line.Distance(p) > m.pointDistanceTolerance && m.leftOf(p, f) {
			continue
		}
		// Too close to f, or numerically outside the face: snap onto f.
		// Corners within tolerance were taken above, so a projection beyond
		// either end of f belongs to another edge of the face.
		t := line.T(p)
		if t <= 0 || t >= 1 {
			continue
		}
		q := line.Point(t)
		if ce := m.log.Check(zap.DebugLevel, "snapping site onto edge"); ce != nil {
			ce.Write(zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.String("edge", m.Describe(f)))
		}
		return m.insertOnEdge(q, f, makeDelaunay)
	}
	return m.insertInFace(p, e, makeDelaunay)
}

// insertInFace connects a new vertex at p to every corner of the left face
// of e.
func (m *PlanarMesh[P, E, F]) insertInFace(p prim.Point, e Edge, makeDelaunay bool) Edge {
	v := m.addVertex(p)
	h := m.faceHandles[e.InvRot().Index()]
	corners := m.chainOrder(e)

	base := m.makeEdge(false)
	m.setOrgID(base, m.orgID(e))
	m.setOrgID(base.Sym(), v)
	m.faceHandles[base.Rot().Index()] = h
	m.faceHandles[base.InvRot().Index()] = h
	m.edges.Splice(base, e)
	start := base
	for i := 1; ; i++ {
		if i > corners {
			fatalf("fan around %v does not close", p)
		}
		base = m.connect(e, base.Sym())
		e = m.edges.OPrev(base)
		if m.edges.LNext(e) == start {
			break
		}
	}
	site := start.Sym()
	if makeDelaunay {
		m.legalizeAround(site)
	}
	return site
}

// insertOnEdge splits e at p and connects the new vertex to the corners of
// the faces on both sides. If that would produce an inverted triangle, p is
// snapped to the nearest endpoint of e instead.
func (m *PlanarMesh[P, E, F]) insertOnEdge(p prim.Point, e Edge, makeDelaunay bool) Edge {
	o, d := m.org(e), m.dest(e)
	consistent := true
	if m.hasLeftFace(e) {
		after, before := m.cornersOffLine(e)
		consistent = consistent && prim.Ccw(p, d, after) && prim.Ccw(o, p, before)
	}
	if m.hasRightFace(e) {
		after, before := m.cornersOffLine(e.Sym())
		consistent = consistent && prim.Ccw(p, o, after) && prim.Ccw(d, p, before)
	}
	if !consistent {
		if ce := m.log.Check(zap.DebugLevel, "site would fold the faces of its edge, snapping to endpoint"); ce != nil {
			ce.Write(zap.Float64("x", p.X), zap.Float64("y", p.Y), zap.String("edge", m.Describe(e)))
		}
		if prim.SquaredDistance(p, o) <= prim.SquaredDistance(p, d) {
			return e
		}
		return e.Sym()
	}

	ne := m.splitEdge(e, p)
	if m.hasLeftFace(e) {
		m.fanSplit(e, ne)
	}
	if m.hasRightFace(e) {
		m.fanSplit(ne.Sym(), e.Sym())
	}
	if makeDelaunay {
		m.legalizeAround(ne)
	}
	return ne
}

// splitEdge puts a new vertex at p in the middle of e. Afterwards e ends at
// the new vertex and the returned edge runs from it to the old destination.
// Both halves keep the constraint, handles and face flags of e.
func (m *PlanarMesh[P, E, F]) splitEdge(e Edge, p prim.Point) Edge {
	d := m.destID(e)
	v := m.addVertex(p)
	ne := m.makeEdge(m.edges.IsConstrained(e))

	a := e.Sym()
	t := m.edges.OPrev(a)
	m.edges.Splice(a, t)
	m.edges.Splice(ne.Sym(), t)
	m.edges.Splice(ne, a)

	m.setOrgID(ne.Sym(), d)
	m.setOrgID(a, v)
	m.setOrgID(ne, v)
	m.edges.SetFaceConstrained(ne, m.edges.IsFaceConstrained(e))
	m.marks[ne.Quad()] = m.marks[e.Quad()]
	for r := Edge(0); r < 4; r++ {
		m.outer[(ne + r).Index()] = m.outer[(e + r).Index()]
		m.edgeHandles[(ne + r).Index()] = m.edgeHandles[(e + r).Index()]
		m.faceHandles[(ne + r).Index()] = m.faceHandles[(e + r).Index()]
	}
	return ne
}

// cornersOffLine returns the first corners of the left face of e that are
// off the line through e, walking forward from dest(e) and backward from
// org(e). Faces merged by DeleteEdge may continue e with collinear sides.
func (m *PlanarMesh[P, E, F]) cornersOffLine(e Edge) (after, before prim.Point) {
	o, d := m.org(e), m.dest(e)
	offLine := func(c prim.Point) bool {
		return prim.Ccw(o, d, c) || prim.Cw(o, d, c)
	}
	found := false
	for f := m.edges.LNext(e); f != e; f = m.edges.LNext(f) {
		if after = m.dest(f); offLine(after) {
			found = true
			break
		}
	}
	if !found {
		fatalf("face left of %v is flat", e)
	}
	for f := m.edges.LPrev(e); f != e; f = m.edges.LPrev(f) {
		if before = m.org(f); offLine(before) {
			break
		}
	}
	return after, before
}

// fanSplit triangulates the face left of from after a split. into ends at
// the split vertex, from leaves it, and both border the same face. The split
// vertex is connected to every corner off the line of the split edge; the
// pieces left over next to collinear corners are fanned from their apex.
func (m *PlanarMesh[P, E, F]) fanSplit(into, from Edge) {
	o, v := m.org(into), m.dest(into)
	stop := m.orgID(into)
	b := m.edges.LNext(m.edges.LNext(from))
	for m.orgID(b) != stop {
		next := m.edges.LNext(b)
		if prim.Ccw(o, v, m.org(b)) {
			m.connect(into, b)
		}
		b = next
	}
	if m.chainOrder(from) > 3 {
		apex := m.edges.LPrev(from)
		m.fanCorner(m.edges.LPrev(apex), apex)
	}
	if m.chainOrder(into) > 3 {
		apex := m.edges.LNext(into)
		m.fanCorner(apex, m.edges.LNext(apex))
	}
}

// fanCorner connects dest(into) to every corner of the face left of from
// that is not already its neighbor.
func (m *PlanarMesh[P, E, F]) fanCorner(into, from Edge) {
	stop := m.orgID(into)
	b := m.edges.LNext(m.edges.LNext(from))
	for m.orgID(b) != stop {
		next := m.edges.LNext(b)
		m.connect(into, b)
		b = next
	}
}
