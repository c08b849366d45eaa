package planarmesh

import (
	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
)

// InsertEdge inserts seg as a constrained edge, inserting its endpoints as
// sites first. Existing constraints crossed by seg are split at the crossing.
// left is stored on the direction agreeing with seg and right on the other.
// The returned edge starts at the tail of seg.
func (m *PlanarMesh[P, E, F]) InsertEdge(seg prim.LineSegment2D, left, right E) (Edge, error) {
	return m.InsertEdgeOpt(seg, left, right, true)
}

// InsertEdgeOpt is InsertEdge with control over the Delaunay repair.
func (m *PlanarMesh[P, E, F]) InsertEdgeOpt(seg prim.LineSegment2D, left, right E, makeDelaunay bool) (e Edge, err error) {
	defer catch(&err)
	return m.insertEdge(seg, left, right, makeDelaunay), nil
}

func (m *PlanarMesh[P, E, F]) insertEdge(seg prim.LineSegment2D, left, right E, makeDelaunay bool) Edge {
	tail := m.insertSite(seg.Tail, makeDelaunay)
	vt := m.orgID(tail)
	head := m.insertSite(seg.Head, makeDelaunay)
	vh := m.orgID(head)
	if vt == vh {
		return head
	}
	c := constraint[E]{left: left, right: right, direction: seg.Vector(), makeDelaunay: makeDelaunay}
	return m.insertConstraint(vt, vh, c)
}

// constraint carries what every piece of a split segment shares.
type constraint[E any] struct {
	left, right  E
	direction    prim.Vector
	makeDelaunay bool
}

// insertConstraint constrains the path between the vertices vt and vh, which
// are already part of the mesh. With Delaunay repair, every edge flipped out
// of the way is legalized together with its outline once the path is
// constrained.
func (m *PlanarMesh[P, E, F]) insertConstraint(vt, vh int32, c constraint[E]) Edge {
	var swapped []Edge
	g := m.placeConstraint(vt, vh, c, &swapped)
	if c.makeDelaunay && len(swapped) > 0 {
		around := make([]Edge, 0, 5*len(swapped))
		for _, f := range swapped {
			around = append(around, f,
				m.edges.LNext(f), m.edges.LPrev(f),
				m.edges.LNext(f.Sym()), m.edges.LPrev(f.Sym()))
		}
		m.legalizeEdges(around)
	}
	return g
}

func (m *PlanarMesh[P, E, F]) placeConstraint(vt, vh int32, c constraint[E], swapped *[]Edge) Edge {
	tail, head := m.pos(vt), m.pos(vh)
	seg := prim.LineSegment2D{Tail: tail, Head: head}
	for attempt := 0; attempt < m.maxInsertEdgeRetries; attempt++ {
		from := m.vertices[vt].edge
		ring := m.edges.OrgRing(from)
		for _, g := range ring {
			if m.destID(g) == vh {
				m.constrain(g, c)
				return g
			}
		}
		for _, g := range ring {
			if w := m.destID(g); m.onSegmentInterior(m.pos(w), tail, head) {
				m.constrain(g, c)
				m.insertConstraint(w, vh, c)
				return g
			}
		}

		crossed := m.pointWalk(from, head)
		if len(crossed) == 0 {
			if g := m.connectAcrossFace(from, vh); g != Nil {
				m.constrain(g, c)
				return g
			}
			fatalf("segment from %v to %v crosses no edge but is not one", tail, head)
		}

		// A vertex on the segment splits it.
		for _, e := range crossed {
			for _, w := range [2]int32{m.orgID(e), m.destID(e)} {
				if w != vt && w != vh && m.onSegmentInterior(m.pos(w), tail, head) {
					first := m.insertConstraint(vt, w, c)
					m.insertConstraint(w, vh, c)
					return first
				}
			}
		}

		// Crossing an existing constraint forces a vertex at the crossing.
		for _, e := range crossed {
			if !m.edges.IsConstrained(e) {
				continue
			}
			p := m.crossing(e, seg)
			w := m.orgID(m.insertOnEdge(p, e, c.makeDelaunay))
			if !m.onSegmentInterior(m.pos(w), tail, head) {
				fatalf("constraint %v crosses segment from %v to %v at %v, off its interior", m.Describe(e), tail, head, m.pos(w))
			}
			if ce := m.log.Check(zap.DebugLevel, "split constraint at crossing"); ce != nil {
				ce.Write(zap.Float64("x", p.X), zap.Float64("y", p.Y))
			}
			first := m.insertConstraint(vt, w, c)
			m.insertConstraint(w, vh, c)
			return first
		}

		if e, ok := m.clearPath(crossed, vt, vh, seg, c, swapped); ok {
			return e
		}
		if ce := m.log.Check(zap.DebugLevel, "deferred flips, walking the segment again"); ce != nil {
			ce.Write(zap.Int("attempt", attempt+1), zap.Int("crossed", len(crossed)))
		}
	}
	fail(ErrRetryLimit, "segment from %v to %v is still blocked after %d attempts", tail, head, m.maxInsertEdgeRetries)
	return Nil
}

// clearPath makes one pass of flips over the edges crossing seg, recording
// every flip in swapped. Edges that cannot be flipped yet, or still cross
// seg after flipping, are deferred; with any deferral left the pass reports
// false and the caller walks again.
func (m *PlanarMesh[P, E, F]) clearPath(crossed []Edge, vt, vh int32, seg prim.LineSegment2D, c constraint[E], swapped *[]Edge) (Edge, bool) {
	deferred := 0
	for _, e := range crossed {
		if !m.crossesSegment(e, seg) {
			continue
		}
		if !m.swappable(e) {
			deferred++
			continue
		}
		m.swap(e)
		*swapped = append(*swapped, e)
		if !m.joins(e, vt, vh) && m.crossesSegment(e, seg) {
			deferred++
		}
	}
	if deferred > 0 {
		return Nil, false
	}
	for _, g := range m.edges.OrgRing(m.vertices[vt].edge) {
		if m.destID(g) == vh {
			m.constrain(g, c)
			return g, true
		}
	}
	fatalf("cleared the path from %v to %v but no edge joins them", seg.Tail, seg.Head)
	return Nil, false
}

func (m *PlanarMesh[P, E, F]) constrain(e Edge, c constraint[E]) {
	m.edges.SetConstrained(e, true)
	m.setOrientedEdgeHandle(e, c.left, c.right, c.direction)
}

func (m *PlanarMesh[P, E, F]) joins(e Edge, v, w int32) bool {
	o, d := m.orgID(e), m.destID(e)
	return o == v && d == w || o == w && d == v
}

// crossesSegment reports whether e and seg cross at a single point interior
// to both.
func (m *PlanarMesh[P, E, F]) crossesSegment(e Edge, seg prim.LineSegment2D) bool {
	line := seg.Line()
	if !straddles(line.Classify(m.org(e)), line.Classify(m.dest(e))) {
		return false
	}
	edgeLine := prim.LineThrough(m.org(e), m.dest(e))
	return straddles(edgeLine.Classify(seg.Tail), edgeLine.Classify(seg.Head))
}

func straddles(a, b prim.Side) bool {
	return a == prim.SideLeft && b == prim.SideRight || a == prim.SideRight && b == prim.SideLeft
}

// connectAcrossFace joins the origin of from to vh if both are corners of a
// common face.
func (m *PlanarMesh[P, E, F]) connectAcrossFace(from Edge, vh int32) Edge {
	for _, g := range m.edges.OrgRing(from) {
		if !m.hasLeftFace(g) {
			continue
		}
		for _, b := range m.edges.LeftRing(g) {
			if m.orgID(b) == vh {
				return m.connect(m.edges.LPrev(g), b)
			}
		}
	}
	return Nil
}
