// Package planarmesh maintains a constrained Delaunay triangulation of a
// convex region on top of a quad-edge structure.
//
// The mesh starts as a triangle, a convex quadrilateral or a box. Points and
// constraint segments are inserted incrementally; constrained edges survive
// every later operation, and the remaining edges are kept locally Delaunay.
// Points, edges and faces each carry a user handle of a caller chosen type.
//
// Edges are plain indices into the mesh storage. Slots 0 and 2 of every
// quad-edge are the two directions of a primary edge, slots 1 and 3 are the
// dual edge linking the faces on either side.
//
// A mesh is not safe for concurrent use.
package planarmesh

import (
	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
	"github.com/cocamware/lass-sub002/quadedge"
)

// Edge is a directed edge of the mesh or of its dual.
type Edge = quadedge.Edge

// Nil is the absent edge.
const Nil = quadedge.Nil

type vertex[P any] struct {
	pos    prim.Point
	handle P
	edge   Edge // some edge leaving the vertex
}

// PlanarMesh is a constrained Delaunay triangulation with point handles of
// type P, edge handles of type E and face handles of type F. The zero value
// of F means "no face handle"; face constraint flags compare handles with ==.
type PlanarMesh[P any, E any, F comparable] struct {
	edges    *quadedge.Store
	vertices []vertex[P]

	// Side tables indexed by Edge.Index.
	orgs          []int32 // origin vertex of primary slots
	outer         []bool  // the left face of a primary slot is outside the boundary
	edgeHandles   []E
	faceHandles   []F // on dual slots
	internalMarks []uint8

	marks []bool // per quad

	stackDepth     int
	startEdge      Edge
	lastLocateEdge Edge
	boundary       []prim.Point

	tolerance              float64
	pointDistanceTolerance float64
	maxInsertEdgeRetries   int
	log                    *zap.Logger
}

func newMesh[P any, E any, F comparable](opts []Option) *PlanarMesh[P, E, F] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &PlanarMesh[P, E, F]{
		edges:                  quadedge.NewStore(),
		startEdge:              Nil,
		lastLocateEdge:         Nil,
		tolerance:              o.tolerance,
		pointDistanceTolerance: o.pointDistanceTolerance,
		maxInsertEdgeRetries:   o.maxInsertEdgeRetries,
		log:                    o.logger,
	}
}

// NewTriangle creates a mesh covering the triangle abc. The corners may be
// given in either orientation.
func NewTriangle[P any, E any, F comparable](a, b, c prim.Point, opts ...Option) (*PlanarMesh[P, E, F], error) {
	if prim.Cw(a, b, c) {
		b, c = c, b
	}
	if !prim.Ccw(a, b, c) {
		return nil, newError(ErrDegenerate, "triangle %v %v %v is degenerate", a, b, c)
	}
	m := newMesh[P, E, F](opts)
	m.buildBoundary([]prim.Point{a, b, c})
	m.log.Debug("created triangle mesh")
	return m, nil
}

// NewQuad creates a mesh covering the strictly convex quadrilateral abcd,
// split along the diagonal that yields a Delaunay pair of triangles.
func NewQuad[P any, E any, F comparable](a, b, c, d prim.Point, opts ...Option) (*PlanarMesh[P, E, F], error) {
	corners := prim.SimplePolygon2D{Points: []prim.Point{a, b, c, d}}
	if corners.SignedArea() < 0 {
		corners = corners.Reverse()
	}
	for i := range corners.Points {
		if !prim.Ccw(corners.At(i), corners.At(i+1), corners.At(i+2)) {
			return nil, newError(ErrDegenerate, "quad %v %v %v %v is not strictly convex", a, b, c, d)
		}
	}
	m := newMesh[P, E, F](opts)
	ring := m.buildBoundary(corners.Points)
	p := corners.Points
	if prim.InCircle(p[0], p[1], p[2], p[3]) {
		m.connect(ring[0], ring[3])
	} else {
		m.connect(ring[3], ring[2])
	}
	m.log.Debug("created quad mesh")
	return m, nil
}

// NewBox creates a mesh covering the axis aligned box.
func NewBox[P any, E any, F comparable](box prim.AABB, opts ...Option) (*PlanarMesh[P, E, F], error) {
	if box.IsEmpty() || box.Size().X <= 0 || box.Size().Y <= 0 {
		return nil, newError(ErrDegenerate, "box %v has no area", box)
	}
	c := prim.BoxCorners(box)
	return NewQuad[P, E, F](c[0], c[1], c[2], c[3], opts...)
}

// buildBoundary links the counterclockwise corners into a ring of
// constrained edges and returns them in order.
func (m *PlanarMesh[P, E, F]) buildBoundary(corners []prim.Point) []Edge {
	n := len(corners)
	m.boundary = append([]prim.Point(nil), corners...)
	ids := make([]int32, n)
	for i, p := range corners {
		ids[i] = m.addVertex(p)
	}
	ring := make([]Edge, n)
	for i := range corners {
		e := m.makeEdge(true)
		m.setOrgID(e, ids[i])
		m.setOrgID(e.Sym(), ids[(i+1)%n])
		m.outer[e.Sym().Index()] = true
		if i > 0 {
			m.edges.Splice(ring[i-1].Sym(), e)
		}
		ring[i] = e
	}
	m.edges.Splice(ring[n-1].Sym(), ring[0])
	m.startEdge = ring[0]
	m.lastLocateEdge = ring[0]
	return ring
}

func (m *PlanarMesh[P, E, F]) addVertex(p prim.Point) int32 {
	m.vertices = append(m.vertices, vertex[P]{pos: p, edge: Nil})
	return int32(len(m.vertices) - 1)
}

// adopt grows the side tables to cover e and wipes what a recycled
// quad-edge left behind.
func (m *PlanarMesh[P, E, F]) adopt(e Edge) {
	if n := m.edges.Slots(); len(m.orgs) < n {
		grow := n - len(m.orgs)
		m.orgs = append(m.orgs, make([]int32, grow)...)
		m.outer = append(m.outer, make([]bool, grow)...)
		m.edgeHandles = append(m.edgeHandles, make([]E, grow)...)
		m.faceHandles = append(m.faceHandles, make([]F, grow)...)
		m.internalMarks = append(m.internalMarks, make([]uint8, grow)...)
		m.marks = append(m.marks, make([]bool, n/4-len(m.marks))...)
	}
	var noEdge E
	var noFace F
	base := e.Canonical()
	for r := Edge(0); r < 4; r++ {
		i := (base + r).Index()
		m.orgs[i] = -1
		m.outer[i] = false
		m.edgeHandles[i] = noEdge
		m.faceHandles[i] = noFace
		m.internalMarks[i] = 0
	}
	m.marks[e.Quad()] = false
}

func (m *PlanarMesh[P, E, F]) makeEdge(constrained bool) Edge {
	e := m.edges.MakeEdge(constrained)
	m.adopt(e)
	return e
}

// connect adds an edge from dest(a) to org(b) across their common left face.
// Both halves of the split face keep its handle.
func (m *PlanarMesh[P, E, F]) connect(a, b Edge) Edge {
	e := m.edges.Connect(a, b)
	m.adopt(e)
	m.orgs[e.Index()] = m.destID(a)
	m.orgs[e.Sym().Index()] = m.orgID(b)
	h := m.faceHandles[a.InvRot().Index()]
	m.faceHandles[e.Rot().Index()] = h
	m.faceHandles[e.InvRot().Index()] = h
	return e
}

func (m *PlanarMesh[P, E, F]) orgID(e Edge) int32 {
	return m.orgs[e.Index()]
}

func (m *PlanarMesh[P, E, F]) destID(e Edge) int32 {
	return m.orgs[e.Sym().Index()]
}

func (m *PlanarMesh[P, E, F]) setOrgID(e Edge, v int32) {
	m.orgs[e.Index()] = v
	m.vertices[v].edge = e
}

func (m *PlanarMesh[P, E, F]) org(e Edge) prim.Point {
	return m.vertices[m.orgs[e.Index()]].pos
}

func (m *PlanarMesh[P, E, F]) dest(e Edge) prim.Point {
	return m.vertices[m.orgs[e.Sym().Index()]].pos
}

func (m *PlanarMesh[P, E, F]) pos(v int32) prim.Point {
	return m.vertices[v].pos
}

func (m *PlanarMesh[P, E, F]) hasLeftFace(e Edge) bool {
	return !m.outer[e.Index()]
}

func (m *PlanarMesh[P, E, F]) hasRightFace(e Edge) bool {
	return !m.outer[e.Sym().Index()]
}

func (m *PlanarMesh[P, E, F]) checkPrimary(e Edge) {
	if !e.IsPrimary() || !m.edges.Alive(e) {
		fatalf("%v is not a live primary edge", e)
	}
}

func (m *PlanarMesh[P, E, F]) checkDual(e Edge) {
	if !e.IsDual() || !m.edges.Alive(e) {
		fatalf("%v is not a live dual edge", e)
	}
}

// StartEdge is a boundary edge that keeps its left face inside the mesh.
func (m *PlanarMesh[P, E, F]) StartEdge() Edge {
	return m.startEdge
}

// Boundary returns the corners of the mesh boundary in counterclockwise
// order.
func (m *PlanarMesh[P, E, F]) Boundary() prim.SimplePolygon2D {
	return prim.SimplePolygon2D{Points: append([]prim.Point(nil), m.boundary...)}
}

// VertexCount is the number of vertices.
func (m *PlanarMesh[P, E, F]) VertexCount() int {
	return len(m.vertices)
}

// EdgeCount is the number of undirected primary edges.
func (m *PlanarMesh[P, E, F]) EdgeCount() int {
	return m.edges.Len()
}

// FaceCount is the number of faces inside the boundary.
func (m *PlanarMesh[P, E, F]) FaceCount() int {
	n := 0
	_ = m.ForAllFaces(func(Edge) bool {
		n++
		return true
	})
	return n
}
