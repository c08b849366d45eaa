package planarmesh

// Shared helpers for the mesh tests. No tests live here.

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cocamware/lass-sub002/internal/svgpoly"
	"github.com/cocamware/lass-sub002/prim"
)

//go:embed fixtures
var fixtures embed.FS

type testMesh = PlanarMesh[string, string, int]

func pt(x, y float64) prim.Point {
	return prim.Point{X: x, Y: y}
}

func newTestBox(t *testing.T, size float64, opts ...Option) *testMesh {
	m, err := NewBox[string, string, int](prim.BoundsOf(pt(0, 0), pt(size, size)), opts...)
	require.NoError(t, err)
	return m
}

// findEdge returns the primary edge from a to b, or Nil.
func findEdge(m *testMesh, a, b prim.Point) Edge {
	found := Nil
	m.ForAllPrimaryEdges(func(e Edge) bool {
		if m.Org(e) == a && m.Dest(e) == b {
			found = e
			return false
		}
		return true
	})
	return found
}

// nearestVertex returns an edge leaving the vertex closest to p.
func nearestVertex(m *testMesh, p prim.Point) Edge {
	best, bestDistance := Nil, 0.0
	_ = m.ForAllVertices(func(e Edge) bool {
		if d := prim.Distance(p, m.Org(e)); best == Nil || d < bestDistance {
			best, bestDistance = e, d
		}
		return true
	})
	return best
}

func loadFixture(t *testing.T, name string) prim.PolygonList {
	f, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err)
	defer f.Close()
	polys, err := svgpoly.Read(f)
	require.NoError(t, err)
	return prim.PolygonList(polys)
}

// assertValidMesh checks the structural invariants and that every face is a
// counterclockwise triangle with positive area.
func assertValidMesh(t *testing.T, m *testMesh) {
	t.Helper()
	require.NoError(t, m.Validate())
	require.NoError(t, m.ForAllFaces(func(e Edge) bool {
		tri, err := m.Triangle(e)
		require.NoError(t, err)
		require.True(t, tri.IsCCW(), "clockwise triangle %v", tri)
		return true
	}))
}

// assertDelaunay checks that no unconstrained edge has an opposite corner
// inside the circumcircle of its neighbor.
func assertDelaunay(t *testing.T, m *testMesh) {
	t.Helper()
	m.ForAllPrimaryEdges(func(e Edge) bool {
		require.False(t, m.isIllegal(e), "edge %v-%v is not locally Delaunay", m.Org(e), m.Dest(e))
		return true
	})
}

// constrainedPath follows constrained edges from tail along the direction of
// head and reports whether it arrives at head.
func constrainedPath(m *testMesh, tail, head prim.Point) bool {
	e, err := m.PointLocate(tail)
	if err != nil {
		return false
	}
	dir := head.Sub(tail)
	for steps := 0; m.Org(e) != head; steps++ {
		if steps > m.EdgeCount() {
			return false
		}
		next := Nil
		for _, g := range m.edges.OrgRing(e) {
			if m.IsConstrained(g) && m.onSegment(m.Dest(g), tail, head) && m.Dest(g).Sub(m.Org(g)).Dot(dir) > 0 {
				next = g
			}
		}
		if next == Nil {
			return false
		}
		e = next.Sym()
	}
	return true
}

func faceArea(m *testMesh, handle int) float64 {
	var area float64
	_ = m.ForAllFaces(func(e Edge) bool {
		if m.LeftFaceHandle(e) == handle {
			area += m.Polygon(e).Area()
		}
		return true
	})
	return area
}
