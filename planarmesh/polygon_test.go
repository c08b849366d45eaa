package planarmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocamware/lass-sub002/prim"
)

func TestMarkPolygon(t *testing.T) {
	m := newTestBox(t, 10)
	tri := prim.SimplePolygon2D{Points: []prim.Point{pt(2, 2), pt(8, 2), pt(5, 8)}}
	e, err := m.InsertPolygon(tri, "inside", "outside")
	require.NoError(t, err)
	assert.Equal(t, pt(2, 2), m.Org(e))
	assertValidMesh(t, m)

	require.NoError(t, m.MarkPolygon(tri, 7))
	require.NoError(t, m.ForAllFaces(func(e Edge) bool {
		inside := tri.ContainsPointByEvenOdd(m.Polygon(e).Centroid())
		if inside {
			assert.Equal(t, 7, m.LeftFaceHandle(e))
		} else {
			assert.Equal(t, 0, m.LeftFaceHandle(e))
		}
		return true
	}))
	assert.InDelta(t, tri.Area(), faceArea(m, 7), 1e-9)

	// The sides of the triangle separate differently marked faces
	for i := 0; i < tri.Len(); i++ {
		assert.True(t, constrainedPath(m, tri.At(i), tri.At(i+1)))
	}
	m.ForAllPrimaryEdges(func(e Edge) bool {
		if m.IsFaceConstrained(e) && m.HasLeftFace(e) && m.HasRightFace(e) {
			assert.True(t, m.IsConstrained(e))
		}
		return true
	})
}

func TestMarkPolygonOfSites(t *testing.T) {
	// The sides of the triangle are Delaunay edges, but none is constrained
	m := newTestBox(t, 10)
	tri := prim.SimplePolygon2D{Points: []prim.Point{pt(3, 3), pt(7, 3), pt(5, 7)}}
	for _, p := range tri.Points {
		_, err := m.InsertSite(p)
		require.NoError(t, err)
	}
	for i := 0; i < tri.Len(); i++ {
		require.False(t, constrainedPath(m, tri.At(i), tri.At(i+1)))
	}

	require.NoError(t, m.MarkPolygon(tri, 7))
	assert.InDelta(t, 8, faceArea(m, 7), 1e-9)
	assert.InDelta(t, 100-8, faceArea(m, 0), 1e-9)
}

func TestMarkOverlappingPolygons(t *testing.T) {
	m := newTestBox(t, 10)
	polys := prim.PolygonList{
		{Points: []prim.Point{pt(2, 2), pt(6, 2), pt(6, 6), pt(2, 6)}},
		{Points: []prim.Point{pt(4, 4), pt(8, 4), pt(8, 8), pt(4, 8)}},
	}
	for _, poly := range polys {
		_, err := m.InsertPolygon(poly, "in", "out")
		require.NoError(t, err)
	}
	assertValidMesh(t, m)
	// The sides cross at (6, 4) and (4, 6)
	assert.Equal(t, 4+8+2, m.VertexCount())

	require.NoError(t, m.MarkPolygons(polys, 1))
	assert.InDelta(t, 24, faceArea(m, 1), 1e-9)
	assert.InDelta(t, 100-24, faceArea(m, 0), 1e-9)
}

func TestInsertPolygonErrors(t *testing.T) {
	m := newTestBox(t, 10)
	_, err := m.InsertPolygon(prim.SimplePolygon2D{Points: []prim.Point{pt(1, 1), pt(2, 2)}}, "", "")
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = m.InsertPolygon(prim.SimplePolygon2D{Points: []prim.Point{pt(1, 1), pt(20, 2), pt(3, 3)}}, "", "")
	assert.ErrorIs(t, err, ErrOutsideBoundary)
}

func TestFixtures(t *testing.T) {
	fixtureNames := []string{"star", "comb", "frame"}
	for _, name := range fixtureNames {
		for _, makeDelaunay := range []bool{true, false} {
			t.Run(name, func(t *testing.T) {
				polys := loadFixture(t, name)
				m := newTestBox(t, 100)
				for _, poly := range polys {
					_, err := m.InsertPolygonOpt(poly, "in", "out", makeDelaunay)
					require.NoError(t, err)
				}
				assertValidMesh(t, m)
				require.NoError(t, m.MarkPolygons(polys, 1))

				expected := polys[0].Area()
				for _, hole := range polys[1:] {
					expected -= hole.Area()
				}
				assert.InDelta(t, expected, faceArea(m, 1), 1e-6)
				assert.InDelta(t, 100*100-expected, faceArea(m, 0), 1e-6)

				for _, poly := range polys {
					for i := 0; i < poly.Len(); i++ {
						assert.True(t, constrainedPath(m, poly.At(i), poly.At(i+1)))
					}
				}
			})
		}
	}
}
