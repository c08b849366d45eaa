package planarmesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocamware/lass-sub002/prim"
)

func TestInsertSite(t *testing.T) {
	m := newTestBox(t, 10)

	t.Run("center of the square", func(t *testing.T) {
		e, err := m.InsertSite(pt(5, 5))
		require.NoError(t, err)
		assert.Equal(t, pt(5, 5), m.Org(e))
		assert.Equal(t, 5, m.VertexCount())
		assert.Equal(t, 8, m.EdgeCount())
		assert.Equal(t, 4, m.FaceCount())
		assert.Equal(t, 4, m.VertexOrder(e))
		for _, g := range m.edges.OrgRing(e) {
			assert.Equal(t, 3, m.ChainOrder(g))
		}
		assertValidMesh(t, m)
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, p := range []prim.Point{pt(5, 5), pt(5, 5+1e-9), pt(5-1e-7, 5)} {
			e, err := m.InsertSite(p)
			require.NoError(t, err)
			assert.Equal(t, pt(5, 5), m.Org(e))
			assert.Equal(t, 5, m.VertexCount())
			assert.Equal(t, 8, m.EdgeCount())
		}
	})

	t.Run("on the boundary", func(t *testing.T) {
		e, err := m.InsertSite(pt(5, 0))
		require.NoError(t, err)
		assert.Equal(t, pt(5, 0), m.Org(e))
		assert.Equal(t, 6, m.VertexCount())
		assert.Equal(t, 10, m.EdgeCount())
		assert.Equal(t, 5, m.FaceCount())
		assertValidMesh(t, m)

		boundary := 0
		for _, g := range m.edges.OrgRing(e) {
			if !m.HasLeftFace(g) || !m.HasRightFace(g) {
				boundary++
				assert.True(t, m.IsConstrained(g))
			}
		}
		assert.Equal(t, 2, boundary)
		assert.Len(t, m.BoundaryPolygon().Points, 5)
	})

	t.Run("near an edge", func(t *testing.T) {
		e, err := m.InsertSite(pt(2.5, 2.5+1e-7))
		require.NoError(t, err)
		assert.InDelta(t, 2.5, m.Org(e).X, 1e-6)
		assert.InDelta(t, 2.5, m.Org(e).Y, 1e-6)
		assertValidMesh(t, m)
	})

	t.Run("outside", func(t *testing.T) {
		_, err := m.InsertSite(pt(20, 20))
		assert.ErrorIs(t, err, ErrOutsideBoundary)
	})
}

func TestInsertSiteInMergedFace(t *testing.T) {
	// A pentagon with a straight corner at (5, 0), left after deleting every
	// spoke of that boundary site.
	newMesh := func(t *testing.T) *testMesh {
		m := newTestBox(t, 10)
		site, err := m.InsertSite(pt(5, 0))
		require.NoError(t, err)
		for _, g := range m.edges.OrgRing(site) {
			if !m.IsConstrained(g) {
				require.True(t, m.DeleteEdge(g))
			}
		}
		require.Equal(t, 1, m.FaceCount())
		require.Equal(t, 5, m.VertexCount())
		return m
	}

	for _, tc := range []struct {
		name        string
		site, snap  prim.Point
		constrained int
	}{
		{"right of the straight corner", pt(8, 1e-7), pt(8, 0), 2},
		{"left of the straight corner", pt(2, 1e-7), pt(2, 0), 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := newMesh(t)
			e, err := m.InsertSite(tc.site)
			require.NoError(t, err)
			assert.InDelta(t, tc.snap.X, m.Org(e).X, 1e-9)
			assert.InDelta(t, tc.snap.Y, m.Org(e).Y, 1e-9)
			assert.Equal(t, 6, m.VertexCount())
			assertValidMesh(t, m)

			constrained := 0
			for _, g := range m.edges.OrgRing(e) {
				if m.edges.IsConstrained(g) {
					constrained++
				}
			}
			assert.Equal(t, tc.constrained, constrained)
		})
	}
}

func TestInsertSiteDelaunay(t *testing.T) {
	m := newTestBox(t, 100)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 300; i++ {
		_, err := m.InsertSite(pt(100*rng.Float64(), 100*rng.Float64()))
		require.NoError(t, err)
	}
	assertValidMesh(t, m)
	assertDelaunay(t, m)
	// Every face of a triangulation with V vertices, B of them on the
	// boundary, is one of 2V-B-2 triangles.
	boundary := len(m.BoundaryPolygon().Points)
	assert.Equal(t, 2*m.VertexCount()-boundary-2, m.FaceCount())
}

func TestInsertSiteWithoutRepair(t *testing.T) {
	m := newTestBox(t, 100)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		_, err := m.InsertSiteOpt(pt(100*rng.Float64(), 100*rng.Float64()), false)
		require.NoError(t, err)
	}
	assertValidMesh(t, m)

	m.ForAllPrimaryEdges(func(e Edge) bool {
		require.NoError(t, m.FixEdge(e))
		return true
	})
	assertValidMesh(t, m)
	assertDelaunay(t, m)
}

func TestInsertEdge(t *testing.T) {
	newMesh := func(t *testing.T) *testMesh {
		m := newTestBox(t, 10)
		for _, p := range []prim.Point{pt(2, 5), pt(8, 5), pt(5, 2), pt(5, 8), pt(3, 3), pt(7, 7), pt(4, 6)} {
			_, err := m.InsertSite(p)
			require.NoError(t, err)
		}
		return m
	}

	t.Run("through a vertex", func(t *testing.T) {
		m := newMesh(t)
		e, err := m.InsertEdge(prim.LineSegment2D{Tail: pt(1, 1), Head: pt(9, 9)}, "left", "right")
		require.NoError(t, err)
		assert.Equal(t, pt(1, 1), m.Org(e))
		assert.True(t, m.IsConstrained(e))
		// (3, 3) splits the segment
		assert.Equal(t, pt(3, 3), m.Dest(e))
		assert.True(t, constrainedPath(m, pt(1, 1), pt(9, 9)))
		assertValidMesh(t, m)
	})

	t.Run("crossing a constraint", func(t *testing.T) {
		m := newMesh(t)
		_, err := m.InsertEdge(prim.LineSegment2D{Tail: pt(1, 1), Head: pt(9, 9)}, "a", "b")
		require.NoError(t, err)
		vertices := m.VertexCount()
		_, err = m.InsertEdge(prim.LineSegment2D{Tail: pt(1, 9), Head: pt(9, 1)}, "c", "d")
		require.NoError(t, err)
		assertValidMesh(t, m)

		crossing := nearestVertex(m, pt(5, 5))
		require.InDelta(t, 0, prim.Distance(m.Org(crossing), pt(5, 5)), 1e-9, "no vertex at the crossing")
		assert.Equal(t, vertices+3, m.VertexCount())
		assert.True(t, constrainedPath(m, pt(1, 1), pt(9, 9)))
		assert.True(t, constrainedPath(m, pt(1, 9), pt(9, 1)))

		constrained := 0
		for _, g := range m.edges.OrgRing(crossing) {
			if m.IsConstrained(g) {
				constrained++
			}
		}
		assert.Equal(t, 4, constrained)
	})

	t.Run("crossing near the end of a constraint", func(t *testing.T) {
		for _, offset := range []float64{1e-3, 1e-6, 1e-9, 1e-12} {
			m := newTestBox(t, 10)
			_, err := m.InsertEdge(prim.LineSegment2D{Tail: pt(1, 1), Head: pt(9, 9)}, "a", "b")
			require.NoError(t, err)
			tail, head := pt(1+offset, 0.2), pt(1+offset, 3)
			_, err = m.InsertEdge(prim.LineSegment2D{Tail: tail, Head: head}, "c", "d")
			if err != nil {
				// Refused, but never bent through a vertex off the segment
				assert.ErrorIs(t, err, ErrInvariant)
				continue
			}
			assertValidMesh(t, m)
			assert.True(t, constrainedPath(m, tail, head), "offset %g", offset)
			assert.True(t, constrainedPath(m, pt(1, 1), pt(9, 9)), "offset %g", offset)
		}
	})

	t.Run("oriented handles along the path", func(t *testing.T) {
		m := newMesh(t)
		tail, head := pt(1, 2), pt(9, 8)
		_, err := m.InsertEdge(prim.LineSegment2D{Tail: tail, Head: head}, "forward", "backward")
		require.NoError(t, err)
		require.True(t, constrainedPath(m, tail, head))
		m.ForAllPrimaryEdges(func(e Edge) bool {
			if !m.IsConstrained(e) || !m.HasLeftFace(e) || !m.HasRightFace(e) {
				return true
			}
			if m.Dest(e).Sub(m.Org(e)).Dot(head.Sub(tail)) > 0 {
				assert.Equal(t, "forward", m.EdgeHandle(e))
			} else {
				assert.Equal(t, "backward", m.EdgeHandle(e))
			}
			return true
		})
	})

	t.Run("existing edge", func(t *testing.T) {
		m := newTestBox(t, 10)
		edges := m.EdgeCount()
		e, err := m.InsertEdge(prim.LineSegment2D{Tail: pt(10, 10), Head: pt(0, 0)}, "l", "r")
		require.NoError(t, err)
		assert.Equal(t, edges, m.EdgeCount())
		assert.Equal(t, pt(10, 10), m.Org(e))
		assert.True(t, m.IsConstrained(e))
		assert.Equal(t, "l", m.EdgeHandle(e))
		assert.Equal(t, "r", m.EdgeHandle(e.Sym()))
	})

	t.Run("zero length", func(t *testing.T) {
		m := newTestBox(t, 10)
		e, err := m.InsertEdge(prim.LineSegment2D{Tail: pt(3, 4), Head: pt(3, 4)}, "l", "r")
		require.NoError(t, err)
		assert.Equal(t, pt(3, 4), m.Org(e))
		assert.Equal(t, 5, m.VertexCount())
	})

	t.Run("random constraints", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 20; trial++ {
			m := newTestBox(t, 100)
			for i := 0; i < 60; i++ {
				_, err := m.InsertSite(pt(100*rng.Float64(), 100*rng.Float64()))
				require.NoError(t, err)
			}
			for i := 0; i < 6; i++ {
				seg := prim.LineSegment2D{
					Tail: pt(1+98*rng.Float64(), 1+98*rng.Float64()),
					Head: pt(1+98*rng.Float64(), 1+98*rng.Float64()),
				}
				_, err := m.InsertEdge(seg, "", "")
				require.NoError(t, err)
			}
			assertValidMesh(t, m)
			assertDelaunay(t, m)
		}
	})
}

func TestSwapAndDelete(t *testing.T) {
	t.Run("constrained edges are protected", func(t *testing.T) {
		m := newTestBox(t, 10)
		e := m.StartEdge()
		edges := m.EdgeCount()
		assert.False(t, m.DeleteEdge(e))
		assert.Equal(t, edges, m.EdgeCount())
		assert.ErrorIs(t, m.Swap(e), ErrConstrainedEdge)
		assertValidMesh(t, m)
	})

	t.Run("swap the diagonal", func(t *testing.T) {
		m := newTestBox(t, 10)
		e := findEdge(m, pt(0, 0), pt(10, 10))
		require.NotEqual(t, Nil, e)
		require.NoError(t, m.Swap(e))
		assert.Equal(t, pt(10, 0), m.Org(e))
		assert.Equal(t, pt(0, 10), m.Dest(e))
		assertValidMesh(t, m)
	})

	t.Run("fix undoes a bad swap", func(t *testing.T) {
		a, b, c, d := pt(0, 0), pt(10, -1), pt(20, 0), pt(10, 1)
		m, err := NewQuad[string, string, int](a, b, c, d)
		require.NoError(t, err)
		e := findEdge(m, b, d)
		if e == Nil {
			e = findEdge(m, d, b)
		}
		require.NotEqual(t, Nil, e)
		require.NoError(t, m.Swap(e))
		assert.True(t, m.isIllegal(e))
		require.NoError(t, m.FixEdge(e))
		assert.False(t, m.isIllegal(e))
		assert.True(t, findEdge(m, b, d) != Nil || findEdge(m, d, b) != Nil)
	})

	t.Run("delete merges faces", func(t *testing.T) {
		m := newTestBox(t, 10)
		e := findEdge(m, pt(0, 0), pt(10, 10))
		require.True(t, m.DeleteEdge(e))
		assert.Equal(t, 4, m.EdgeCount())
		assert.Equal(t, 1, m.FaceCount())
		require.NoError(t, m.Validate())

		// Locating and inserting still work in the merged face
		site, err := m.InsertSite(pt(3, 6))
		require.NoError(t, err)
		assert.Equal(t, 4, m.VertexOrder(site))
		assertValidMesh(t, m)
	})

	t.Run("spokes of a site", func(t *testing.T) {
		m := newTestBox(t, 10)
		_, err := m.InsertSite(pt(5, 5))
		require.NoError(t, err)
		spoke := func(x, y float64) Edge {
			e := findEdge(m, pt(5, 5), pt(x, y))
			require.NotEqual(t, Nil, e)
			return e
		}

		require.True(t, m.DeleteEdge(spoke(0, 0)))
		assert.Equal(t, 4, m.ChainOrder(spoke(0, 10)))
		assert.ErrorIs(t, m.Swap(spoke(10, 0)), ErrDegenerate)
		// The merged face would bend inward at the site
		assert.False(t, m.DeleteEdge(spoke(10, 0)))
		// A straight corner is fine
		require.True(t, m.DeleteEdge(spoke(10, 10)))
		// The last two spokes hold the site in place
		assert.False(t, m.DeleteEdge(spoke(0, 10)))
		assert.Equal(t, 6, m.EdgeCount())
		require.NoError(t, m.Validate())
	})

	t.Run("swap spreads face handles", func(t *testing.T) {
		m := newTestBox(t, 10)
		_, err := m.InsertSite(pt(3, 4))
		require.NoError(t, err)
		e := findEdge(m, pt(3, 4), pt(10, 0))
		if e == Nil {
			e = findEdge(m, pt(10, 0), pt(3, 4))
		}
		require.NotEqual(t, Nil, e)
		require.NoError(t, m.ForAllFaces(func(f Edge) bool {
			m.SetFaceHandle(f.InvRot(), 1)
			return true
		}))
		m.SetFaceHandle(e.Rot(), 2)

		require.NoError(t, m.Swap(e))
		require.NoError(t, m.ForAllFaces(func(f Edge) bool {
			h := m.faceHandles[f.InvRot().Index()]
			for _, g := range m.edges.LeftRing(f) {
				assert.Equal(t, h, m.faceHandles[g.InvRot().Index()])
			}
			return true
		}))
		m.ForAllPrimaryEdges(func(g Edge) bool {
			differ := m.LeftFaceHandle(g) != m.RightFaceHandle(g)
			assert.Equal(t, differ, m.IsFaceConstrained(g), "edge %v-%v", m.Org(g), m.Dest(g))
			return true
		})
	})
}
