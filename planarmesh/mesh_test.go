package planarmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cocamware/lass-sub002/prim"
)

func TestNewTriangle(t *testing.T) {
	// Clockwise input is reoriented
	m, err := NewTriangle[string, string, int](pt(0, 0), pt(0, 4), pt(4, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	assertValidMesh(t, m)

	e := m.StartEdge()
	assert.True(t, m.HasLeftFace(e))
	assert.False(t, m.HasRightFace(e))
	assert.True(t, m.IsConstrained(e))
	assert.Equal(t, 3, m.ChainOrder(e))
	assert.Equal(t, 2, m.VertexOrder(e))
	assert.True(t, m.Boundary().IsCCW())

	_, err = NewTriangle[string, string, int](pt(0, 0), pt(1, 1), pt(2, 2))
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestNewQuad(t *testing.T) {
	t.Run("picks the Delaunay diagonal", func(t *testing.T) {
		a, b, c, d := pt(0, 0), pt(10, -1), pt(20, 0), pt(10, 1)
		m, err := NewQuad[string, string, int](a, b, c, d)
		require.NoError(t, err)
		assert.Equal(t, 5, m.EdgeCount())
		assert.Equal(t, 2, m.FaceCount())
		assertValidMesh(t, m)
		assert.NotEqual(t, Nil, findEdge(m, b, d))
		assert.Equal(t, Nil, findEdge(m, a, c))
		assert.Equal(t, Nil, findEdge(m, c, a))
	})

	t.Run("square", func(t *testing.T) {
		m := newTestBox(t, 10)
		assertValidMesh(t, m)
		assert.NotEqual(t, Nil, findEdge(m, pt(0, 0), pt(10, 10)))
	})

	t.Run("clockwise input", func(t *testing.T) {
		m, err := NewQuad[string, string, int](pt(0, 10), pt(10, 10), pt(10, 0), pt(0, 0))
		require.NoError(t, err)
		assertValidMesh(t, m)
	})

	t.Run("not convex", func(t *testing.T) {
		_, err := NewQuad[string, string, int](pt(0, 0), pt(10, 0), pt(2, 2), pt(0, 10))
		assert.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestNewBox(t *testing.T) {
	m, err := NewBox[string, string, int](prim.BoundsOf(pt(-1, -2), pt(3, 4)))
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.InDelta(t, 24, m.BoundaryPolygon().Area(), 1e-12)

	_, err = NewBox[string, string, int](prim.BoundsOf(pt(1, 1), pt(1, 5)))
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestOptions(t *testing.T) {
	m := newTestBox(t, 10,
		WithTolerance(1e-6),
		WithPointDistanceTolerance(0.5),
		WithMaxInsertEdgeRetries(3),
		WithLogger(zap.NewExample()),
	)
	assert.Equal(t, 1e-6, m.tolerance)
	assert.Equal(t, 0.5, m.pointDistanceTolerance)
	assert.Equal(t, 3, m.maxInsertEdgeRetries)

	// Sites closer than the point distance tolerance merge
	e, err := m.InsertSite(pt(3, 3))
	require.NoError(t, err)
	again, err := m.InsertSite(pt(3.2, 3.2))
	require.NoError(t, err)
	assert.Equal(t, m.Org(e), m.Org(again))

	assert.Panics(t, func() { WithTolerance(-1) })
	assert.Panics(t, func() { WithPointDistanceTolerance(-1) })
	assert.Panics(t, func() { WithMaxInsertEdgeRetries(0) })
}

func TestAccessorMisuse(t *testing.T) {
	m := newTestBox(t, 10)
	e := m.StartEdge()
	assert.Panics(t, func() { m.Org(e.Rot()) })
	assert.Panics(t, func() { m.FaceHandle(e) })
	assert.Panics(t, func() { m.Org(Nil) })
}

func TestTriangleAndPolygon(t *testing.T) {
	m := newTestBox(t, 10)
	e := m.StartEdge()
	tri, err := m.Triangle(e)
	require.NoError(t, err)
	assert.Equal(t, m.Org(e), tri.A)
	assert.InDelta(t, 50, tri.Area(), 1e-12)
	assert.Equal(t, 3, m.Polygon(e).Len())

	diagonal := findEdge(m, pt(0, 0), pt(10, 10))
	require.True(t, m.DeleteEdge(diagonal))
	_, err = m.Triangle(e)
	assert.ErrorIs(t, err, ErrInvariant)
	poly := m.Polygon(e)
	assert.Equal(t, 4, poly.Len())
	assert.InDelta(t, 100, poly.Area(), 1e-12)
}

func TestPredicates(t *testing.T) {
	m := newTestBox(t, 10)
	e := findEdge(m, pt(0, 0), pt(10, 10))
	require.NotEqual(t, Nil, e)

	assert.True(t, m.LeftOf(pt(2, 8), e))
	assert.True(t, m.RightOf(pt(8, 2), e))
	assert.False(t, m.RightOf(pt(5, 5), e))
	assert.True(t, m.OnEdge(pt(5, 5), e))
	assert.True(t, m.OnEdge(pt(5, 5+1e-9), e))
	assert.False(t, m.OnEdge(pt(11, 11), e))
	assert.True(t, m.InConvexCell(pt(2, 8), e))
	assert.False(t, m.InConvexCell(pt(8, 2), e))

	// The outside counts as a face around boundary vertices
	assert.False(t, m.AllEqualChainOrder(e))
	site, err := m.InsertSite(pt(5, 5))
	require.NoError(t, err)
	assert.True(t, m.AllEqualChainOrder(site))
	assert.Equal(t, 4, m.VertexOrder(site))
}

func TestHandles(t *testing.T) {
	m := newTestBox(t, 10)
	e := findEdge(m, pt(0, 0), pt(10, 10))
	require.NotEqual(t, Nil, e)

	t.Run("point handles are shared around the vertex", func(t *testing.T) {
		m.SetPointHandle(e, "origin")
		for _, g := range m.edges.OrgRing(e) {
			assert.Equal(t, "origin", m.PointHandle(g))
		}
		assert.Equal(t, "", m.PointHandle(e.Sym()))
	})

	t.Run("oriented edge handles", func(t *testing.T) {
		m.SetOrientedEdgeHandle(e, "forward", "backward", pt(1, 1))
		assert.Equal(t, "forward", m.EdgeHandle(e))
		assert.Equal(t, "backward", m.EdgeHandle(e.Sym()))
		m.SetOrientedEdgeHandle(e, "forward", "backward", pt(-1, 0))
		assert.Equal(t, "backward", m.EdgeHandle(e))
		assert.Equal(t, "forward", m.EdgeHandle(e.Sym()))
	})

	t.Run("face handles", func(t *testing.T) {
		assert.False(t, m.IsFaceConstrained(e))
		m.SetFaceHandle(e.InvRot(), 3)
		for _, g := range m.edges.LeftRing(e) {
			assert.Equal(t, 3, m.LeftFaceHandle(g))
		}
		assert.Equal(t, 0, m.RightFaceHandle(e))
		assert.True(t, m.IsFaceConstrained(e))
		m.SetRightFaceHandle(e, 3)
		assert.False(t, m.IsFaceConstrained(e))
		assert.Equal(t, 3, m.FaceHandle(e.Rot()))
	})

	t.Run("new faces inherit the handle", func(t *testing.T) {
		site, err := m.InsertSite(pt(2, 8))
		require.NoError(t, err)
		for _, g := range m.edges.OrgRing(site) {
			assert.Equal(t, 3, m.LeftFaceHandle(g))
		}
	})

	t.Run("markings", func(t *testing.T) {
		assert.False(t, m.Marking(e))
		m.SetMarking(e, true)
		assert.True(t, m.Marking(e.Sym()))
	})
}

func TestDescribe(t *testing.T) {
	m := newTestBox(t, 10)
	assert.NotEmpty(t, m.Describe(m.StartEdge()))
	assert.Equal(t, "Ø", m.Describe(Nil))
}
