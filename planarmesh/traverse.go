package planarmesh

// The callbacks of every traversal return false to stop early. The traversal
// itself then reports false (or, for vertices and faces, stops quietly).
// Callbacks must not change the topology of the mesh.

// ForAllPrimaryEdges visits both directions of every primary edge.
func (m *PlanarMesh[P, E, F]) ForAllPrimaryEdges(fn func(e Edge) bool) bool {
	return m.edges.ForEachQuad(func(q Edge) bool {
		return fn(q) && fn(q.Sym())
	})
}

// ForAllDualEdges visits both directions of every dual edge.
func (m *PlanarMesh[P, E, F]) ForAllDualEdges(fn func(e Edge) bool) bool {
	return m.edges.ForEachQuad(func(q Edge) bool {
		return fn(q.Rot()) && fn(q.InvRot())
	})
}

// ForAllEdges visits all four slots of every quad-edge.
func (m *PlanarMesh[P, E, F]) ForAllEdges(fn func(e Edge) bool) bool {
	return m.edges.ForEachQuad(func(q Edge) bool {
		return fn(q) && fn(q.Rot()) && fn(q.Sym()) && fn(q.InvRot())
	})
}

// ForAllVertices calls fn once per vertex with one of the edges leaving it.
// Each call holds a level of the internal marking stack; it fails with
// ErrStackOverflow when nested too deep.
func (m *PlanarMesh[P, E, F]) ForAllVertices(fn func(e Edge) bool) (err error) {
	defer catch(&err)
	visited := m.newMarker()
	defer visited.release()
	m.edges.ForEachQuad(func(q Edge) bool {
		for _, e := range [2]Edge{q, q.Sym()} {
			if visited.marked(e) {
				continue
			}
			visited.setAll(m.edges.OrgRing(e), true)
			if !fn(e) {
				return false
			}
		}
		return true
	})
	return nil
}

// ForAllFaces calls fn once per face inside the boundary with one of the
// edges that have it on their left.
func (m *PlanarMesh[P, E, F]) ForAllFaces(fn func(e Edge) bool) (err error) {
	defer catch(&err)
	visited := m.newMarker()
	defer visited.release()
	m.edges.ForEachQuad(func(q Edge) bool {
		for _, e := range [2]Edge{q, q.Sym()} {
			if !m.hasLeftFace(e) || visited.marked(e) {
				continue
			}
			visited.setAll(m.edges.LeftRing(e), true)
			if !fn(e) {
				return false
			}
		}
		return true
	})
	return nil
}
