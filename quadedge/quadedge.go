// Package quadedge implements the quad-edge structure of Guibas and Stolfi:
//
//	Primitives for the Manipulation of General Subdivisions and the Computation of Voronoi Diagrams
//	Leonidas Guibas and Jorge Stolfi
//	ACM Transactions on Graphics, Vol. 4, No. 2, April 1985, Pages 74-123.
//
// Quad-edges live in an arena (Store) and are addressed by index. An Edge is
// one of the four directed slots of a quad-edge: slots 0 and 2 are the two
// directions of the primary edge, slots 1 and 3 the two directions of its dual.
// The store only knows topology and the two per-edge flags; geometry and user
// payload are kept in side tables by the owner, indexed by Edge.Index.
package quadedge

import "fmt"

// Edge is a directed edge reference: quad index << 2 | rotation.
type Edge int32

// Nil is the null edge.
const Nil Edge = -1

// Primitive algebraic operations

// Rot is the dual edge directed from the right face to the left face.
func (e Edge) Rot() Edge {
	return e&^3 | (e+1)&3
}

// InvRot is the inverse of Rot.
func (e Edge) InvRot() Edge {
	return e&^3 | (e+3)&3
}

// Sym is the same undirected edge in the opposite direction.
func (e Edge) Sym() Edge {
	return e ^ 2
}

// Quad is the arena index of the owning quad-edge.
func (e Edge) Quad() int {
	return int(e >> 2)
}

// Rotation is the slot of e inside its quad-edge, in [0, 4).
func (e Edge) Rotation() int {
	return int(e & 3)
}

// Index is the slot index of e over the whole arena, suitable for side tables.
func (e Edge) Index() int {
	return int(e)
}

// Canonical is slot 0 of the owning quad-edge.
func (e Edge) Canonical() Edge {
	return e &^ 3
}

// IsPrimary reports whether e belongs to the primary subdivision (slots 0 and
// 2) rather than to its dual.
func (e Edge) IsPrimary() bool {
	return e&1 == 0
}

func (e Edge) IsDual() bool {
	return e&1 == 1
}

func (e Edge) String() string {
	if e == Nil {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", e.Quad(), e.Rotation())
}
