package quadedge

// Store is an arena of quad-edges. Freed quad-edges are recycled through a
// free list, so an Edge stays valid until DeleteEdge is called on it.
type Store struct {
	next            []Edge // oNext per slot
	alive           []bool // per quad
	constrained     []bool // per quad
	faceConstrained []bool // per quad
	free            []int32
	live            int
}

func NewStore() *Store {
	return &Store{}
}

// Len is the number of live quad-edges.
func (s *Store) Len() int {
	return s.live
}

// Slots is the size of the slot index space. Side tables indexed by
// Edge.Index must be at least this long.
func (s *Store) Slots() int {
	return len(s.next)
}

// Alive reports whether e refers to a quad-edge that has not been deleted.
func (s *Store) Alive(e Edge) bool {
	q := e.Quad()
	return e >= 0 && q < len(s.alive) && s.alive[q]
}

// MakeEdge allocates an isolated edge: both primary slots are their own
// oNext, and the dual slots point at each other.
func (s *Store) MakeEdge(constrained bool) Edge {
	var q int
	if n := len(s.free); n > 0 {
		q = int(s.free[n-1])
		s.free = s.free[:n-1]
	} else {
		q = len(s.alive)
		s.alive = append(s.alive, false)
		s.constrained = append(s.constrained, false)
		s.faceConstrained = append(s.faceConstrained, false)
		s.next = append(s.next, Nil, Nil, Nil, Nil)
	}
	e := Edge(q << 2)
	s.next[e] = e
	s.next[e+1] = e + 3
	s.next[e+2] = e + 2
	s.next[e+3] = e + 1
	s.alive[q] = true
	s.constrained[q] = constrained
	s.faceConstrained[q] = false
	s.live++
	return e
}

// Splice is the single topology editing primitive. If a and b belong to
// distinct origin rings it merges them, if they belong to the same ring it
// splits it. The dual rings are updated accordingly.
func (s *Store) Splice(a, b Edge) {
	alpha := s.next[a].Rot()
	beta := s.next[b].Rot()
	s.next[a], s.next[b] = s.next[b], s.next[a]
	s.next[alpha], s.next[beta] = s.next[beta], s.next[alpha]
}

// Connect adds an edge from the destination of a to the origin of b. Both
// must border the same left face, which the new edge splits in two.
func (s *Store) Connect(a, b Edge) Edge {
	e := s.MakeEdge(false)
	s.Splice(e, s.LNext(a))
	s.Splice(e.Sym(), b)
	return e
}

// Swap turns e, the diagonal of the quadrilateral formed by its two adjacent
// triangles, into the other diagonal. The caller updates geometry.
func (s *Store) Swap(e Edge) {
	a := s.OPrev(e)
	b := s.OPrev(e.Sym())
	s.Splice(e, a)
	s.Splice(e.Sym(), b)
	s.Splice(e, s.LNext(a))
	s.Splice(e.Sym(), s.LNext(b))
}

// Detach removes e from both of its origin rings, leaving it isolated.
func (s *Store) Detach(e Edge) {
	s.Splice(e, s.OPrev(e))
	s.Splice(e.Sym(), s.OPrev(e.Sym()))
}

// DeleteEdge detaches e and returns its quad-edge to the free list.
func (s *Store) DeleteEdge(e Edge) {
	s.Detach(e)
	s.dispose(e)
}

func (s *Store) dispose(e Edge) {
	q := e.Quad()
	base := e.Canonical()
	for r := Edge(0); r < 4; r++ {
		s.next[base+r] = Nil
	}
	s.alive[q] = false
	s.constrained[q] = false
	s.faceConstrained[q] = false
	s.free = append(s.free, int32(q))
	s.live--
}

func (s *Store) IsConstrained(e Edge) bool {
	return s.constrained[e.Quad()]
}

func (s *Store) SetConstrained(e Edge, constrained bool) {
	s.constrained[e.Quad()] = constrained
}

// IsFaceConstrained reports whether the faces on both sides of e carry
// different handles.
func (s *Store) IsFaceConstrained(e Edge) bool {
	return s.faceConstrained[e.Quad()]
}

func (s *Store) SetFaceConstrained(e Edge, constrained bool) {
	s.faceConstrained[e.Quad()] = constrained
}

// ForEachQuad calls fn with slot 0 of every live quad-edge until fn returns
// false. It reports whether the iteration ran to completion.
func (s *Store) ForEachQuad(fn func(e Edge) bool) bool {
	for q, alive := range s.alive {
		if !alive {
			continue
		}
		if !fn(Edge(q << 2)) {
			return false
		}
	}
	return true
}
