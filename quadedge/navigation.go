package quadedge

// ONext is the next edge counterclockwise around the origin of e.
func (s *Store) ONext(e Edge) Edge {
	return s.next[e]
}

// Derived algebraic operations

// OPrev is the next edge clockwise around the origin of e.
func (s *Store) OPrev(e Edge) Edge {
	return s.ONext(e.Rot()).Rot()
}

// DNext is the next edge counterclockwise around the destination of e.
func (s *Store) DNext(e Edge) Edge {
	return s.ONext(e.Sym()).Sym()
}

// DPrev is the next edge clockwise around the destination of e.
func (s *Store) DPrev(e Edge) Edge {
	return s.ONext(e.InvRot()).InvRot()
}

// LNext is the next edge counterclockwise around the left face of e.
func (s *Store) LNext(e Edge) Edge {
	return s.ONext(e.InvRot()).Rot()
}

// LPrev is the previous edge around the left face of e.
func (s *Store) LPrev(e Edge) Edge {
	return s.ONext(e).Sym()
}

// RNext is the next edge counterclockwise around the right face of e.
func (s *Store) RNext(e Edge) Edge {
	return s.ONext(e.Rot()).InvRot()
}

// RPrev is the previous edge around the right face of e.
func (s *Store) RPrev(e Edge) Edge {
	return s.ONext(e.Sym())
}

// OrgRing returns the edges leaving the origin of e, counterclockwise,
// starting with e.
func (s *Store) OrgRing(e Edge) []Edge {
	ring := []Edge{e}
	for f := s.ONext(e); f != e; f = s.ONext(f) {
		ring = append(ring, f)
	}
	return ring
}

// LeftRing returns the edges bounding the left face of e, starting with e.
func (s *Store) LeftRing(e Edge) []Edge {
	ring := []Edge{e}
	for f := s.LNext(e); f != e; f = s.LNext(f) {
		ring = append(ring, f)
	}
	return ring
}
