package planarmesh

// edgeStack is the worklist of the flip and flood fill loops.
type edgeStack []Edge

func (s *edgeStack) Push(e Edge) {
	*s = append(*s, e)
}

func (s *edgeStack) Pop() Edge {
	if len(*s) == 0 {
		return Nil
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e
}

func (s *edgeStack) Empty() bool {
	return len(*s) == 0
}
