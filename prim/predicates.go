package prim

// DoubleTriangleArea is twice the signed area of the triangle abc. It is
// positive when abc winds counterclockwise.
func DoubleTriangleArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Ccw reports whether abc is a strict counterclockwise turn.
func Ccw(a, b, c Point) bool {
	return DoubleTriangleArea(a, b, c) > 0
}

// Cw reports whether abc is a strict clockwise turn.
func Cw(a, b, c Point) bool {
	return DoubleTriangleArea(a, b, c) < 0
}

// WeakCcw is Ccw that also accepts collinear points.
func WeakCcw(a, b, c Point) bool {
	return DoubleTriangleArea(a, b, c) >= 0
}

// WeakCw is Cw that also accepts collinear points.
func WeakCw(a, b, c Point) bool {
	return DoubleTriangleArea(a, b, c) <= 0
}

// InCircleDeterminant is the classic incircle determinant. For a
// counterclockwise triangle abc it is positive iff d lies strictly inside the
// circumcircle.
func InCircleDeterminant(a, b, c, d Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	return ad*(bdx*cdy-cdx*bdy) + bd*(cdx*ady-adx*cdy) + cd*(adx*bdy-bdx*ady)
}

// InCircle reports whether d lies strictly inside the circumcircle of the
// counterclockwise triangle abc.
func InCircle(a, b, c, d Point) bool {
	return InCircleDeterminant(a, b, c, d) > 0
}
