package planarmesh

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/cocamware/lass-sub002/prim"
)

// Padding around the mesh in rendered images, in pixels
const drawPadding = 20

// DrawPNG renders the mesh as a PNG image: faces carrying a handle filled,
// constrained edges red, boundary edges cyan and the rest gray. One mesh
// unit spans scale pixels.
func (m *PlanarMesh[P, E, F]) DrawPNG(w io.Writer, scale float64) error {
	if scale <= 0 {
		return errors.Errorf("scale must be positive, got %v", scale)
	}
	c := m.render(scale)
	return errors.Wrap(c.EncodePNG(w), "encoding mesh image")
}

func (m *PlanarMesh[P, E, F]) render(scale float64) *gg.Context {
	box := m.BoundaryPolygon().Bounds()

	width := int(scale*box.Size().X) + drawPadding*2
	height := int(scale*box.Size().Y) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-box.X.Lo, -box.Y.Lo)

	var noFace F
	_ = m.ForAllFaces(func(e Edge) bool {
		if m.LeftFaceHandle(e) == noFace {
			return true
		}
		tracePolygon(c, m.Polygon(e))
		c.SetRGB(0, 0.5, 0)
		c.Fill()
		return true
	})

	c.SetLineWidth(1)
	m.edges.ForEachQuad(func(e Edge) bool {
		switch {
		case !m.hasLeftFace(e) || !m.hasRightFace(e):
			c.SetRGB(0, 1, 1)
		case m.edges.IsConstrained(e):
			c.SetRGB(1, 0, 0)
		default:
			c.SetRGB(0.6, 0.6, 0.6)
		}
		o, d := m.org(e), m.dest(e)
		c.DrawLine(o.X, o.Y, d.X, d.Y)
		c.Stroke()
		return true
	})
	return c
}

func tracePolygon(c *gg.Context, poly prim.SimplePolygon2D) {
	c.MoveTo(poly.Points[0].X, poly.Points[0].Y)
	for _, p := range poly.Points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
}
