package planarmesh

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"
)

// svgo does not report write errors, so remember the first one.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// WriteSVG writes the mesh as an SVG document with the same color scheme as
// DrawPNG. The y axis points up.
func (m *PlanarMesh[P, E, F]) WriteSVG(w io.Writer, scale float64) error {
	if scale <= 0 {
		return errors.Errorf("scale must be positive, got %v", scale)
	}
	box := m.BoundaryPolygon().Bounds()
	width := scale*box.Size().X + 2*drawPadding
	height := scale*box.Size().Y + 2*drawPadding

	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(width, height)
	s.Rect(0, 0, width, height, "fill:black")
	s.Gtransform(svgTransform(height, scale, box.X.Lo, box.Y.Lo))

	var noFace F
	_ = m.ForAllFaces(func(e Edge) bool {
		if m.LeftFaceHandle(e) == noFace {
			return true
		}
		poly := m.Polygon(e)
		xs := make([]float64, poly.Len())
		ys := make([]float64, poly.Len())
		for i, p := range poly.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		s.Polygon(xs, ys, "fill:#008000;stroke:none")
		return true
	})

	m.edges.ForEachQuad(func(e Edge) bool {
		style := "stroke:#999999"
		switch {
		case !m.hasLeftFace(e) || !m.hasRightFace(e):
			style = "stroke:#00ffff"
		case m.edges.IsConstrained(e):
			style = "stroke:#ff0000"
		}
		o, d := m.org(e), m.dest(e)
		s.Line(o.X, o.Y, d.X, d.Y, style+";vector-effect:non-scaling-stroke")
		return true
	})
	_ = m.ForAllVertices(func(e Edge) bool {
		p := m.org(e)
		s.Circle(p.X, p.Y, 2/scale, "fill:#ffffff")
		return true
	})
	s.Gend()
	s.End()
	return errors.Wrap(ew.err, "writing mesh svg")
}

func svgTransform(height, scale, minX, minY float64) string {
	return fmt.Sprintf("translate(%f,%f) scale(%f,%f) translate(%f,%f)",
		float64(drawPadding), height-drawPadding, scale, -scale, -minX, -minY)
}
