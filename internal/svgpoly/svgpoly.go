// Package svgpoly extracts polygons from SVG documents. It is not an SVG
// renderer: only <polygon> elements are read, and transforms are ignored.
package svgpoly

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"github.com/cocamware/lass-sub002/prim"
	"github.com/pkg/errors"
)

// Read returns every <polygon> of the document, in document order.
func Read(r io.Reader) ([]prim.SimplePolygon2D, error) {
	rootEl, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse svg")
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		return nil, errors.New("no polygons found")
	}

	polygons := make([]prim.SimplePolygon2D, 0, len(polygonEls))
	for i, polygonEl := range polygonEls {
		points, err := ParsePoints(polygonEl.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		if len(points) < 3 {
			return nil, errors.Errorf("polygon %d has %d points, need at least 3", i, len(points))
		}
		polygons = append(polygons, prim.SimplePolygon2D{Points: points})
	}
	return polygons, nil
}

// ParsePoints parses an SVG points attribute: coordinates separated by
// whitespace and/or commas, taken pairwise.
func ParsePoints(attr string) ([]prim.Point, error) {
	fields := strings.FieldsFunc(attr, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", attr)
	}

	points := make([]prim.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, prim.Point{X: x, Y: y})
	}
	return points, nil
}
