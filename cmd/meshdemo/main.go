// Command meshdemo builds a constrained Delaunay mesh from a set of polygons
// and renders it.
//
// Input is either an SVG document, whose <polygon> elements are used, or
// text with one "x y" point per line and an empty line between polygons.
// Polygons are combined with the even-odd rule, so nested polygons are holes.
// Without an input file, text is read from stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lass "github.com/cocamware/lass-sub002"
	"github.com/cocamware/lass-sub002/internal/logger"
	"github.com/cocamware/lass-sub002/internal/svgpoly"
	"github.com/cocamware/lass-sub002/planarmesh"
	"github.com/cocamware/lass-sub002/prim"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("meshdemo", "Build a constrained Delaunay mesh from polygons and render it.")

	input      = app.Arg("input", "Polygon file, .svg or text. Text is read from stdin when omitted.").String()
	pngPath    = app.Flag("png", "Write a PNG rendering to this path.").String()
	svgPath    = app.Flag("svg", "Write an SVG rendering to this path.").String()
	scale      = app.Flag("scale", "Pixels per mesh unit.").Default("10").Float64()
	showImage  = app.Flag("imgcat", "Print the PNG rendering inline (iTerm2).").Bool()
	noDelaunay = app.Flag("no-delaunay", "Insert constraints without restoring the Delaunay property.").Bool()
	verbose    = app.Flag("verbose", "Log mesh debug events.").Short('v').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	log := logger.New(os.Stderr, level)
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("meshdemo failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	polygons, err := loadPolygons(*input)
	if err != nil {
		return err
	}
	log.Info("read polygons", zap.Int("count", len(polygons)))

	mesh, err := lass.BuildMesh(polygons, !*noDelaunay, planarmesh.WithLogger(log))
	if err != nil {
		return err
	}
	if err := mesh.Validate(); err != nil {
		log.Warn("mesh failed validation", zap.Error(err))
	}

	fmt.Printf("vertices: %d\nedges: %d\nfaces: %d\n", mesh.VertexCount(), mesh.EdgeCount(), mesh.FaceCount())

	if *pngPath != "" {
		if err := writeFile(*pngPath, func(w io.Writer) error { return mesh.DrawPNG(w, *scale) }); err != nil {
			return err
		}
		log.Info("wrote png", zap.String("path", *pngPath))
		if *showImage {
			imgcat.CatFile(*pngPath, os.Stdout)
		}
	}
	if *svgPath != "" {
		if err := writeFile(*svgPath, func(w io.Writer) error { return mesh.WriteSVG(w, *scale) }); err != nil {
			return err
		}
		log.Info("wrote svg", zap.String("path", *svgPath))
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(f)
}

func loadPolygons(path string) (prim.PolygonList, error) {
	if path == "" {
		return readPolygons(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgpoly.Read(f)
	}
	return readPolygons(f)
}

// readPolygons reads newline separated points in the form "x y", with each
// polygon separated by an empty line.
func readPolygons(in io.Reader) (prim.PolygonList, error) {
	polygons := prim.PolygonList{}
	scanner := bufio.NewScanner(in)
	points := []prim.Point{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// An empty line ends the polygon, if we collected any points
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, prim.SimplePolygon2D{Points: points})
				points = []prim.Point{}
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read polygons")
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, prim.SimplePolygon2D{Points: points})
	}
	if len(polygons) == 0 {
		return nil, errors.New("no polygons found")
	}
	for i, poly := range polygons {
		if poly.Len() < 3 {
			return nil, errors.Errorf("polygon %d has %d points, need at least 3", i, poly.Len())
		}
	}
	return polygons, nil
}

func parsePoint(line string) (prim.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return prim.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return prim.Point{}, errors.Wrap(err, "bad x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return prim.Point{}, errors.Wrap(err, "bad y")
	}
	return prim.Point{X: x, Y: y}, nil
}
