// Constrained Delaunay triangulation of polygon sets for Go.
//
// This package converts a set of simple polygons, which may be non-convex,
// may be disjoint and may contain holes, into triangles. Polygons are combined
// with the even-odd rule, so winding order does not matter. Crossing polygon
// sides are split where they meet, which adds points to the output.
//
// The mesh behind it lives in the planarmesh package, which exposes the full
// quad-edge structure.
package lass

import (
	"math"

	"github.com/cocamware/lass-sub002/planarmesh"
	"github.com/cocamware/lass-sub002/prim"
	"github.com/pkg/errors"
)

type Point = prim.Point
type Triangle = prim.Triangle2D
type Polygon = prim.SimplePolygon2D

// Mesh is the mesh type built by BuildMesh. Faces inside the polygon set have
// handle true.
type Mesh = planarmesh.PlanarMesh[struct{}, struct{}, bool]

// BuildMesh inserts every side of polygons as a constraint into a box with
// some margin around them, then marks the faces inside by the even-odd rule.
func BuildMesh(polygons prim.PolygonList, makeDelaunay bool, opts ...planarmesh.Option) (*Mesh, error) {
	if len(polygons) == 0 {
		return nil, errors.New("no polygons")
	}
	bounds := polygons.Bounds()
	size := bounds.Size()
	margin := 1 + 0.1*math.Max(size.X, size.Y)

	mesh, err := planarmesh.NewBox[struct{}, struct{}, bool](bounds.ExpandedByMargin(margin), opts...)
	if err != nil {
		return nil, err
	}
	for i, poly := range polygons {
		if _, err := mesh.InsertPolygonOpt(poly, struct{}{}, struct{}{}, makeDelaunay); err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
	}
	if err := mesh.MarkPolygons(polygons, true); err != nil {
		return nil, err
	}
	return mesh, nil
}

// Triangulate takes a set of point lists and converts them into triangles.
//
// Every point list must have at least three points. The triangles come out
// counterclockwise and are Delaunay within the constraints of the polygon
// sides.
func Triangulate(polygonPoints ...[]Point) (result []Triangle, err error) {
	defer func() {
		recoveredErr := planarmesh.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	polygons := make(prim.PolygonList, len(polygonPoints))
	for i, points := range polygonPoints {
		if len(points) < 3 {
			return nil, errors.Errorf("polygon %d has %d points, need at least 3", i, len(points))
		}
		polygons[i] = Polygon{Points: points}
	}

	mesh, err := BuildMesh(polygons, true)
	if err != nil {
		return nil, err
	}
	var faceErr error
	err = mesh.ForAllFaces(func(e planarmesh.Edge) bool {
		if !mesh.LeftFaceHandle(e) {
			return true
		}
		var tri Triangle
		tri, faceErr = mesh.Triangle(e)
		if faceErr != nil {
			return false
		}
		result = append(result, tri)
		return true
	})
	if err != nil {
		return nil, err
	}
	if faceErr != nil {
		return nil, faceErr
	}
	return result, nil
}
