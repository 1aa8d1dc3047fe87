// Package weld builds connected meshes from triangle soups such as the
// output of an STL reader and merges vertices lying close together.
package weld

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/bmesh"
	"github.com/soypat/bmesh/internal/d3"
	"github.com/soypat/bmesh/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromTriangles builds a mesh out of model. Triangle corners that fall in
// the same cell of a grid with spacing tol share a vertex, so adjacent
// triangles share edges. If tol is 0 it is inferred from the shortest
// triangle side. Triangles whose corners weld together are skipped, as are
// repeats of a triangle already added.
func FromTriangles(model []render.Triangle3, tol float64, opts ...bmesh.Option) (*bmesh.Mesh, error) {
	if len(model) == 0 {
		return nil, errors.New("no triangles to weld")
	}
	if tol < 0 {
		return nil, errors.New("negative vertex tolerance")
	}
	bb := d3.Empty()
	minDist2 := math.MaxFloat64
	maxDist2 := 0.0
	for i := range model {
		for j, vert := range model[i].V {
			bb = bb.Include(vert)
			side2 := r3.Norm2(r3.Sub(model[i].V[(j+1)%3], vert))
			if side2 > 0 {
				minDist2 = math.Min(minDist2, side2)
			}
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if maxDist2 == 0 {
		return nil, errors.New("all triangles are degenerate")
	}
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("vertex tolerance is too large to weld mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	// Grid keys are taken from absolute coordinates.
	maxDim := d3.Max(d3.MaxElem(d3.AbsElem(bb.Min), d3.AbsElem(bb.Max)))
	if maxDim/tol > math.MaxInt64/2 {
		return nil, errors.New("tolerance too small. overflowed int64")
	}

	m := bmesh.New(opts...)
	cache := make(map[[3]int64]bmesh.Vert, len(model))
	ri := 1 / tol
	skipped := 0
	var corners [3]bmesh.Vert
	for i := range model {
		for j, vert := range model[i].V {
			v := r3.Scale(ri, vert)
			key := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
			bv, ok := cache[key]
			if !ok {
				bv = m.MakeVert(vert)
				cache[key] = bv
			}
			corners[j] = bv
		}
		if corners[0] == corners[1] || corners[1] == corners[2] || corners[2] == corners[0] {
			skipped++
			continue
		}
		m.MakePolygon(corners[:], bmesh.Face{}, true)
	}
	bmesh.Logger().Debug("weld: built mesh from triangles",
		"triangles", len(model), "skipped", skipped, "verts", m.NumVerts(),
		"faces", m.NumFaces(), "tol", tol, "size", bb.Size())
	return m, nil
}

// MergeByDistance merges every pair of vertices closer than dist into the
// first vertex of the pair in mesh order. Pairs joined by an edge are merged
// by collapsing the edge. Pairs that cannot be merged without degenerating
// a face are left alone. It returns the number of vertices removed.
func MergeByDistance(m *bmesh.Mesh, dist float64) int {
	tree := NewVertTree(m)
	var dead bmesh.TagSet[bmesh.Vert]
	merged := 0
	var near []bmesh.Vert
	for _, v := range tree.verts() {
		if dead.Has(v) {
			continue
		}
		near = tree.Within(near[:0], m.VertCo(v), dist)
		for _, w := range near {
			if w == v || dead.Has(w) {
				continue
			}
			if e := m.FindEdge(v, w); !e.IsNil() {
				if m.CollapseEdge(e, v, 0).IsNil() {
					continue
				}
			} else if !m.SpliceVerts(v, w) {
				continue
			}
			dead.Tag(w)
			merged++
		}
	}
	bmesh.Logger().Debug("weld: merged vertices by distance", "dist", dist, "merged", merged)
	return merged
}
