// Package render turns bmesh meshes into triangles and reads and writes
// them in the STL and Wavefront OBJ formats.
package render

import (
	"github.com/soypat/bmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer produces triangles in batches. ReadTriangles fills t and returns
// the number of triangles written. It returns io.EOF once no triangles remain.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertices are wound counter clockwise when
// seen from the side the normal points to.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of t, or NaNs for a degenerate triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate reports whether two vertices of t are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}
