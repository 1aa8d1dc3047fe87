package weld

import (
	"math"
	"slices"

	"github.com/soypat/bmesh"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertTree is a k-d tree over the vertex positions of a mesh taken when
// the tree was built. It does not track later edits.
type VertTree struct {
	tree   *kdtree.Tree
	points vertPoints
}

// NewVertTree indexes the live vertices of m.
func NewVertTree(m *bmesh.Mesh) *VertTree {
	points := make(vertPoints, 0, m.NumVerts())
	for v := range m.Verts() {
		points = append(points, vertPoint{co: m.VertCo(v), v: v})
	}
	// kdtree.New reorders its argument.
	t := &VertTree{points: slices.Clone(points)}
	t.tree = kdtree.New(points, false)
	return t
}

// verts returns the indexed vertices in mesh order.
func (t *VertTree) verts() []bmesh.Vert {
	vs := make([]bmesh.Vert, len(t.points))
	for i, p := range t.points {
		vs[i] = p.v
	}
	return vs
}

// Len returns the number of indexed vertices.
func (t *VertTree) Len() int { return len(t.points) }

// Nearest returns the indexed vertex closest to q and its distance.
// It returns the zero Vert if the tree is empty.
func (t *VertTree) Nearest(q r3.Vec) (bmesh.Vert, float64) {
	if len(t.points) == 0 {
		return bmesh.Vert{}, math.Inf(1)
	}
	c, d2 := t.tree.Nearest(vertPoint{co: q})
	return c.(vertPoint).v, math.Sqrt(d2)
}

// Within appends to dst the indexed vertices at most dist away from q,
// nearest first.
func (t *VertTree) Within(dst []bmesh.Vert, q r3.Vec, dist float64) []bmesh.Vert {
	if len(t.points) == 0 {
		return dst
	}
	keep := kdtree.NewDistKeeper(dist * dist)
	t.tree.NearestSet(keep, vertPoint{co: q})
	hits := make([]kdtree.ComparableDist, 0, keep.Len())
	for _, cd := range keep.Heap {
		// The keeper is seeded with a sentinel holding no point.
		if cd.Comparable == nil {
			continue
		}
		hits = append(hits, cd)
	}
	slices.SortFunc(hits, func(a, b kdtree.ComparableDist) int {
		switch {
		case a.Dist < b.Dist:
			return -1
		case a.Dist > b.Dist:
			return 1
		}
		return 0
	})
	for _, cd := range hits {
		dst = append(dst, cd.Comparable.(vertPoint).v)
	}
	return dst
}

type vertPoint struct {
	co r3.Vec
	v  bmesh.Vert
}

// Compare returns the signed distance of p from the plane passing through c
// and perpendicular to the dimension d.
func (p vertPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertPoint)
	switch d {
	case 0:
		return p.co.X - q.co.X
	case 1:
		return p.co.Y - q.co.Y
	case 2:
		return p.co.Z - q.co.Z
	}
	panic("illegal dimension")
}

func (p vertPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between p and c.
func (p vertPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.co, c.(vertPoint).co))
}

type vertPoints []vertPoint

func (p vertPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p vertPoints) Len() int                      { return len(p) }
func (p vertPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// Pivot partitions the list based on the dimension specified.
func (p vertPoints) Pivot(d kdtree.Dim) int {
	pl := vertPlane{dim: d, points: p}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

type vertPlane struct {
	dim    kdtree.Dim
	points vertPoints
}

func (p vertPlane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}
func (p vertPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p vertPlane) Len() int {
	return len(p.points)
}
func (p vertPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
