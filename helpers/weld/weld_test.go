package weld_test

import (
	"testing"

	"github.com/soypat/bmesh"
	"github.com/soypat/bmesh/helpers/weld"
	"github.com/soypat/bmesh/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

func tri(a, b, c r3.Vec) render.Triangle3 { return render.Triangle3{V: [3]r3.Vec{a, b, c}} }

func cube() *bmesh.Mesh {
	m := bmesh.New()
	var v [8]bmesh.Vert
	for i := range v {
		v[i] = m.MakeVert(vec(float64(i&1), float64(i>>1&1), float64(i>>2&1)))
	}
	for _, q := range [6][4]int{{0, 2, 3, 1}, {4, 5, 7, 6}, {0, 1, 5, 4}, {2, 6, 7, 3}, {0, 4, 6, 2}, {1, 3, 7, 5}} {
		m.MakePolygon([]bmesh.Vert{v[q[0]], v[q[1]], v[q[2]], v[q[3]]}, bmesh.Face{}, false)
	}
	return m
}

func counts(m *bmesh.Mesh) [4]int {
	return [4]int{m.NumVerts(), m.NumEdges(), m.NumLoops(), m.NumFaces()}
}

func TestFromTrianglesCube(t *testing.T) {
	model, err := render.RenderAll(render.NewMeshRenderer(cube()))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) != 12 {
		t.Fatalf("got %d triangles, want 12", len(model))
	}
	m, err := weld.FromTriangles(model, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := counts(m); got != [4]int{8, 18, 36, 12} {
		t.Fatalf("counts %v", got)
	}
	for e := range m.Edges() {
		if !m.IsManifold(e) {
			t.Fatal("welded cube has an open edge")
		}
	}
}

func TestFromTrianglesTolerance(t *testing.T) {
	const eps = 1e-9
	model := []render.Triangle3{
		tri(vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0)),
		tri(vec(eps, -eps, 0), vec(1-eps, 1+eps, 0), vec(0, 1, 0)),
		// Collapses to a segment once welded.
		tri(vec(0, 0, 0), vec(eps, 0, 0), vec(1, 1, 0)),
	}
	m, err := weld.FromTriangles(model, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if got := counts(m); got != [4]int{4, 5, 6, 2} {
		t.Fatalf("counts %v", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	manifold := 0
	for e := range m.Edges() {
		if m.IsManifold(e) {
			manifold++
		}
	}
	if manifold != 1 {
		t.Errorf("%d shared edges, want the diagonal only", manifold)
	}
}

func TestFromTrianglesErrors(t *testing.T) {
	unit := []render.Triangle3{tri(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0))}
	for _, tc := range []struct {
		name  string
		model []render.Triangle3
		tol   float64
	}{
		{"empty", nil, 0},
		{"negative tolerance", unit, -1},
		{"tolerance too large", unit, 10},
		{"degenerate", []render.Triangle3{tri(vec(1, 1, 1), vec(1, 1, 1), vec(1, 1, 1))}, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := weld.FromTriangles(tc.model, tc.tol); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVertTree(t *testing.T) {
	m := bmesh.New()
	grid := make(map[bmesh.Vert]r3.Vec)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			p := vec(float64(i), float64(j), 0)
			grid[m.MakeVert(p)] = p
		}
	}
	tree := weld.NewVertTree(m)
	if tree.Len() != 25 {
		t.Fatalf("tree holds %d vertices", tree.Len())
	}
	v, d := tree.Nearest(vec(2.1, 2.9, 0))
	if grid[v] != vec(2, 3, 0) {
		t.Errorf("nearest vertex at %v", grid[v])
	}
	if want := r3.Norm(vec(0.1, -0.1, 0)); d < want-1e-12 || d > want+1e-12 {
		t.Errorf("distance %g, want %g", d, want)
	}
	near := tree.Within(nil, vec(2, 2, 0), 1.01)
	if len(near) != 5 {
		t.Fatalf("found %d vertices within range, want 5", len(near))
	}
	if grid[near[0]] != vec(2, 2, 0) {
		t.Error("results must be sorted nearest first")
	}
	if got := tree.Within(nil, vec(10, 10, 10), 1); len(got) != 0 {
		t.Errorf("found %d vertices far from the grid", len(got))
	}
	if v, _ := weld.NewVertTree(bmesh.New()).Nearest(vec(0, 0, 0)); !v.IsNil() {
		t.Error("empty tree returned a vertex")
	}
}

func TestMergeByDistanceSplice(t *testing.T) {
	// Two quads sharing a side but built from separate vertices.
	m := bmesh.New()
	mk := func(ps ...r3.Vec) {
		vs := make([]bmesh.Vert, len(ps))
		for i, p := range ps {
			vs[i] = m.MakeVert(p)
		}
		m.MakePolygon(vs, bmesh.Face{}, false)
	}
	mk(vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0))
	mk(vec(1, 0, 0), vec(2, 0, 0), vec(2, 1, 0), vec(1, 1, 0))
	if n := weld.MergeByDistance(m, 1e-9); n != 2 {
		t.Fatalf("merged %d vertices, want 2", n)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := counts(m); got != [4]int{6, 7, 8, 2} {
		t.Fatalf("counts %v", got)
	}
	if n := weld.MergeByDistance(m, 1e-9); n != 0 {
		t.Errorf("second pass merged %d vertices", n)
	}
}

func TestMergeByDistanceCollapse(t *testing.T) {
	m := bmesh.New()
	vs := []bmesh.Vert{
		m.MakeVert(vec(0, 0, 0)),
		m.MakeVert(vec(1e-9, 0, 0)),
		m.MakeVert(vec(1, 1, 0)),
		m.MakeVert(vec(0, 1, 0)),
	}
	f := m.MakePolygon(vs, bmesh.Face{}, false)
	if n := weld.MergeByDistance(m, 1e-6); n != 1 {
		t.Fatalf("merged %d vertices, want 1", n)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := counts(m); got != [4]int{3, 3, 3, 1} {
		t.Fatalf("counts %v", got)
	}
	if m.FaceLen(f) != 3 || m.Contains(vs[1]) || m.VertCo(vs[0]) != vec(0, 0, 0) {
		t.Error("short edge was not collapsed into the first vertex")
	}
}
