package bmesh

import (
	"slices"
	"testing"
)

func TestMakePolygonDedup(t *testing.T) {
	m := New()
	v, f := quad(m)
	rotated := []Vert{v[2], v[3], v[0], v[1]}
	if got := m.MakePolygon(rotated, Face{}, true); got != f {
		t.Fatal("dedup should return the existing face")
	}
	checkCounts(t, m, 4, 4, 4, 1)
	if got := m.FaceExists([]Vert{v[3], v[1], v[0], v[2]}); got != f {
		t.Error("FaceExists must ignore vertex order")
	}
	if !m.FaceExists(v[:3]).IsNil() {
		t.Error("FaceExists matched a face of different degree")
	}

	twin := m.MakePolygon(rotated, Face{}, false)
	if twin == f {
		t.Fatal("dedup disabled must create a new face")
	}
	checkCounts(t, m, 4, 4, 8, 2)
	mustValidate(t, m)
	for e := range m.Edges() {
		if !m.IsManifold(e) {
			t.Error("second face must reuse the existing edges")
		}
	}
	mustPanic(t, "repeated vertex", func() { m.MakePolygon([]Vert{v[0], v[1], v[0]}, Face{}, false) })
	mustPanic(t, "too few", func() { m.MakePolygon(v[:2], Face{}, false) })
}

func TestMakeEdgeChecked(t *testing.T) {
	m := New()
	a, b := m.MakeVert(vec(0, 0, 0)), m.MakeVert(vec(1, 0, 0))
	e := m.MakeEdgeChecked(a, b, Edge{}, true)
	m.SetEdgeCrease(e, 0.5)
	if m.MakeEdgeChecked(b, a, Edge{}, true) != e {
		t.Error("dedup should find the edge regardless of direction")
	}
	e2 := m.MakeEdgeChecked(a, b, e, false)
	if e2 == e || m.EdgeCrease(e2) != 0.5 {
		t.Error("example edge attributes not copied")
	}
	if m.Valence(a) != 2 {
		t.Error("edge without dedup not created")
	}
}

func TestMakeNgon(t *testing.T) {
	m := New()
	var v [5]Vert
	var edges [5]Edge
	for i := range v {
		v[i] = m.MakeVert(vec(float64(i), float64(i%2), 0))
	}
	for i := range edges {
		edges[i] = m.MakeEdge(v[i], v[(i+1)%5])
	}
	shuffled := []Edge{edges[3], edges[0], edges[4], edges[2], edges[1]}

	for _, tc := range []struct {
		name   string
		v1, v2 Vert
		edges  []Edge
	}{
		{"missing edge", v[0], v[1], shuffled[:4]},
		{"first edge absent", v[0], v[2], shuffled},
		{"too few", v[0], v[1], shuffled[:2]},
		{"duplicate edge", v[0], v[1], append(slices.Clone(shuffled), edges[0])},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if f := m.MakeNgon(tc.v1, tc.v2, tc.edges, false); !f.IsNil() {
				t.Error("expected refusal")
			}
		})
	}
	checkCounts(t, m, 5, 5, 0, 0)

	f := m.MakeNgon(v[1], v[0], shuffled, false)
	if f.IsNil() {
		t.Fatal("MakeNgon failed on a closed chain")
	}
	want := []Vert{v[1], v[0], v[4], v[3], v[2]}
	if got := slices.Collect(m.FaceVerts(f)); !slices.Equal(got, want) {
		t.Error("winding must follow the v1 to v2 edge")
	}
	if m.MakeNgon(v[0], v[1], shuffled, true) != f {
		t.Error("dedup should return the existing face")
	}
	checkCounts(t, m, 5, 5, 5, 1)
	mustValidate(t, m)

	// A vertex with three chain edges does not bound a simple face.
	extra := m.MakeVert(vec(9, 9, 9))
	spur := m.MakeEdge(v[2], extra)
	if !m.MakeNgon(v[0], v[1], append(slices.Clone(shuffled), spur), false).IsNil() {
		t.Error("branching chain should be refused")
	}
}

func TestCopyAttrs(t *testing.T) {
	m := New()
	v, f := quad(m)
	m.SetFlag(v[0], FlagSelect|FlagDelete)
	m.SetVertWeight(v[0], 2)
	m.CopyAttrs(v[0], v[1])
	if m.Flags(v[1]) != FlagSelect {
		t.Errorf("flags %b, want only select", m.Flags(v[1]))
	}
	if m.VertWeight(v[1]) != 2 {
		t.Error("weight not copied")
	}
	m.SetFaceMat(f, 7)
	other := New()
	_, g := quad(other)
	other.CopyAttrsFrom(m, f, g)
	if other.FaceMat(g) != 7 {
		t.Error("material not copied across meshes")
	}
	mustPanic(t, "kind mismatch", func() { m.CopyAttrs(v[0], f) })
}

func TestMakeVertFrom(t *testing.T) {
	m := New()
	a := m.MakeVert(vec(0, 0, 0))
	m.SetFlag(a, FlagHide)
	m.SetVertWeight(a, 3)
	b := m.MakeVertFrom(vec(1, 1, 1), a)
	if m.VertCo(b) != vec(1, 1, 1) || m.VertWeight(b) != 3 || !m.HasFlag(b, FlagHide) {
		t.Error("example attributes not copied")
	}
	c := m.MakeVertFrom(vec(2, 2, 2), Vert{})
	if m.Flags(c) != 0 || m.VertWeight(c) != 0 {
		t.Error("vertex without example must start clean")
	}
}

func TestStaleExample(t *testing.T) {
	m := New()
	v, _ := quad(m)
	deadV := m.MakeVert(vec(5, 5, 5))
	m.KillVert(deadV)
	deadE := m.MakeEdge(v[0], v[2])
	m.KillEdge(deadE)
	tri := []Vert{m.MakeVert(vec(2, 0, 0)), m.MakeVert(vec(3, 0, 0)), m.MakeVert(vec(3, 1, 0))}
	deadF := m.MakePolygon(tri, Face{}, false)
	m.KillFace(deadF)
	checkCounts(t, m, 7, 7, 4, 1)

	mustPanic(t, "MakeVertFrom", func() { m.MakeVertFrom(vec(9, 9, 9), deadV) })
	mustPanic(t, "MakeEdgeChecked", func() { m.MakeEdgeChecked(v[0], v[2], deadE, false) })
	mustPanic(t, "MakePolygon", func() { m.MakePolygon([]Vert{v[0], v[1], v[2]}, deadF, false) })
	mustPanic(t, "MakePolygon dedup", func() { m.MakePolygon(tri, deadF, true) })
	checkCounts(t, m, 7, 7, 4, 1)
	mustValidate(t, m)
}

func TestSplitEdge(t *testing.T) {
	m := New()
	v, f := quad(m)
	m.SetVertWeight(v[1], 1)
	e := m.FindEdge(v[0], v[1])
	_, nv := m.SplitEdge(e, v[1], 0.25)
	if m.VertCo(nv) != vec(0.75, 0, 0) {
		t.Errorf("new vertex at %v, want 0.25 of the way from v1", m.VertCo(nv))
	}
	if m.VertWeight(nv) != 0.75 {
		t.Errorf("weight %g, want 0.75", m.VertWeight(nv))
	}
	if m.FaceLen(f) != 5 {
		t.Error("face did not grow")
	}
	mustValidate(t, m)
	mustPanic(t, "vertex not on edge", func() { m.SplitEdge(e, v[3], 0.5) })
}
