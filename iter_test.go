package bmesh

import (
	"slices"
	"testing"
)

func TestIterators(t *testing.T) {
	m := New()
	v, a, b := twoQuads(m)
	shared := m.FindEdge(v[1], v[4])

	tests := []struct {
		name string
		seq  func() int
		want int
	}{
		{"verts", func() int { return len(slices.Collect(m.Verts())) }, 6},
		{"edges", func() int { return len(slices.Collect(m.Edges())) }, 7},
		{"faces", func() int { return len(slices.Collect(m.Faces())) }, 2},
		{"vert edges", func() int { return len(slices.Collect(m.VertEdges(v[1]))) }, 3},
		{"vert faces", func() int { return len(slices.Collect(m.VertFaces(v[1]))) }, 2},
		{"vert loops", func() int { return len(slices.Collect(m.VertLoops(v[4]))) }, 2},
		{"edge faces", func() int { return len(slices.Collect(m.EdgeFaces(shared))) }, 2},
		{"edge loops", func() int { return len(slices.Collect(m.EdgeLoops(m.FindEdge(v[0], v[1])))) }, 1},
		{"face loops", func() int { return len(slices.Collect(m.FaceLoops(a))) }, 4},
		{"loop radial", func() int { return len(slices.Collect(m.LoopRadial(m.EdgeLoop(shared)))) }, 2},
		{"generic", func() int { return len(slices.Collect(m.Iter(EdgesOfFace, b))) }, 4},
		{"generic mesh", func() int { return len(slices.Collect(m.Iter(FacesOfMesh, nil))) }, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.seq(); got != tc.want {
				t.Errorf("got %d elements, want %d", got, tc.want)
			}
		})
	}
}

func TestIterOrderAndBreak(t *testing.T) {
	m := New()
	v, f := quad(m)
	if got := slices.Collect(m.Verts()); !slices.Equal(got, v[:]) {
		t.Error("pool iteration must follow creation order")
	}
	n := 0
	for range m.FaceVerts(f) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Error("early break not honoured")
	}
	for l := range m.FaceLoops(f) {
		e := m.LoopEdge(l)
		found := false
		for fe := range m.FaceEdges(f) {
			found = found || fe == e
		}
		if !found {
			t.Error("FaceEdges and FaceLoops disagree")
		}
	}
	for e := range m.Iter(VertsOfFace, f) {
		if e.Kind() != KindVert {
			t.Errorf("generic iterator yielded %v", e.Kind())
		}
	}
	mustPanic(t, "wrong anchor", func() { m.Iter(LoopsOfFace, v[0]) })
}

func TestIterKillWhileWalking(t *testing.T) {
	m := New()
	cube(m)
	for f := range m.Faces() {
		m.KillFace(f)
	}
	for e := range m.Edges() {
		m.KillEdge(e)
	}
	for v := range m.Verts() {
		m.KillVert(v)
	}
	checkCounts(t, m, 0, 0, 0, 0)
}
