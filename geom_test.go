package bmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const geomTol = 1e-12

func TestFaceAreaPerimeter(t *testing.T) {
	m := New()
	_, q := quad(m)
	tri := m.MakePolygon([]Vert{m.MakeVert(vec(0, 0, 1)), m.MakeVert(vec(2, 0, 1)), m.MakeVert(vec(0, 2, 1))}, Face{}, false)
	var ell []Vert
	for _, p := range []r3.Vec{vec(0, 0, 2), vec(2, 0, 2), vec(2, 1, 2), vec(1, 1, 2), vec(1, 2, 2), vec(0, 2, 2)} {
		ell = append(ell, m.MakeVert(p))
	}
	l := m.MakePolygon(ell, Face{}, false)
	for _, tc := range []struct {
		name            string
		f               Face
		area, perimeter float64
	}{
		{"quad", q, 1, 4},
		{"triangle", tri, 2, 4 + 2*math.Sqrt2},
		{"concave", l, 3, 8},
	} {
		if got := m.FaceArea(tc.f); math.Abs(got-tc.area) > geomTol {
			t.Errorf("%s area %g, want %g", tc.name, got, tc.area)
		}
		if got := m.FacePerimeter(tc.f); math.Abs(got-tc.perimeter) > geomTol {
			t.Errorf("%s perimeter %g, want %g", tc.name, got, tc.perimeter)
		}
	}
	m.FlipFace(l)
	if m.FaceArea(l) != 3 {
		t.Error("area must not depend on winding")
	}
}

func TestVertNormal(t *testing.T) {
	m := New()
	v, _ := cube(m)
	for i, w := range v {
		want := r3.Unit(r3.Sub(m.VertCo(w), vec(0.5, 0.5, 0.5)))
		if got := m.VertNormal(w); r3.Norm(r3.Sub(got, want)) > geomTol {
			t.Errorf("vertex %d normal %v, want %v", i, got, want)
		}
	}
	q := New()
	qv, _ := quad(q)
	if got := q.VertNormal(qv[1]); r3.Norm(r3.Sub(got, vec(0, 0, 1))) > geomTol {
		t.Errorf("quad corner normal %v", got)
	}
	if got := q.VertNormal(q.MakeVert(vec(1, 2, 3))); got != (r3.Vec{}) {
		t.Errorf("loose vertex normal %v, want zero", got)
	}
}
