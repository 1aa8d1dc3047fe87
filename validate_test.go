package bmesh

import (
	"errors"
	"testing"
)

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(m *Mesh, v [4]Vert, f Face)
	}{
		{"face length", func(m *Mesh, v [4]Vert, f Face) { m.face(f.idx).len = 5 }},
		{"short face", func(m *Mesh, v [4]Vert, f Face) { m.face(f.idx).len = 2 }},
		{"loop face", func(m *Mesh, v [4]Vert, f Face) { m.loop(m.face(f.idx).l).f = -1 }},
		{"disk link", func(m *Mesh, v [4]Vert, f Face) {
			vi := v[0].idx
			m.edge(m.vert(vi).e).diskLink(vi).next = m.vert(v[2].idx).e
		}},
		{"radial anchor", func(m *Mesh, v [4]Vert, f Face) {
			ei := m.loop(m.face(f.idx).l).e
			m.edge(ei).l = -1
		}},
		{"edge endpoint", func(m *Mesh, v [4]Vert, f Face) {
			ei := m.vert(v[0].idx).e
			m.edge(ei).v2 = m.edge(ei).v1
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			v, f := quad(m)
			mustValidate(t, m)
			tc.corrupt(m, v, f)
			err := m.Validate()
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("got %v, want ErrCorrupt", err)
			}
		})
	}
}
