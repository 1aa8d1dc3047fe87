package render

import (
	"io"
	"slices"

	"github.com/soypat/bmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// meshRenderer fan-triangulates the faces of a mesh. Concave faces come out
// wrong; triangulate them beforehand if that matters.
type meshRenderer struct {
	m     *bmesh.Mesh
	faces []bmesh.Face
	next  int
	buf   triangle3Buffer
}

var _ Renderer = (*meshRenderer)(nil)

// NewMeshRenderer returns a Renderer over the faces of m. The face list is
// captured on creation; m must not be edited until rendering is done.
func NewMeshRenderer(m *bmesh.Mesh) Renderer {
	return &meshRenderer{
		m:     m,
		faces: slices.Collect(m.Faces()),
	}
}

func (r *meshRenderer) ReadTriangles(t []Triangle3) (int, error) {
	for r.buf.Len() < len(t) && r.next < len(r.faces) {
		r.fan(r.faces[r.next])
		r.next++
	}
	n := r.buf.Read(t)
	if n == 0 && len(t) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *meshRenderer) fan(f bmesh.Face) {
	m := r.m
	l0 := m.FaceLoop(f)
	origin := m.VertCo(m.LoopVert(l0))
	l := m.LoopNext(l0)
	for i := m.FaceLen(f) - 2; i > 0; i-- {
		next := m.LoopNext(l)
		r.buf.Write([]Triangle3{{V: [3]r3.Vec{
			origin,
			m.VertCo(m.LoopVert(l)),
			m.VertCo(m.LoopVert(next)),
		}}})
		l = next
	}
}
