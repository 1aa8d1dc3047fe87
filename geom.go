package bmesh

import (
	"math"

	"github.com/soypat/bmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// FaceNormal returns the unit normal of f computed with Newell's method,
// which tolerates non-planar and concave faces. Degenerate faces return
// the zero vector.
func (m *Mesh) FaceNormal(f Face) r3.Vec {
	n := m.newell(m.fidx(f))
	norm := r3.Norm(n)
	if norm == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/norm, n)
}

// FaceArea returns the area of f. Non-planar faces get the area of their
// projection onto the plane normal to FaceNormal.
func (m *Mesh) FaceArea(f Face) float64 {
	return r3.Norm(m.newell(m.fidx(f))) / 2
}

// FacePerimeter returns the summed length of the edges of f.
func (m *Mesh) FacePerimeter(f Face) float64 {
	fc := m.face(m.fidx(f))
	var p float64
	li := fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		p += r3.Norm(r3.Sub(m.vert(m.loop(l.next).v).co, m.vert(l.v).co))
		li = l.next
	}
	return p
}

// VertNormal returns the unit normal of v: the normals of the faces around
// v weighted by the corner angle at v. Vertices without faces and vertices
// whose faces cancel out return the zero vector.
func (m *Mesh) VertNormal(v Vert) r3.Vec {
	var n r3.Vec
	for l := range m.VertLoops(v) {
		lp := m.loop(l.idx)
		co := m.vert(lp.v).co
		a := r3.Sub(m.vert(m.loop(lp.prev).v).co, co)
		b := r3.Sub(m.vert(m.loop(lp.next).v).co, co)
		if r3.Norm2(a) == 0 || r3.Norm2(b) == 0 {
			continue
		}
		angle := math.Acos(math.Max(-1, math.Min(1, r3.Cos(a, b))))
		n = r3.Add(n, r3.Scale(angle, m.FaceNormal(m.fh(lp.f))))
	}
	norm := r3.Norm(n)
	if norm == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/norm, n)
}

// newell returns the Newell vector of face fi. Its direction is the face
// normal and its length twice the face area.
func (m *Mesh) newell(fi int32) r3.Vec {
	fc := m.face(fi)
	var n r3.Vec
	li := fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		a, b := m.vert(l.v).co, m.vert(m.loop(l.next).v).co
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
		li = l.next
	}
	return n
}

// FaceCenter returns the mean of the corner positions of f.
func (m *Mesh) FaceCenter(f Face) r3.Vec {
	fc := m.face(m.fidx(f))
	var c r3.Vec
	li := fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		c = r3.Add(c, m.vert(l.v).co)
		li = l.next
	}
	return r3.Scale(1/float64(fc.len), c)
}

func (m *Mesh) EdgeLength(e Edge) float64 {
	ed := m.edge(m.eidx(e))
	return r3.Norm(r3.Sub(m.vert(ed.v2).co, m.vert(ed.v1).co))
}

// Bounds returns the axis aligned box enclosing every vertex. An empty mesh
// returns a box with Min greater than Max.
func (m *Mesh) Bounds() r3.Box {
	b := d3.Empty()
	for vi := m.verts.first; vi >= 0; vi = m.verts.nextLive(vi) {
		b = b.Include(m.vert(vi).co)
	}
	return r3.Box(b)
}

// Transform replaces every vertex position p with fn(p).
func (m *Mesh) Transform(fn func(r3.Vec) r3.Vec) {
	for vi := m.verts.first; vi >= 0; vi = m.verts.nextLive(vi) {
		v := m.vert(vi)
		v.co = fn(v.co)
	}
}
