package bmesh

import (
	"github.com/soypat/bmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Construction helpers built on the Euler operators. These take care of
// attribute copying, duplicate detection and edge creation so that callers
// can think in terms of vertex lists.

// MakeVertFrom creates a vertex at co copying the attributes of example,
// which may be the zero Vert.
func (m *Mesh) MakeVertFrom(co r3.Vec, example Vert) Vert {
	xi := int32(-1)
	if !example.IsNil() {
		xi = m.vidx(example)
	}
	vi := m.makeVert(co)
	if xi >= 0 {
		m.copyElem(m, KindVert, xi, vi)
	}
	return m.vh(vi)
}

// MakeEdgeChecked creates an edge between v1 and v2 copying the attributes
// of example, which may be the zero Edge. With dedup set, an existing edge
// between the two vertices is returned instead and example is ignored.
func (m *Mesh) MakeEdgeChecked(v1, v2 Vert, example Edge, dedup bool) Edge {
	a, b := m.vidx(v1), m.vidx(v2)
	if a == b {
		panic("bmesh: MakeEdgeChecked with identical endpoints")
	}
	if dedup {
		if ei := m.findEdge(a, b); ei >= 0 {
			return m.eh(ei)
		}
	}
	xi := int32(-1)
	if !example.IsNil() {
		xi = m.eidx(example)
	}
	ei := m.makeEdge(a, b)
	if xi >= 0 {
		m.copyElem(m, KindEdge, xi, ei)
	}
	return m.eh(ei)
}

// FaceExists returns a face whose corners are exactly the vertices of verts
// in any order, or the zero Face.
func (m *Mesh) FaceExists(verts []Vert) Face {
	if len(verts) == 0 {
		return Face{}
	}
	tags := NewTagSet[int32](len(verts))
	for _, v := range verts {
		tags.Tag(m.vidx(v))
	}
	first := verts[0].idx
	var buf [16]int32
	for _, ei := range m.diskEdges(first, buf[:0]) {
		start := m.edge(ei).l
		for li := start; li >= 0; {
			l := m.loop(li)
			if m.faceUsesOnly(l.f, len(verts), tags) {
				return m.fh(l.f)
			}
			li = l.rnext
			if li == start {
				break
			}
		}
	}
	return Face{}
}

func (m *Mesh) faceUsesOnly(fi int32, n int, tags *TagSet[int32]) bool {
	fc := m.face(fi)
	if int(fc.len) != n {
		return false
	}
	li := fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		if !tags.Has(l.v) {
			return false
		}
		li = l.next
	}
	return true
}

// MakePolygon creates a face with corners at verts in winding order,
// creating the missing edges. Existing edges between consecutive vertices
// are reused. With dedup set, a face already spanning the same vertices is
// returned instead. example may be the zero Face.
func (m *Mesh) MakePolygon(verts []Vert, example Face, dedup bool) Face {
	n := len(verts)
	if n < 3 {
		panic("bmesh: MakePolygon needs at least 3 vertices")
	}
	tags := NewTagSet[int32](n)
	for _, v := range verts {
		if !tags.Tag(m.vidx(v)) {
			panic("bmesh: MakePolygon repeated vertex")
		}
	}
	xi := int32(-1)
	if !example.IsNil() {
		xi = m.fidx(example)
	}
	if dedup {
		if f := m.FaceExists(verts); !f.IsNil() {
			return f
		}
	}
	missing := 0
	for i := range verts {
		if m.findEdge(verts[i].idx, verts[(i+1)%n].idx) < 0 {
			missing++
		}
	}
	m.reserve(0, missing, n, 1)
	var ebuf [16]Edge
	edges := ebuf[:0]
	for i := range verts {
		edges = append(edges, m.MakeEdgeChecked(verts[i], verts[(i+1)%n], Edge{}, true))
	}
	f := m.MakeFace(verts, edges)
	if xi >= 0 {
		m.copyElem(m, KindFace, xi, f.idx)
	}
	return f
}

// MakeNgon creates a face bounded by edges, which may come in any order.
// The boundary is walked starting with the edge from v1 to v2, which fixes
// the winding. The zero Face is returned when the edges do not form one
// simple closed chain through that edge. With dedup set, a face already
// spanning the same vertices is returned instead.
func (m *Mesh) MakeNgon(v1, v2 Vert, edges []Edge, dedup bool) Face {
	if len(edges) < 3 {
		return Face{}
	}
	a, b := m.vidx(v1), m.vidx(v2)
	var ibuf [16]int32
	eis := ibuf[:0]
	first := int32(-1)
	for _, e := range edges {
		ei := m.eidx(e)
		if first < 0 && m.edge(ei).hasVert(a) && m.edge(ei).hasVert(b) {
			first = ei
		}
		eis = append(eis, ei)
	}
	if first < 0 {
		return Face{}
	}

	var visited, used TagSet[int32]
	var vbuf [16]Vert
	var obuf [16]Edge
	verts := append(vbuf[:0], v1)
	ordered := append(obuf[:0], m.eh(first))
	visited.Tag(a)
	used.Tag(first)
	for cur := b; cur != a; {
		if !visited.Tag(cur) {
			return Face{}
		}
		verts = append(verts, m.vh(cur))
		next := int32(-1)
		for _, ei := range eis {
			if used.Has(ei) || !m.edge(ei).hasVert(cur) {
				continue
			}
			if next >= 0 {
				return Face{}
			}
			next = ei
		}
		if next < 0 {
			return Face{}
		}
		used.Tag(next)
		ordered = append(ordered, m.eh(next))
		cur = m.edge(next).other(cur)
	}
	if used.Len() != len(edges) {
		return Face{}
	}
	if dedup {
		if f := m.FaceExists(verts); !f.IsNil() {
			return f
		}
	}
	return m.MakeFace(verts, ordered)
}

// elemIdx validates e and returns its slot index.
func (m *Mesh) elemIdx(e Elem) int32 {
	switch h := e.(type) {
	case Vert:
		return m.vidx(h)
	case Edge:
		return m.eidx(h)
	case Loop:
		return m.lidx(h)
	case Face:
		return m.fidx(h)
	}
	panic("bmesh: unknown element type")
}

// CopyAttrs copies the flags, scalar properties and attribute record of src
// onto dst. Both must be of the same kind. FlagDelete is not copied.
func (m *Mesh) CopyAttrs(src, dst Elem) {
	m.CopyAttrsFrom(m, src, dst)
}

// CopyAttrsFrom is like CopyAttrs with src belonging to mesh from.
func (m *Mesh) CopyAttrsFrom(from *Mesh, src, dst Elem) {
	if src.Kind() != dst.Kind() {
		panic("bmesh: CopyAttrs between " + src.Kind().String() + " and " + dst.Kind().String())
	}
	m.copyElem(from, src.Kind(), from.elemIdx(src), m.elemIdx(dst))
}

// SplitEdge inserts a vertex on e at the point fac of the way from its
// endpoint v to the other one. The new vertex, its corners and weight are
// interpolated between the endpoints. It returns the new edge and vertex
// as SplitEdgeMakeVert does.
func (m *Mesh) SplitEdge(e Edge, v Vert, fac float64) (Edge, Vert) {
	ei, vi := m.eidx(e), m.vidx(v)
	if !m.edge(ei).hasVert(vi) {
		panic("bmesh: SplitEdge vertex is not an endpoint")
	}
	oi := m.edge(ei).other(vi)
	vv, ov := m.vert(vi), m.vert(oi)
	co := d3.Lerp(vv.co, ov.co, fac)
	ne, nv := m.SplitEdgeMakeVert(e, co)

	nvi := nv.idx
	m.copyElem(m, KindVert, vi, nvi)
	nd := m.vert(nvi)
	nd.weight = vv.weight + fac*(ov.weight-vv.weight)
	recs := []Record{vv.head.rec, ov.head.rec}
	weights := []float64{1 - fac, fac}
	m.interp(KindVert, nd.head.rec, recs, weights)

	for _, ej := range []int32{ei, ne.idx} {
		start := m.edge(ej).l
		for li := start; li >= 0; {
			l := m.loop(li)
			if l.v == nvi {
				p, q := m.loop(l.prev), m.loop(l.next)
				if p.v == vi {
					recs[0], recs[1] = p.head.rec, q.head.rec
				} else {
					recs[0], recs[1] = q.head.rec, p.head.rec
				}
				m.interp(KindLoop, l.head.rec, recs, weights)
			}
			li = l.rnext
			if li == start {
				break
			}
		}
	}
	return ne, nv
}
