package bmesh

import "gonum.org/v1/gonum/spatial/r3"

// Euler operators. Each one either completes and leaves every cycle
// invariant intact, or panics before touching the mesh when called
// against its contract or when a pool limit leaves no room for the
// elements it would create.

// MakeVert creates a loose vertex at co.
func (m *Mesh) MakeVert(co r3.Vec) Vert {
	return m.vh(m.makeVert(co))
}

func (m *Mesh) makeVert(co r3.Vec) int32 {
	i := allocSlot(m, &m.verts, KindVert)
	v := m.vert(i)
	v.co = co
	v.e = -1
	v.head.rec = m.attrs.AllocRecord(KindVert)
	return i
}

// MakeEdge creates an edge between v1 and v2 and splices it into both disk
// cycles. It does not look for an existing edge; see MakeEdgeChecked.
func (m *Mesh) MakeEdge(v1, v2 Vert) Edge {
	a, b := m.vidx(v1), m.vidx(v2)
	if a == b {
		panic("bmesh: MakeEdge with identical endpoints")
	}
	return m.eh(m.makeEdge(a, b))
}

func (m *Mesh) makeEdge(a, b int32) int32 {
	i := allocSlot(m, &m.edges, KindEdge)
	e := m.edge(i)
	e.v1, e.v2 = a, b
	e.d1 = diskLink{-1, -1}
	e.d2 = diskLink{-1, -1}
	e.l = -1
	e.head.rec = m.attrs.AllocRecord(KindEdge)
	m.diskInsert(a, i)
	m.diskInsert(b, i)
	return i
}

// MakeFace creates a face with one corner per vertex of verts, in order.
// edges[i] must join verts[i] and verts[(i+1)%len(verts)]; the slice order
// is the face winding. At least three vertices are required.
func (m *Mesh) MakeFace(verts []Vert, edges []Edge) Face {
	n := len(verts)
	if n < 3 {
		panic("bmesh: MakeFace needs at least 3 vertices")
	}
	if len(edges) != n {
		panic("bmesh: MakeFace vertex and edge count mismatch")
	}
	for i := range verts {
		a := m.vidx(verts[i])
		b := m.vidx(verts[(i+1)%n])
		e := m.edge(m.eidx(edges[i]))
		if !(e.v1 == a && e.v2 == b) && !(e.v1 == b && e.v2 == a) {
			panic("bmesh: MakeFace edge does not join consecutive vertices")
		}
	}

	m.reserve(0, 0, n, 1)
	fi := allocSlot(m, &m.faces, KindFace)
	f := m.face(fi)
	f.head.rec = m.attrs.AllocRecord(KindFace)
	first, prev := int32(-1), int32(-1)
	for i := range verts {
		li := m.newLoop(verts[i].idx, fi)
		l := m.loop(li)
		l.prev = prev
		if prev >= 0 {
			m.loop(prev).next = li
		} else {
			first = li
		}
		m.radialInsert(edges[i].idx, li)
		prev = li
	}
	m.loop(prev).next = first
	m.loop(first).prev = prev
	f.l = first
	f.len = int32(n)
	return m.fh(fi)
}

// newLoop allocates an unlinked corner of face fi at vertex vi.
func (m *Mesh) newLoop(vi, fi int32) int32 {
	li := allocSlot(m, &m.loops, KindLoop)
	l := m.loop(li)
	l.v, l.f, l.e = vi, fi, -1
	l.next, l.prev = -1, -1
	l.rnext, l.rprev = -1, -1
	l.head.rec = m.attrs.AllocRecord(KindLoop)
	return li
}

// KillFace removes f and its corners, unlinking each corner from the radial
// cycle of its edge. Edges and vertices are left in place.
func (m *Mesh) KillFace(f Face) {
	m.killFace(m.fidx(f))
}

func (m *Mesh) killFace(fi int32) {
	fc := m.face(fi)
	li := fc.l
	for n := fc.len; n > 0; n-- {
		l := m.loop(li)
		next := l.next
		m.radialRemove(l.e, li)
		m.freeLoop(li)
		li = next
	}
	m.attrs.FreeRecord(KindFace, fc.head.rec)
	m.faces.free(fi)
}

// KillEdge removes e from both disk cycles. No face may use e.
func (m *Mesh) KillEdge(e Edge) {
	ei := m.eidx(e)
	if m.edge(ei).l >= 0 {
		panic("bmesh: KillEdge on edge used by faces")
	}
	m.killEdge(ei)
}

func (m *Mesh) killEdge(ei int32) {
	e := m.edge(ei)
	m.diskRemove(e.v1, ei)
	m.diskRemove(e.v2, ei)
	m.attrs.FreeRecord(KindEdge, e.head.rec)
	m.edges.free(ei)
}

// KillVert removes v. No edge may use v.
func (m *Mesh) KillVert(v Vert) {
	vi := m.vidx(v)
	if m.vert(vi).e >= 0 {
		panic("bmesh: KillVert on vertex used by edges")
	}
	m.freeVert(vi)
}

func (m *Mesh) freeVert(vi int32) {
	m.attrs.FreeRecord(KindVert, m.vert(vi).head.rec)
	m.verts.free(vi)
}

func (m *Mesh) freeLoop(li int32) {
	m.attrs.FreeRecord(KindLoop, m.loop(li).head.rec)
	m.loops.free(li)
}

// copyElem copies header flags, kind scalars and the attribute record from
// an element of src onto an element of m. The pending-deletion bit of dst
// is kept as is.
func (m *Mesh) copyElem(src *Mesh, k Kind, si, di int32) {
	var sh, dh *elemHead
	switch k {
	case KindVert:
		sv, dv := src.vert(si), m.vert(di)
		dv.weight = sv.weight
		sh, dh = &sv.head, &dv.head
	case KindEdge:
		se, de := src.edge(si), m.edge(di)
		de.crease, de.bweight = se.crease, se.bweight
		sh, dh = &se.head, &de.head
	case KindLoop:
		sh, dh = &src.loop(si).head, &m.loop(di).head
	case KindFace:
		sf, df := src.face(si), m.face(di)
		df.mat = sf.mat
		sh, dh = &sf.head, &df.head
	}
	dh.flag = sh.flag&^FlagDelete | dh.flag&FlagDelete
	m.attrs.CopyRecord(k, src.attrs, sh.rec, dh.rec)
}
