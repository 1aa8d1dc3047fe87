package bmesh

import (
	"github.com/soypat/bmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SplitFace cuts f in two along a new edge between v1 and v2, both corners
// of f. f keeps the boundary run from v1 up to v2 and the new face takes the
// run from v2 back to v1. The returned loop is the corner of the new face at
// v1, which uses the new edge.
//
// Zero handles are returned when v1 == v2 or when either side would have
// fewer than three corners; the mesh is left untouched.
func (m *Mesh) SplitFace(f Face, v1, v2 Vert) (Face, Loop) {
	fi, a, b := m.fidx(f), m.vidx(v1), m.vidx(v2)
	l1, l2 := m.faceLoopAt(fi, a), m.faceLoopAt(fi, b)
	if l1 < 0 || l2 < 0 {
		panic("bmesh: SplitFace vertex is not a corner of face")
	}
	if a == b {
		return Face{}, Loop{}
	}
	fc := m.face(fi)
	var dist int32
	for li := l1; li != l2; li = m.loop(li).next {
		dist++
	}
	if dist < 2 || fc.len-dist < 2 {
		return Face{}, Loop{}
	}

	m.reserve(0, 1, 2, 1)
	nfi := allocSlot(m, &m.faces, KindFace)
	nf := m.face(nfi)
	nf.head.rec = m.attrs.AllocRecord(KindFace)
	m.copyElem(m, KindFace, fi, nfi)

	ei := m.makeEdge(a, b)
	la := m.newLoop(b, fi)
	lb := m.newLoop(a, nfi)
	m.copyElem(m, KindLoop, l2, la)
	m.copyElem(m, KindLoop, l1, lb)

	p, q := m.loop(l2).prev, m.loop(l1).prev
	m.linkLoops(p, la)
	m.linkLoops(la, l1)
	m.linkLoops(q, lb)
	m.linkLoops(lb, l2)
	m.radialInsert(ei, la)
	m.radialInsert(ei, lb)

	for li := l2; li != lb; li = m.loop(li).next {
		m.loop(li).f = nfi
	}
	nf.l = l2
	nf.len = fc.len - dist + 1
	fc.len = dist + 1
	if m.loop(fc.l).f != fi {
		fc.l = l1
	}
	return m.fh(nfi), m.lh(lb)
}

// linkLoops makes b follow a in their face cycle.
func (m *Mesh) linkLoops(a, b int32) {
	m.loop(a).next = b
	m.loop(b).prev = a
}

// JoinFaces merges fb into fa across the edge e they share. Each face must
// use e exactly once. The two corners on e are removed, e is killed when no
// other face uses it, fb is killed and fa is returned.
//
// The zero Face is returned with the mesh untouched when the faces wind in
// the same direction along e or touch at vertices other than e's endpoints.
func (m *Mesh) JoinFaces(fa, fb Face, e Edge) Face {
	fai, fbi, ei := m.fidx(fa), m.fidx(fb), m.eidx(e)
	if fai == fbi {
		panic("bmesh: JoinFaces on a single face")
	}
	la, lb := int32(-1), int32(-1)
	var na, nb int
	start := m.edge(ei).l
	for li := start; li >= 0; {
		l := m.loop(li)
		switch l.f {
		case fai:
			la = li
			na++
		case fbi:
			lb = li
			nb++
		}
		li = l.rnext
		if li == start {
			break
		}
	}
	if na != 1 || nb != 1 {
		panic("bmesh: JoinFaces faces must each use edge exactly once")
	}
	if m.loop(la).v == m.loop(lb).v {
		return Face{}
	}
	var tags TagSet[int32]
	m.tagFaceVerts(fai, &tags)
	shared := 0
	fbc := m.face(fbi)
	li := fbc.l
	for n := fbc.len; n > 0; n-- {
		l := m.loop(li)
		if tags.Has(l.v) {
			shared++
		}
		li = l.next
	}
	if shared != 2 {
		return Face{}
	}

	fac := m.face(fai)
	li = m.loop(lb).next
	for li != lb {
		l := m.loop(li)
		l.f = fai
		li = l.next
	}
	aprev, anext := m.loop(la).prev, m.loop(la).next
	bprev, bnext := m.loop(lb).prev, m.loop(lb).next
	m.linkLoops(aprev, bnext)
	m.linkLoops(bprev, anext)
	if fac.l == la {
		fac.l = anext
	}
	fac.len += fbc.len - 2

	m.radialRemove(ei, la)
	m.radialRemove(ei, lb)
	m.freeLoop(la)
	m.freeLoop(lb)
	if m.edge(ei).l < 0 {
		m.killEdge(ei)
	}
	m.attrs.FreeRecord(KindFace, fbc.head.rec)
	m.faces.free(fbi)
	return fa
}

func (m *Mesh) tagFaceVerts(fi int32, tags *TagSet[int32]) {
	fc := m.face(fi)
	li := fc.l
	for n := fc.len; n > 0; n-- {
		l := m.loop(li)
		tags.Tag(l.v)
		li = l.next
	}
}

// SplitEdgeMakeVert inserts a new vertex at co on e. e keeps its first
// endpoint and ends at the new vertex; the returned edge runs from the new
// vertex to e's old second endpoint. Every face using e gains one corner.
// New corners copy the attributes of the corner they follow.
func (m *Mesh) SplitEdgeMakeVert(e Edge, co r3.Vec) (Edge, Vert) {
	ei := m.eidx(e)
	var buf [8]int32
	loops := m.radialLoops(ei, buf[:0])

	m.reserve(1, 1, len(loops), 0)
	a, b := m.edge(ei).v1, m.edge(ei).v2
	nv := m.makeVert(co)
	m.diskRemove(b, ei)
	m.edge(ei).v2 = nv
	m.diskInsert(nv, ei)
	ne := m.makeEdge(nv, b)
	m.copyElem(m, KindEdge, ei, ne)

	for _, li := range loops {
		f := m.loop(li).f
		nl := m.newLoop(nv, f)
		m.copyElem(m, KindLoop, li, nl)
		next := m.loop(li).next
		m.linkLoops(nl, next)
		m.linkLoops(li, nl)
		if m.loop(li).v == a {
			m.radialInsert(ne, nl)
		} else {
			m.radialRemove(ei, li)
			m.radialInsert(ne, li)
			m.radialInsert(ei, nl)
		}
		m.face(f).len++
	}
	return m.eh(ne), m.vh(nv)
}

// CollapseEdge merges the endpoint of e opposite to keep into keep and
// returns keep. keep moves to the point fac of the way towards the other
// endpoint and its weight and attributes are blended the same way. Faces
// reduced to two corners are killed and edges that end up joining the same
// pair of vertices are merged.
//
// The zero Vert is returned with the mesh untouched when a second edge joins
// the endpoints or a face uses both endpoints without using e.
func (m *Mesh) CollapseEdge(e Edge, keep Vert, fac float64) Vert {
	ei, ki := m.eidx(e), m.vidx(keep)
	ed := m.edge(ei)
	if !ed.hasVert(ki) {
		panic("bmesh: CollapseEdge keep vertex is not an endpoint")
	}
	xi := ed.other(ki)
	if m.countEdgesBetween(ki, xi) != 1 {
		return Vert{}
	}
	var eFaces TagSet[int32]
	var buf [8]int32
	loops := m.radialLoops(ei, buf[:0])
	for _, li := range loops {
		eFaces.Tag(m.loop(li).f)
	}
	if m.shareFace(ki, xi, &eFaces) {
		return Vert{}
	}

	kv, xv := m.vert(ki), m.vert(xi)
	kv.co = d3.Lerp(kv.co, xv.co, fac)
	kv.weight += fac * (xv.weight - kv.weight)
	m.interp(KindVert, kv.head.rec, []Record{kv.head.rec, xv.head.rec}, []float64{1 - fac, fac})

	var degenerate []int32
	for _, li := range loops {
		l := m.loop(li)
		fi := l.f
		fc := m.face(fi)
		s := m.loop(l.next)
		if l.v == ki {
			m.interp(KindLoop, s.head.rec, []Record{l.head.rec, s.head.rec}, []float64{1 - fac, fac})
		} else {
			m.interp(KindLoop, s.head.rec, []Record{s.head.rec, l.head.rec}, []float64{1 - fac, fac})
		}
		next := l.next
		m.linkLoops(l.prev, next)
		if fc.l == li {
			fc.l = next
		}
		fc.len--
		m.radialRemove(ei, li)
		m.freeLoop(li)
		if fc.len < 3 {
			degenerate = append(degenerate, fi)
		}
	}
	m.killEdge(ei)
	m.joinVerts(ki, xi)
	for _, fi := range degenerate {
		if m.faces.at(fi).alive() {
			m.killFace(fi)
		}
	}
	m.mergeDuplicateEdges(ki)
	return keep
}

// SpliceVerts welds kill into keep. Every edge and corner of kill moves to
// keep and edges that end up doubled are merged. keep's position and
// attributes are unchanged.
//
// It returns false with the mesh untouched when the vertices are joined by
// an edge or share a face; use CollapseEdge for the former.
func (m *Mesh) SpliceVerts(keep, kill Vert) bool {
	ki, xi := m.vidx(keep), m.vidx(kill)
	if ki == xi {
		return false
	}
	if m.findEdge(ki, xi) >= 0 || m.shareFace(ki, xi, nil) {
		return false
	}
	m.joinVerts(ki, xi)
	m.mergeDuplicateEdges(ki)
	return true
}

// shareFace reports whether a face not in skip has corners at both a and b.
func (m *Mesh) shareFace(a, b int32, skip *TagSet[int32]) bool {
	var faces TagSet[int32]
	var buf [16]int32
	for _, ei := range m.diskEdges(a, buf[:0]) {
		start := m.edge(ei).l
		for li := start; li >= 0; {
			l := m.loop(li)
			faces.Tag(l.f)
			li = l.rnext
			if li == start {
				break
			}
		}
	}
	for fi := range faces.m {
		if skip != nil && skip.Has(fi) {
			continue
		}
		if m.faceLoopAt(fi, b) >= 0 {
			return true
		}
	}
	return false
}

// joinVerts moves every edge and corner of x onto k and frees x.
// No edge may join k and x.
func (m *Mesh) joinVerts(k, x int32) {
	var buf [16]int32
	edges := m.diskEdges(x, buf[:0])
	for _, ei := range edges {
		m.diskRemove(x, ei)
		e := m.edge(ei)
		if e.v1 == x {
			e.v1 = k
		} else {
			e.v2 = k
		}
		m.diskInsert(k, ei)
		start := e.l
		for li := start; li >= 0; {
			l := m.loop(li)
			if l.v == x {
				l.v = k
			}
			li = l.rnext
			if li == start {
				break
			}
		}
	}
	m.freeVert(x)
}

// mergeDuplicateEdges merges edges around v that share both endpoints.
// The first edge in disk order survives and takes over the corners of
// its duplicates.
func (m *Mesh) mergeDuplicateEdges(v int32) {
	var buf [16]int32
	edges := m.diskEdges(v, buf[:0])
	if len(edges) < 2 {
		return
	}
	seen := make(map[int32]int32, len(edges))
	var lbuf [8]int32
	for _, ei := range edges {
		o := m.edge(ei).other(v)
		keep, ok := seen[o]
		if !ok {
			seen[o] = ei
			continue
		}
		for _, li := range m.radialLoops(ei, lbuf[:0]) {
			m.radialRemove(ei, li)
			m.radialInsert(keep, li)
		}
		m.killEdge(ei)
	}
}

// FlipFace reverses the winding of f. Every corner stays at its vertex and
// takes over the edge of the corner that preceded it, so each edge keeps
// the same number of radial loops.
func (m *Mesh) FlipFace(f Face) {
	fc := m.face(m.fidx(f))
	li := fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		m.radialRemove(l.e, li)
		li = l.next
	}
	carry := m.loop(m.loop(fc.l).prev).e
	li = fc.l
	for k := fc.len; k > 0; k-- {
		l := m.loop(li)
		next, e := l.next, l.e
		m.radialInsert(carry, li)
		carry = e
		l.next, l.prev = l.prev, next
		li = next
	}
}
