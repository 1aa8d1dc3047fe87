package bmesh

// Disk and radial cycle maintenance. Every function here splices in O(1)
// given the anchors already stored on the elements.

// diskInsert appends edge ei to the disk cycle of vertex vi.
// A vertex with a single edge has a self referencing one-entry cycle.
func (m *Mesh) diskInsert(vi, ei int32) {
	v := m.vert(vi)
	dl := m.edge(ei).diskLink(vi)
	if v.e < 0 {
		v.e = ei
		dl.prev, dl.next = ei, ei
		return
	}
	anchor := m.edge(v.e).diskLink(vi)
	prev := anchor.prev
	dl.next = v.e
	dl.prev = prev
	m.edge(prev).diskLink(vi).next = ei
	anchor.prev = ei
}

// diskRemove unlinks edge ei from the disk cycle of vertex vi and moves the
// vertex anchor off ei if needed.
func (m *Mesh) diskRemove(vi, ei int32) {
	v := m.vert(vi)
	dl := m.edge(ei).diskLink(vi)
	if dl.next == ei {
		v.e = -1
	} else {
		m.edge(dl.prev).diskLink(vi).next = dl.next
		m.edge(dl.next).diskLink(vi).prev = dl.prev
		if v.e == ei {
			v.e = dl.next
		}
	}
	dl.prev, dl.next = -1, -1
}

func (m *Mesh) diskNext(ei, vi int32) int32 { return m.edge(ei).diskLink(vi).next }
func (m *Mesh) diskPrev(ei, vi int32) int32 { return m.edge(ei).diskLink(vi).prev }

func (m *Mesh) diskCount(vi int32) int {
	start := m.vert(vi).e
	if start < 0 {
		return 0
	}
	n := 0
	for ei := start; ; {
		n++
		ei = m.diskNext(ei, vi)
		if ei == start {
			return n
		}
	}
}

// DiskNext returns the edge following e in the disk cycle of v.
func (m *Mesh) DiskNext(e Edge, v Vert) Edge {
	return m.eh(m.diskNext(m.eidx(e), m.vidx(v)))
}

// DiskPrev returns the edge preceding e in the disk cycle of v.
func (m *Mesh) DiskPrev(e Edge, v Vert) Edge {
	return m.eh(m.diskPrev(m.eidx(e), m.vidx(v)))
}

// radialInsert appends loop li to the radial cycle of edge ei and sets
// the loop's edge.
func (m *Mesh) radialInsert(ei, li int32) {
	e := m.edge(ei)
	l := m.loop(li)
	l.e = ei
	if e.l < 0 {
		e.l = li
		l.rnext, l.rprev = li, li
		return
	}
	anchor := m.loop(e.l)
	l.rprev = e.l
	l.rnext = anchor.rnext
	m.loop(anchor.rnext).rprev = li
	anchor.rnext = li
}

// radialRemove unlinks loop li from the radial cycle of edge ei.
func (m *Mesh) radialRemove(ei, li int32) {
	e := m.edge(ei)
	l := m.loop(li)
	if l.e != ei {
		panic("bmesh: loop is not in the radial cycle of edge")
	}
	if l.rnext == li {
		e.l = -1
	} else {
		m.loop(l.rprev).rnext = l.rnext
		m.loop(l.rnext).rprev = l.rprev
		if e.l == li {
			e.l = l.rnext
		}
	}
	l.rnext, l.rprev = -1, -1
}

func (m *Mesh) radialCount(ei int32) int {
	start := m.edge(ei).l
	if start < 0 {
		return 0
	}
	n := 0
	for li := start; ; {
		n++
		li = m.loop(li).rnext
		if li == start {
			return n
		}
	}
}

// radialLoops appends the loops of edge ei to dst. Callers that relink
// loops take a snapshot first since relinking breaks the walk.
func (m *Mesh) radialLoops(ei int32, dst []int32) []int32 {
	start := m.edge(ei).l
	if start < 0 {
		return dst
	}
	for li := start; ; {
		dst = append(dst, li)
		li = m.loop(li).rnext
		if li == start {
			return dst
		}
	}
}

// diskEdges appends the edges around vertex vi to dst.
func (m *Mesh) diskEdges(vi int32, dst []int32) []int32 {
	start := m.vert(vi).e
	if start < 0 {
		return dst
	}
	for ei := start; ; {
		dst = append(dst, ei)
		ei = m.diskNext(ei, vi)
		if ei == start {
			return dst
		}
	}
}

// findEdge returns an edge joining a and b or -1. Both disk cycles are
// walked in lock step so the search stops after the shorter one is done.
func (m *Mesh) findEdge(a, b int32) int32 {
	sa, sb := m.vert(a).e, m.vert(b).e
	if sa < 0 || sb < 0 || a == b {
		return -1
	}
	ea, eb := sa, sb
	for {
		if m.edge(ea).other(a) == b {
			return ea
		}
		if m.edge(eb).other(b) == a {
			return eb
		}
		ea = m.diskNext(ea, a)
		eb = m.diskNext(eb, b)
		if ea == sa || eb == sb {
			return -1
		}
	}
}

// FindEdge returns an edge joining v1 and v2, or the zero Edge.
func (m *Mesh) FindEdge(v1, v2 Vert) Edge {
	return m.eh(m.findEdge(m.vidx(v1), m.vidx(v2)))
}

// countEdgesBetween returns how many edges join a and b.
func (m *Mesh) countEdgesBetween(a, b int32) int {
	start := m.vert(a).e
	if start < 0 {
		return 0
	}
	n := 0
	for ei := start; ; {
		if m.edge(ei).other(a) == b {
			n++
		}
		ei = m.diskNext(ei, a)
		if ei == start {
			return n
		}
	}
}
