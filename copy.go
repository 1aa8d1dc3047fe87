package bmesh

// Copy returns a deep copy of m. The copy shares the attribute service,
// pool limits and exhaustion callback of m and gets its own attribute
// records. Elements keep their relative order, flags and indices but
// handles of m do not refer to elements of the copy.
func (m *Mesh) Copy() *Mesh {
	c := &Mesh{attrs: m.attrs, exhausted: m.exhausted}
	c.verts.init(m.verts.shift, m.verts.limit)
	c.edges.init(m.edges.shift, m.edges.limit)
	c.loops.init(m.loops.shift, m.loops.limit)
	c.faces.init(m.faces.shift, m.faces.limit)

	vmap := make([]int32, m.verts.n)
	for vi := m.verts.first; vi >= 0; vi = m.verts.nextLive(vi) {
		ni := c.makeVert(m.vert(vi).co)
		c.copyHead(m, KindVert, vi, ni)
		vmap[vi] = ni
	}
	emap := make([]int32, m.edges.n)
	for ei := m.edges.first; ei >= 0; ei = m.edges.nextLive(ei) {
		e := m.edge(ei)
		ni := c.makeEdge(vmap[e.v1], vmap[e.v2])
		c.copyHead(m, KindEdge, ei, ni)
		emap[ei] = ni
	}
	var verts []Vert
	var edges []Edge
	for fi := m.faces.first; fi >= 0; fi = m.faces.nextLive(fi) {
		fc := m.face(fi)
		verts, edges = verts[:0], edges[:0]
		li := fc.l
		for k := fc.len; k > 0; k-- {
			l := m.loop(li)
			verts = append(verts, c.vh(vmap[l.v]))
			edges = append(edges, c.eh(emap[l.e]))
			li = l.next
		}
		nf := c.MakeFace(verts, edges)
		c.copyHead(m, KindFace, fi, nf.idx)
		li, nli := fc.l, c.face(nf.idx).l
		for k := fc.len; k > 0; k-- {
			c.copyHead(m, KindLoop, li, nli)
			li, nli = m.loop(li).next, c.loop(nli).next
		}
	}
	Logger().Debug("bmesh: copied mesh", "verts", c.NumVerts(), "edges", c.NumEdges(), "faces", c.NumFaces())
	return c
}

// copyHead copies an element of src onto an element of m like copyElem
// and also carries over the pending-deletion bit and the index.
func (m *Mesh) copyHead(src *Mesh, k Kind, si, di int32) {
	m.copyElem(src, k, si, di)
	var sh, dh *elemHead
	switch k {
	case KindVert:
		sh, dh = &src.vert(si).head, &m.vert(di).head
	case KindEdge:
		sh, dh = &src.edge(si).head, &m.edge(di).head
	case KindLoop:
		sh, dh = &src.loop(si).head, &m.loop(di).head
	case KindFace:
		sh, dh = &src.face(si).head, &m.face(di).head
	}
	dh.flag = sh.flag
	dh.index = sh.index
}
