package bmesh

// DeleteStats counts the elements killed by a deletion sweep.
type DeleteStats struct {
	Faces int
	Edges int
	Verts int
}

// DeleteFlagged kills every element carrying FlagDelete: faces first, then
// edges, then vertices, so each kill finds its dependents already gone.
// Freed slots are recycled once the sweep is done, which makes every handle
// to a killed element stale for good.
//
// An edge flagged without its faces, or a vertex flagged without its edges,
// violates the kill order and panics. FlagForDeletion never produces that.
func (m *Mesh) DeleteFlagged() DeleteStats {
	var st DeleteStats
	for i := m.faces.first; i >= 0; {
		next := m.faces.nextLive(i)
		if m.face(i).head.flag&FlagDelete != 0 {
			m.killFace(i)
			st.Faces++
		}
		i = next
	}
	for i := m.edges.first; i >= 0; {
		next := m.edges.nextLive(i)
		if e := m.edge(i); e.head.flag&FlagDelete != 0 {
			if e.l >= 0 {
				panic("bmesh: edge flagged for deletion is still used by a face")
			}
			m.killEdge(i)
			st.Edges++
		}
		i = next
	}
	for i := m.verts.first; i >= 0; {
		next := m.verts.nextLive(i)
		if v := m.vert(i); v.head.flag&FlagDelete != 0 {
			if v.e >= 0 {
				panic("bmesh: vertex flagged for deletion is still used by an edge")
			}
			m.freeVert(i)
			st.Verts++
		}
		i = next
	}
	n := m.Recycle()
	Logger().Debug("bmesh: deleted flagged elements",
		"faces", st.Faces, "edges", st.Edges, "verts", st.Verts, "recycled", n)
	return st
}

// FlagLoose flags for deletion every edge no face uses and every vertex no
// edge uses. It returns how many elements it flagged.
func (m *Mesh) FlagLoose() int {
	n := 0
	for i := m.edges.first; i >= 0; i = m.edges.nextLive(i) {
		if e := m.edge(i); e.l < 0 && e.head.flag&FlagDelete == 0 {
			e.head.flag |= FlagDelete
			n++
		}
	}
	for i := m.verts.first; i >= 0; i = m.verts.nextLive(i) {
		if v := m.vert(i); v.e < 0 && v.head.flag&FlagDelete == 0 {
			v.head.flag |= FlagDelete
			n++
		}
	}
	return n
}
