package bmesh

// Flag is the bitfield carried by every element header.
type Flag uint16

const (
	FlagSelect Flag = 1 << iota
	FlagHide
	FlagSeam
	FlagSmooth
	// FlagTag is free for use by algorithms. Prefer a TagSet when the
	// algorithm may be nested inside another one using tags.
	FlagTag
	// FlagDelete marks an element for the deletion sweep.
	FlagDelete
)

func (m *Mesh) Flags(e Elem) Flag           { return m.head(e).flag }
func (m *Mesh) HasFlag(e Elem, f Flag) bool { return m.head(e).flag&f != 0 }
func (m *Mesh) SetFlag(e Elem, f Flag)      { m.head(e).flag |= f }
func (m *Mesh) ClearFlag(e Elem, f Flag)    { m.head(e).flag &^= f }
func (m *Mesh) SetFlags(e Elem, f Flag)     { m.head(e).flag = f }

// FlagCount returns how many live elements of kind k have any bit of f set.
func (m *Mesh) FlagCount(k Kind, f Flag) (n int) {
	switch k {
	case KindVert:
		for i := m.verts.first; i >= 0; i = m.verts.nextLive(i) {
			if m.vert(i).head.flag&f != 0 {
				n++
			}
		}
	case KindEdge:
		for i := m.edges.first; i >= 0; i = m.edges.nextLive(i) {
			if m.edge(i).head.flag&f != 0 {
				n++
			}
		}
	case KindLoop:
		for i := m.loops.first; i >= 0; i = m.loops.nextLive(i) {
			if m.loop(i).head.flag&f != 0 {
				n++
			}
		}
	case KindFace:
		for i := m.faces.first; i >= 0; i = m.faces.nextLive(i) {
			if m.face(i).head.flag&f != 0 {
				n++
			}
		}
	}
	return n
}

// FlagForDeletion marks e for the next DeleteFlagged call. Nothing is
// unlinked. Flagging a vertex also flags its edges and their faces;
// flagging an edge also flags its faces. Loops go with their face and
// cannot be flagged on their own.
func (m *Mesh) FlagForDeletion(e Elem) {
	switch h := e.(type) {
	case Vert:
		vi := m.vidx(h)
		m.vert(vi).head.flag |= FlagDelete
		start := m.vert(vi).e
		if start < 0 {
			return
		}
		for ei := start; ; {
			m.flagEdgeDelete(ei)
			ei = m.diskNext(ei, vi)
			if ei == start {
				return
			}
		}
	case Edge:
		m.flagEdgeDelete(m.eidx(h))
	case Face:
		m.face(m.fidx(h)).head.flag |= FlagDelete
	default:
		panic("bmesh: FlagForDeletion on " + e.Kind().String())
	}
}

func (m *Mesh) flagEdgeDelete(ei int32) {
	e := m.edge(ei)
	e.head.flag |= FlagDelete
	start := e.l
	if start < 0 {
		return
	}
	for li := start; ; {
		l := m.loop(li)
		m.face(l.f).head.flag |= FlagDelete
		li = l.rnext
		if li == start {
			return
		}
	}
}

// SelectFlush propagates FlagSelect from vertices to edges and faces.
// With sel set, edges whose endpoints are both selected and faces whose
// edges are all selected become selected. Otherwise edges with an
// unselected endpoint and faces with an unselected edge are deselected.
// Hidden edges and faces are left alone.
func (m *Mesh) SelectFlush(sel bool) {
	for ei := m.edges.first; ei >= 0; ei = m.edges.nextLive(ei) {
		e := m.edge(ei)
		if e.head.flag&FlagHide != 0 {
			continue
		}
		both := m.vert(e.v1).head.flag&m.vert(e.v2).head.flag&FlagSelect != 0
		if sel && both {
			e.head.flag |= FlagSelect
		} else if !sel && !both {
			e.head.flag &^= FlagSelect
		}
	}
	for fi := m.faces.first; fi >= 0; fi = m.faces.nextLive(fi) {
		fc := m.face(fi)
		if fc.head.flag&FlagHide != 0 {
			continue
		}
		all := true
		li := fc.l
		for k := fc.len; k > 0 && all; k-- {
			l := m.loop(li)
			all = m.edge(l.e).head.flag&FlagSelect != 0
			li = l.next
		}
		if sel && all {
			fc.head.flag |= FlagSelect
		} else if !sel && !all {
			fc.head.flag &^= FlagSelect
		}
	}
}

// TagSet is a scratch set of elements owned by one algorithm run. Unlike
// FlagTag it cannot collide with tags of an enclosing algorithm.
//
// The zero value is ready to use.
type TagSet[E comparable] struct {
	m map[E]struct{}
}

// NewTagSet returns a TagSet sized for about n elements.
func NewTagSet[E comparable](n int) *TagSet[E] {
	return &TagSet[E]{m: make(map[E]struct{}, n)}
}

// Tag adds e and reports whether it was absent before.
func (t *TagSet[E]) Tag(e E) bool {
	if t.m == nil {
		t.m = make(map[E]struct{})
	}
	if _, ok := t.m[e]; ok {
		return false
	}
	t.m[e] = struct{}{}
	return true
}

func (t *TagSet[E]) Has(e E) bool {
	_, ok := t.m[e]
	return ok
}

func (t *TagSet[E]) Untag(e E) { delete(t.m, e) }

// Clear removes all elements and keeps the allocated storage.
func (t *TagSet[E]) Clear() { clear(t.m) }

func (t *TagSet[E]) Len() int { return len(t.m) }
