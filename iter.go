package bmesh

import "iter"

// Iterators are lazy and restartable. Setting flags or attributes while
// iterating is fine; structural edits are not, except where noted. Callers
// that need to edit collect the elements first with slices.Collect.

// Verts yields every live vertex in creation order. Killing the vertex just
// yielded is allowed.
func (m *Mesh) Verts() iter.Seq[Vert] {
	return func(yield func(Vert) bool) {
		for i := m.verts.first; i >= 0; {
			next := m.verts.nextLive(i)
			if !yield(m.vh(i)) {
				return
			}
			i = next
		}
	}
}

// Edges yields every live edge in creation order. Killing the edge just
// yielded is allowed.
func (m *Mesh) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for i := m.edges.first; i >= 0; {
			next := m.edges.nextLive(i)
			if !yield(m.eh(i)) {
				return
			}
			i = next
		}
	}
}

// Faces yields every live face in creation order. Killing the face just
// yielded is allowed.
func (m *Mesh) Faces() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for i := m.faces.first; i >= 0; {
			next := m.faces.nextLive(i)
			if !yield(m.fh(i)) {
				return
			}
			i = next
		}
	}
}

// VertEdges yields the edges around v in disk order.
func (m *Mesh) VertEdges(v Vert) iter.Seq[Edge] {
	vi := m.vidx(v)
	return func(yield func(Edge) bool) {
		start := m.vert(vi).e
		if start < 0 {
			return
		}
		for ei := start; ; {
			if !yield(m.eh(ei)) {
				return
			}
			ei = m.diskNext(ei, vi)
			if ei == start {
				return
			}
		}
	}
}

// VertLoops yields the corners at v.
func (m *Mesh) VertLoops(v Vert) iter.Seq[Loop] {
	vi := m.vidx(v)
	return func(yield func(Loop) bool) {
		start := m.vert(vi).e
		if start < 0 {
			return
		}
		for ei := start; ; {
			rs := m.edge(ei).l
			for li := rs; li >= 0; {
				l := m.loop(li)
				if l.v == vi && !yield(m.lh(li)) {
					return
				}
				li = l.rnext
				if li == rs {
					break
				}
			}
			ei = m.diskNext(ei, vi)
			if ei == start {
				return
			}
		}
	}
}

// VertFaces yields each face with a corner at v once.
func (m *Mesh) VertFaces(v Vert) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		var sbuf [16]int32
		seen := sbuf[:0]
		for l := range m.VertLoops(v) {
			fi := m.loop(l.idx).f
			dup := false
			for _, s := range seen {
				if s == fi {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen = append(seen, fi)
			if !yield(m.fh(fi)) {
				return
			}
		}
	}
}

// EdgeLoops yields the loops of e in radial order.
func (m *Mesh) EdgeLoops(e Edge) iter.Seq[Loop] {
	ei := m.eidx(e)
	return func(yield func(Loop) bool) {
		start := m.edge(ei).l
		for li := start; li >= 0; {
			if !yield(m.lh(li)) {
				return
			}
			li = m.loop(li).rnext
			if li == start {
				return
			}
		}
	}
}

// EdgeFaces yields the faces using e, once per use.
func (m *Mesh) EdgeFaces(e Edge) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for l := range m.EdgeLoops(e) {
			if !yield(m.fh(m.loop(l.idx).f)) {
				return
			}
		}
	}
}

// LoopRadial yields the loops sharing l's edge, starting with l.
func (m *Mesh) LoopRadial(l Loop) iter.Seq[Loop] {
	li0 := m.lidx(l)
	return func(yield func(Loop) bool) {
		for li := li0; ; {
			if !yield(m.lh(li)) {
				return
			}
			li = m.loop(li).rnext
			if li == li0 {
				return
			}
		}
	}
}

// FaceLoops yields the corners of f in winding order.
func (m *Mesh) FaceLoops(f Face) iter.Seq[Loop] {
	fi := m.fidx(f)
	return func(yield func(Loop) bool) {
		fc := m.face(fi)
		li := fc.l
		for n := fc.len; n > 0; n-- {
			if !yield(m.lh(li)) {
				return
			}
			li = m.loop(li).next
		}
	}
}

func (m *Mesh) FaceVerts(f Face) iter.Seq[Vert] {
	return func(yield func(Vert) bool) {
		for l := range m.FaceLoops(f) {
			if !yield(m.vh(m.loop(l.idx).v)) {
				return
			}
		}
	}
}

func (m *Mesh) FaceEdges(f Face) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for l := range m.FaceLoops(f) {
			if !yield(m.eh(m.loop(l.idx).e)) {
				return
			}
		}
	}
}

// Relation selects the traversal performed by Iter.
type Relation uint8

const (
	VertsOfMesh Relation = iota
	EdgesOfMesh
	FacesOfMesh
	// The relations below take an anchor of the kind named after "Of".
	// LoopsOfLoop walks the radial cycle of the anchor loop.
	EdgesOfVert
	FacesOfVert
	LoopsOfVert
	FacesOfEdge
	LoopsOfEdge
	LoopsOfFace
	VertsOfFace
	EdgesOfFace
	LoopsOfLoop
)

// Iter is the generic form of the typed iterators above. The anchor is
// ignored by the whole-mesh relations and may be nil for them. A wrong
// anchor kind panics.
func (m *Mesh) Iter(rel Relation, anchor Elem) iter.Seq[Elem] {
	switch rel {
	case VertsOfMesh:
		return elems(m.Verts())
	case EdgesOfMesh:
		return elems(m.Edges())
	case FacesOfMesh:
		return elems(m.Faces())
	case EdgesOfVert:
		return elems(m.VertEdges(anchor.(Vert)))
	case FacesOfVert:
		return elems(m.VertFaces(anchor.(Vert)))
	case LoopsOfVert:
		return elems(m.VertLoops(anchor.(Vert)))
	case FacesOfEdge:
		return elems(m.EdgeFaces(anchor.(Edge)))
	case LoopsOfEdge:
		return elems(m.EdgeLoops(anchor.(Edge)))
	case LoopsOfFace:
		return elems(m.FaceLoops(anchor.(Face)))
	case VertsOfFace:
		return elems(m.FaceVerts(anchor.(Face)))
	case EdgesOfFace:
		return elems(m.FaceEdges(anchor.(Face)))
	case LoopsOfLoop:
		return elems(m.LoopRadial(anchor.(Loop)))
	}
	panic("bmesh: unknown iterator relation")
}

func elems[E Elem](seq iter.Seq[E]) iter.Seq[Elem] {
	return func(yield func(Elem) bool) {
		for e := range seq {
			if !yield(e) {
				return
			}
		}
	}
}
