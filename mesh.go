// Package bmesh implements an editable boundary representation for polygon
// meshes: arbitrary n-gon faces, non-manifold topology and constant time
// local edits through a small set of Euler operators.
//
// Adjacency is kept in three kinds of circular lists. The disk cycle threads
// every edge around each of its two endpoints, the radial cycle threads every
// loop (face corner) around the edge it uses and the loop cycle threads the
// corners of a face in winding order.
//
// A Mesh is not safe for concurrent use.
package bmesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh owns the element pools of one editable mesh.
type Mesh struct {
	verts pool[vert]
	edges pool[edge]
	loops pool[loop]
	faces pool[face]

	attrs     AttrService
	exhausted func(Kind)
}

// New returns an empty mesh.
func New(opts ...Option) *Mesh {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Mesh{
		attrs:     o.attrs,
		exhausted: o.exhausted,
	}
	m.verts.init(o.chunkShift, o.limits[KindVert])
	m.edges.init(o.chunkShift, o.limits[KindEdge])
	m.loops.init(o.chunkShift, o.limits[KindLoop])
	m.faces.init(o.chunkShift, o.limits[KindFace])
	return m
}

// Attrs returns the attribute-block service of the mesh.
func (m *Mesh) Attrs() AttrService { return m.attrs }

func (m *Mesh) NumVerts() int { return m.verts.live }
func (m *Mesh) NumEdges() int { return m.edges.live }
func (m *Mesh) NumLoops() int { return m.loops.live }
func (m *Mesh) NumFaces() int { return m.faces.live }

// Count returns the number of live elements of kind k.
func (m *Mesh) Count(k Kind) int {
	switch k {
	case KindVert:
		return m.verts.live
	case KindEdge:
		return m.edges.live
	case KindLoop:
		return m.loops.live
	case KindFace:
		return m.faces.live
	}
	panic("bmesh: bad element kind")
}

// Recycle releases the slots of killed elements for reuse. DeleteFlagged
// calls it when done. Call it directly only when no handle to a killed
// element is kept anywhere. Recycle returns the number of slots released.
func (m *Mesh) Recycle() int {
	n := m.verts.recycle() + m.edges.recycle() + m.loops.recycle() + m.faces.recycle()
	if n > 0 {
		Logger().Debug("bmesh: recycled element slots", "slots", n)
	}
	return n
}

func allocSlot[T any](m *Mesh, p *pool[T], k Kind) int32 {
	i, ok := p.alloc()
	if !ok {
		exhaust(m, p, k)
	}
	return i
}

// reserve checks that the pools can hand out the given number of new
// verts, edges, loops and faces. Operators call it before their first
// mutation so that running out of room leaves the mesh untouched.
func (m *Mesh) reserve(verts, edges, loops, faces int) {
	switch {
	case !m.verts.canAlloc(verts):
		exhaust(m, &m.verts, KindVert)
	case !m.edges.canAlloc(edges):
		exhaust(m, &m.edges, KindEdge)
	case !m.loops.canAlloc(loops):
		exhaust(m, &m.loops, KindLoop)
	case !m.faces.canAlloc(faces):
		exhaust(m, &m.faces, KindFace)
	}
}

func exhaust[T any](m *Mesh, p *pool[T], k Kind) {
	Logger().Warn("bmesh: element pool exhausted", "kind", k.String(), "limit", p.limit, "live", p.live)
	if m.exhausted != nil {
		m.exhausted(k)
	}
	panic(&ExhaustedError{Kind: k, Limit: p.limit})
}

func (m *Mesh) vert(i int32) *vert { return m.verts.get(i) }
func (m *Mesh) edge(i int32) *edge { return m.edges.get(i) }
func (m *Mesh) loop(i int32) *loop { return m.loops.get(i) }
func (m *Mesh) face(i int32) *face { return m.faces.get(i) }

// Slot index to handle conversions. Index -1 maps to the zero handle.

func (m *Mesh) vh(i int32) Vert {
	if i < 0 {
		return Vert{}
	}
	return Vert{idx: i, gen: m.verts.at(i).gen}
}

func (m *Mesh) eh(i int32) Edge {
	if i < 0 {
		return Edge{}
	}
	return Edge{idx: i, gen: m.edges.at(i).gen}
}

func (m *Mesh) lh(i int32) Loop {
	if i < 0 {
		return Loop{}
	}
	return Loop{idx: i, gen: m.loops.at(i).gen}
}

func (m *Mesh) fh(i int32) Face {
	if i < 0 {
		return Face{}
	}
	return Face{idx: i, gen: m.faces.at(i).gen}
}

// Handle to slot index conversions. A nil or stale handle is a caller bug.

func (m *Mesh) vidx(v Vert) int32 {
	if !m.verts.valid(v.idx, v.gen) {
		panic("bmesh: nil or stale Vert handle")
	}
	return v.idx
}

func (m *Mesh) eidx(e Edge) int32 {
	if !m.edges.valid(e.idx, e.gen) {
		panic("bmesh: nil or stale Edge handle")
	}
	return e.idx
}

func (m *Mesh) lidx(l Loop) int32 {
	if !m.loops.valid(l.idx, l.gen) {
		panic("bmesh: nil or stale Loop handle")
	}
	return l.idx
}

func (m *Mesh) fidx(f Face) int32 {
	if !m.faces.valid(f.idx, f.gen) {
		panic("bmesh: nil or stale Face handle")
	}
	return f.idx
}

// Contains reports whether e refers to a live element of the mesh.
func (m *Mesh) Contains(e Elem) bool {
	h := e.ref()
	switch e.Kind() {
	case KindVert:
		return m.verts.valid(h.idx, h.gen)
	case KindEdge:
		return m.edges.valid(h.idx, h.gen)
	case KindLoop:
		return m.loops.valid(h.idx, h.gen)
	case KindFace:
		return m.faces.valid(h.idx, h.gen)
	}
	return false
}

func (m *Mesh) head(e Elem) *elemHead {
	switch h := e.(type) {
	case Vert:
		return &m.vert(m.vidx(h)).head
	case Edge:
		return &m.edge(m.eidx(h)).head
	case Loop:
		return &m.loop(m.lidx(h)).head
	case Face:
		return &m.face(m.fidx(h)).head
	}
	panic("bmesh: unknown element type")
}

// Index returns the application index of e. The mesh never interprets it.
func (m *Mesh) Index(e Elem) int { return m.head(e).index }

// SetIndex stores an application defined integer on e.
func (m *Mesh) SetIndex(e Elem, i int) { m.head(e).index = i }

// Record returns the attribute-block record of e.
func (m *Mesh) Record(e Elem) Record { return m.head(e).rec }

// Vertex accessors.

func (m *Mesh) VertCo(v Vert) r3.Vec            { return m.vert(m.vidx(v)).co }
func (m *Mesh) SetVertCo(v Vert, co r3.Vec)     { m.vert(m.vidx(v)).co = co }
func (m *Mesh) VertWeight(v Vert) float64       { return m.vert(m.vidx(v)).weight }
func (m *Mesh) SetVertWeight(v Vert, w float64) { m.vert(m.vidx(v)).weight = w }

// VertEdge returns the disk cycle anchor of v, or the zero Edge if v is loose.
func (m *Mesh) VertEdge(v Vert) Edge { return m.eh(m.vert(m.vidx(v)).e) }

// Valence returns the number of edges using v.
func (m *Mesh) Valence(v Vert) int { return m.diskCount(m.vidx(v)) }

// Edge accessors.

// EdgeVerts returns the endpoints of e in creation order.
func (m *Mesh) EdgeVerts(e Edge) (v1, v2 Vert) {
	ed := m.edge(m.eidx(e))
	return m.vh(ed.v1), m.vh(ed.v2)
}

// EdgeOther returns the endpoint of e that is not v.
func (m *Mesh) EdgeOther(e Edge, v Vert) Vert {
	return m.vh(m.edge(m.eidx(e)).other(m.vidx(v)))
}

// EdgeHasVert reports whether v is an endpoint of e.
func (m *Mesh) EdgeHasVert(e Edge, v Vert) bool {
	return m.edge(m.eidx(e)).hasVert(m.vidx(v))
}

// EdgeLoop returns the radial cycle anchor of e, or the zero Loop if no face uses e.
func (m *Mesh) EdgeLoop(e Edge) Loop { return m.lh(m.edge(m.eidx(e)).l) }

// RadialCount returns the number of loops using e: 0 for a wire edge,
// 1 for a boundary edge, 2 for a manifold edge and more otherwise.
func (m *Mesh) RadialCount(e Edge) int { return m.radialCount(m.eidx(e)) }

func (m *Mesh) IsWire(e Edge) bool     { return m.edge(m.eidx(e)).l < 0 }
func (m *Mesh) IsBoundary(e Edge) bool { return m.RadialCount(e) == 1 }
func (m *Mesh) IsManifold(e Edge) bool { return m.RadialCount(e) == 2 }

func (m *Mesh) EdgeCrease(e Edge) float64            { return m.edge(m.eidx(e)).crease }
func (m *Mesh) SetEdgeCrease(e Edge, c float64)      { m.edge(m.eidx(e)).crease = c }
func (m *Mesh) EdgeBevelWeight(e Edge) float64       { return m.edge(m.eidx(e)).bweight }
func (m *Mesh) SetEdgeBevelWeight(e Edge, w float64) { m.edge(m.eidx(e)).bweight = w }

// Loop accessors.

func (m *Mesh) LoopVert(l Loop) Vert { return m.vh(m.loop(m.lidx(l)).v) }
func (m *Mesh) LoopEdge(l Loop) Edge { return m.eh(m.loop(m.lidx(l)).e) }
func (m *Mesh) LoopFace(l Loop) Face { return m.fh(m.loop(m.lidx(l)).f) }

// LoopNext returns the next corner of the face in winding order.
func (m *Mesh) LoopNext(l Loop) Loop { return m.lh(m.loop(m.lidx(l)).next) }

// LoopPrev returns the previous corner of the face in winding order.
func (m *Mesh) LoopPrev(l Loop) Loop { return m.lh(m.loop(m.lidx(l)).prev) }

// LoopRadialNext returns the next loop using the same edge. For a boundary
// edge it returns l itself.
func (m *Mesh) LoopRadialNext(l Loop) Loop { return m.lh(m.loop(m.lidx(l)).rnext) }

// LoopRadialPrev is the inverse of LoopRadialNext.
func (m *Mesh) LoopRadialPrev(l Loop) Loop { return m.lh(m.loop(m.lidx(l)).rprev) }

// Face accessors.

// FaceLoop returns the first corner of f.
func (m *Mesh) FaceLoop(f Face) Loop { return m.lh(m.face(m.fidx(f)).l) }

// FaceLen returns the number of corners of f.
func (m *Mesh) FaceLen(f Face) int { return int(m.face(m.fidx(f)).len) }

func (m *Mesh) FaceMat(f Face) int         { return m.face(m.fidx(f)).mat }
func (m *Mesh) SetFaceMat(f Face, mat int) { m.face(m.fidx(f)).mat = mat }

// FaceLoopAt returns the corner of f at vertex v or the zero Loop when
// v is not on the boundary of f.
func (m *Mesh) FaceLoopAt(f Face, v Vert) Loop {
	return m.lh(m.faceLoopAt(m.fidx(f), m.vidx(v)))
}

func (m *Mesh) faceLoopAt(fi, vi int32) int32 {
	fc := m.face(fi)
	li := fc.l
	for n := fc.len; n > 0; n-- {
		l := m.loop(li)
		if l.v == vi {
			return li
		}
		li = l.next
	}
	return -1
}
