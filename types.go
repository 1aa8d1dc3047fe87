package bmesh

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind identifies one of the four element types of a mesh.
type Kind uint8

const (
	KindVert Kind = iota
	KindEdge
	KindLoop
	KindFace
	// NumKinds is the number of element kinds. Useful for
	// indexing per-kind tables.
	NumKinds = 4
)

func (k Kind) String() string {
	switch k {
	case KindVert:
		return "vert"
	case KindEdge:
		return "edge"
	case KindLoop:
		return "loop"
	case KindFace:
		return "face"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// handle references a pool slot. gen is never zero for a live slot
// so the zero handle means "no element".
type handle struct {
	idx int32
	gen uint32
}

// Elem is implemented by the four element handles Vert, Edge, Loop and Face.
type Elem interface {
	Kind() Kind
	// IsNil reports whether the handle is the zero handle.
	IsNil() bool
	ref() handle
}

// Vert is a handle to a mesh vertex. The zero value refers to no vertex.
type Vert handle

// Edge is a handle to a mesh edge. The zero value refers to no edge.
type Edge handle

// Loop is a handle to a face corner: a directed use of one vertex and
// one edge by one face. The zero value refers to no loop.
type Loop handle

// Face is a handle to a mesh face. The zero value refers to no face.
type Face handle

func (v Vert) Kind() Kind  { return KindVert }
func (v Vert) IsNil() bool { return v.gen == 0 }
func (v Vert) ref() handle { return handle(v) }
func (e Edge) Kind() Kind  { return KindEdge }
func (e Edge) IsNil() bool { return e.gen == 0 }
func (e Edge) ref() handle { return handle(e) }
func (l Loop) Kind() Kind  { return KindLoop }
func (l Loop) IsNil() bool { return l.gen == 0 }
func (l Loop) ref() handle { return handle(l) }
func (f Face) Kind() Kind  { return KindFace }
func (f Face) IsNil() bool { return f.gen == 0 }
func (f Face) ref() handle { return handle(f) }

var (
	_ Elem = Vert{}
	_ Elem = Edge{}
	_ Elem = Loop{}
	_ Elem = Face{}
)

// elemHead is the header shared by all element kinds.
type elemHead struct {
	flag  Flag
	rec   Record
	index int
}

type vert struct {
	head   elemHead
	co     r3.Vec
	weight float64
	// e is the disk cycle anchor, -1 when the vertex has no edges.
	e int32
}

// diskLink threads an edge into the disk cycle of one of its endpoints.
type diskLink struct {
	prev, next int32
}

type edge struct {
	head   elemHead
	v1, v2 int32
	// d1 and d2 are the disk links at v1 and v2 respectively.
	d1, d2 diskLink
	// l is the radial cycle anchor, -1 when no face uses the edge.
	l       int32
	crease  float64
	bweight float64
}

// diskLink returns the disk link of the edge at endpoint v.
func (e *edge) diskLink(v int32) *diskLink {
	if e.v1 == v {
		return &e.d1
	} else if e.v2 == v {
		return &e.d2
	}
	panic("bmesh: vertex is not an endpoint of edge")
}

// other returns the endpoint opposite to v.
func (e *edge) other(v int32) int32 {
	if e.v1 == v {
		return e.v2
	} else if e.v2 == v {
		return e.v1
	}
	panic("bmesh: vertex is not an endpoint of edge")
}

func (e *edge) hasVert(v int32) bool { return e.v1 == v || e.v2 == v }

type loop struct {
	head elemHead
	v    int32
	e    int32
	f    int32
	// face boundary cycle.
	next, prev int32
	// radial cycle around e.
	rnext, rprev int32
}

type face struct {
	head elemHead
	// l is the first loop of the boundary cycle.
	l   int32
	len int32
	mat int
}
