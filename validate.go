package bmesh

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by every error returned from Validate.
var ErrCorrupt = errors.New("bmesh: corrupt mesh")

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}

// Validate walks every cycle of the mesh and reports the first broken
// invariant found. It is meant for tests and debugging; it runs in time
// linear in the size of the mesh.
func (m *Mesh) Validate() error {
	diskTotal := 0
	for vi := m.verts.first; vi >= 0; vi = m.verts.nextLive(vi) {
		start := m.vert(vi).e
		if start < 0 {
			continue
		}
		if !m.edges.has(start) {
			return corrupt("vert %d: anchor edge %d is dead", vi, start)
		}
		for ei, n := start, 0; ; n++ {
			if n > m.edges.live {
				return corrupt("vert %d: disk cycle does not close", vi)
			}
			e := m.edge(ei)
			if !e.hasVert(vi) {
				return corrupt("vert %d: disk cycle holds edge %d not using it", vi, ei)
			}
			next := e.diskLink(vi).next
			if !m.edges.has(next) || !m.edge(next).hasVert(vi) {
				return corrupt("vert %d: edge %d disk next %d is invalid", vi, ei, next)
			}
			if m.edge(next).diskLink(vi).prev != ei {
				return corrupt("vert %d: disk links of edges %d and %d disagree", vi, ei, next)
			}
			diskTotal++
			ei = next
			if ei == start {
				break
			}
		}
	}
	if diskTotal != 2*m.edges.live {
		return corrupt("disk cycles hold %d entries for %d edges", diskTotal, m.edges.live)
	}

	radialTotal := 0
	for ei := m.edges.first; ei >= 0; ei = m.edges.nextLive(ei) {
		e := m.edge(ei)
		if e.v1 == e.v2 || !m.verts.has(e.v1) || !m.verts.has(e.v2) {
			return corrupt("edge %d: bad endpoints %d, %d", ei, e.v1, e.v2)
		}
		start := e.l
		if start < 0 {
			continue
		}
		for li, n := start, 0; ; n++ {
			if n > m.loops.live || !m.loops.has(li) {
				return corrupt("edge %d: radial cycle is broken", ei)
			}
			l := m.loop(li)
			if l.e != ei {
				return corrupt("edge %d: radial cycle holds loop %d of edge %d", ei, li, l.e)
			}
			if !e.hasVert(l.v) || !m.loops.has(l.next) || e.other(l.v) != m.loop(l.next).v {
				return corrupt("edge %d: loop %d does not run along it", ei, li)
			}
			if !m.loops.has(l.rnext) || m.loop(l.rnext).rprev != li {
				return corrupt("edge %d: radial links of loop %d disagree", ei, li)
			}
			radialTotal++
			li = l.rnext
			if li == start {
				break
			}
		}
	}
	if radialTotal != m.loops.live {
		return corrupt("radial cycles hold %d of %d loops", radialTotal, m.loops.live)
	}

	faceTotal := 0
	for fi := m.faces.first; fi >= 0; fi = m.faces.nextLive(fi) {
		fc := m.face(fi)
		if fc.len < 3 {
			return corrupt("face %d: %d corners", fi, fc.len)
		}
		li := fc.l
		for n := fc.len; n > 0; n-- {
			if !m.loops.has(li) {
				return corrupt("face %d: dead loop %d in cycle", fi, li)
			}
			l := m.loop(li)
			if l.f != fi {
				return corrupt("face %d: cycle holds loop %d of face %d", fi, li, l.f)
			}
			if !m.loops.has(l.next) || m.loop(l.next).prev != li {
				return corrupt("face %d: loop links at %d disagree", fi, li)
			}
			li = l.next
		}
		if li != fc.l {
			return corrupt("face %d: cycle length differs from stored %d", fi, fc.len)
		}
		faceTotal += int(fc.len)
	}
	if faceTotal != m.loops.live {
		return corrupt("faces hold %d of %d loops", faceTotal, m.loops.live)
	}
	return nil
}
