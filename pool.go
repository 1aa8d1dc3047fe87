package bmesh

import "math"

const defaultChunkShift = 9

type slot[T any] struct {
	data T
	// gen is odd while the slot is alive. It is bumped on every
	// allocation and every free so handles to dead slots go stale.
	gen uint32
	// live slots form a doubly linked list in allocation order.
	prev, next int32
}

func (s *slot[T]) alive() bool { return s.gen&1 == 1 }

// pool stores elements of one kind in fixed size chunks. Chunks are never
// reallocated so slot addresses are stable for the lifetime of the pool.
//
// Freed slots are not reused right away: they wait in pending until
// recycle is called, which the deletion sweep does once it is done.
type pool[T any] struct {
	chunks   [][]slot[T]
	shift    uint
	n        int32 // slots ever handed out
	live     int
	first    int32
	last     int32
	freeList []int32
	pending  []int32
	// limit caps live elements. Zero means no limit.
	limit int
}

func (p *pool[T]) init(shift uint, limit int) {
	*p = pool[T]{shift: shift, first: -1, last: -1, limit: limit}
}

func (p *pool[T]) at(i int32) *slot[T] {
	return &p.chunks[i>>p.shift][i&(1<<p.shift-1)]
}

func (p *pool[T]) get(i int32) *T { return &p.at(i).data }

// valid reports whether (i, gen) references a live slot.
func (p *pool[T]) valid(i int32, gen uint32) bool {
	if i < 0 || i >= p.n || gen == 0 {
		return false
	}
	s := p.at(i)
	return s.gen == gen && s.alive()
}

// has reports whether slot i exists and is alive.
func (p *pool[T]) has(i int32) bool {
	return i >= 0 && i < p.n && p.at(i).alive()
}

// alloc returns a zeroed live slot. ok is false when the pool limit
// has been reached or the index space is exhausted.
func (p *pool[T]) alloc() (i int32, ok bool) {
	if p.limit > 0 && p.live >= p.limit {
		return -1, false
	}
	if nf := len(p.freeList); nf > 0 {
		i = p.freeList[nf-1]
		p.freeList = p.freeList[:nf-1]
	} else {
		if p.n == math.MaxInt32 {
			return -1, false
		}
		if int(p.n>>p.shift) == len(p.chunks) {
			p.chunks = append(p.chunks, make([]slot[T], 1<<p.shift))
		}
		i = p.n
		p.n++
	}
	s := p.at(i)
	var zero T
	s.data = zero
	s.gen++
	s.prev = p.last
	s.next = -1
	if p.last >= 0 {
		p.at(p.last).next = i
	} else {
		p.first = i
	}
	p.last = i
	p.live++
	return i, true
}

// canAlloc reports whether n more slots can be handed out.
func (p *pool[T]) canAlloc(n int) bool {
	if n <= 0 {
		return true
	}
	if p.limit > 0 && p.live+n > p.limit {
		return false
	}
	fresh := n - len(p.freeList)
	return fresh <= 0 || int64(p.n)+int64(fresh) <= math.MaxInt32
}

// free unlinks slot i from the live list. The slot is parked until recycle.
func (p *pool[T]) free(i int32) {
	s := p.at(i)
	if !s.alive() {
		panic("bmesh: double free of pool slot")
	}
	if s.prev >= 0 {
		p.at(s.prev).next = s.next
	} else {
		p.first = s.next
	}
	if s.next >= 0 {
		p.at(s.next).prev = s.prev
	} else {
		p.last = s.prev
	}
	s.prev, s.next = -1, -1
	s.gen++
	p.pending = append(p.pending, i)
	p.live--
}

// recycle makes all parked slots available for reuse and returns how many were released.
func (p *pool[T]) recycle() int {
	n := len(p.pending)
	p.freeList = append(p.freeList, p.pending...)
	p.pending = p.pending[:0]
	return n
}

// nextLive returns the live slot following i in allocation order, or -1.
func (p *pool[T]) nextLive(i int32) int32 { return p.at(i).next }
