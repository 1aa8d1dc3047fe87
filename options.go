package bmesh

import (
	"fmt"
	"math/bits"
)

// Option configures a Mesh during creation.
//
// Example:
//
//	store := customdata.New()
//	m := bmesh.New(bmesh.WithAttrs(store), bmesh.WithLimit(bmesh.KindFace, 1<<20))
type Option func(*options)

type options struct {
	attrs      AttrService
	limits     [NumKinds]int
	exhausted  func(Kind)
	chunkShift uint
}

func defaultOptions() options {
	return options{
		attrs:      noAttrs{},
		chunkShift: defaultChunkShift,
	}
}

// WithAttrs sets the attribute-block service of the mesh. A nil service
// leaves the default, which stores nothing.
func WithAttrs(s AttrService) Option {
	return func(o *options) {
		if s != nil {
			o.attrs = s
		}
	}
}

// WithLimit caps the number of live elements of kind k. Creating an element
// past the limit is treated as resource exhaustion. n <= 0 removes the cap.
func WithLimit(k Kind, n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.limits[k] = n
	}
}

// WithExhaustedFunc registers fn to be called when an element pool cannot
// satisfy an allocation. The mesh panics with *ExhaustedError after fn
// returns; fn may itself panic or exit instead.
func WithExhaustedFunc(fn func(Kind)) Option {
	return func(o *options) {
		o.exhausted = fn
	}
}

// WithChunkSize sets how many elements each pool chunk holds. n is rounded
// up to a power of two and clamped to [16, 1<<16].
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n < 16 {
			n = 16
		} else if n > 1<<16 {
			n = 1 << 16
		}
		o.chunkShift = uint(bits.Len(uint(n - 1)))
	}
}

// ExhaustedError is the panic value raised when an element pool is full.
type ExhaustedError struct {
	Kind  Kind
	Limit int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("bmesh: %s pool exhausted (limit %d)", e.Kind, e.Limit)
}
