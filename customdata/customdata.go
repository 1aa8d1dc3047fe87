// Package customdata provides an attribute-block service for bmesh: named
// float64 layers stored per element kind, one value per layer and record.
package customdata

import (
	"github.com/soypat/bmesh"
)

// Store keeps per-element attribute layers. The zero value holds no layers
// and is ready to use.
type Store struct {
	kinds [bmesh.NumKinds]kindData
}

type kindData struct {
	names  []string
	layers [][]float64
	n      int // records ever issued
	live   int
	free   []bmesh.Record
}

var (
	_ bmesh.AttrService  = (*Store)(nil)
	_ bmesh.Interpolator = (*Store)(nil)
)

// New returns an empty Store.
func New() *Store { return &Store{} }

// AddLayer adds a layer called name to kind k and returns its index.
// Existing records read zero from the new layer. If the layer already
// exists its index is returned.
func (s *Store) AddLayer(k bmesh.Kind, name string) int {
	kd := &s.kinds[k]
	if i := kd.layer(name); i >= 0 {
		return i
	}
	kd.names = append(kd.names, name)
	kd.layers = append(kd.layers, make([]float64, kd.n))
	return len(kd.layers) - 1
}

// Layer returns the index of the layer called name, or -1.
func (s *Store) Layer(k bmesh.Kind, name string) int { return s.kinds[k].layer(name) }

// Layers returns the layer names of kind k in index order.
func (s *Store) Layers(k bmesh.Kind) []string {
	return append([]string(nil), s.kinds[k].names...)
}

func (kd *kindData) layer(name string) int {
	for i, n := range kd.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (s *Store) Get(k bmesh.Kind, layer int, r bmesh.Record) float64 {
	return s.kinds[k].layers[layer][r]
}

func (s *Store) Set(k bmesh.Kind, layer int, r bmesh.Record, v float64) {
	s.kinds[k].layers[layer][r] = v
}

// Live returns the number of records of kind k currently allocated.
func (s *Store) Live(k bmesh.Kind) int { return s.kinds[k].live }

// AllocRecord returns a record with every layer set to zero.
func (s *Store) AllocRecord(k bmesh.Kind) bmesh.Record {
	kd := &s.kinds[k]
	kd.live++
	if n := len(kd.free); n > 0 {
		r := kd.free[n-1]
		kd.free = kd.free[:n-1]
		for _, l := range kd.layers {
			l[r] = 0
		}
		return r
	}
	r := bmesh.Record(kd.n)
	kd.n++
	for i := range kd.layers {
		kd.layers[i] = append(kd.layers[i], 0)
	}
	return r
}

// CopyRecord copies srcRec onto dstRec. When src is another Store layers
// are matched by name and layers missing from src are left untouched.
// Records issued by other services are ignored.
func (s *Store) CopyRecord(k bmesh.Kind, src bmesh.AttrService, srcRec, dstRec bmesh.Record) {
	from, ok := src.(*Store)
	if !ok {
		return
	}
	dst := &s.kinds[k]
	if from == s {
		for _, l := range dst.layers {
			l[dstRec] = l[srcRec]
		}
		return
	}
	sk := &from.kinds[k]
	for i, name := range dst.names {
		if j := sk.layer(name); j >= 0 {
			dst.layers[i][dstRec] = sk.layers[j][srcRec]
		}
	}
}

func (s *Store) FreeRecord(k bmesh.Kind, r bmesh.Record) {
	kd := &s.kinds[k]
	kd.live--
	kd.free = append(kd.free, r)
}

// InterpRecord sets every layer of dst to the weighted sum of srcs.
func (s *Store) InterpRecord(k bmesh.Kind, dst bmesh.Record, srcs []bmesh.Record, weights []float64) {
	if len(srcs) != len(weights) {
		panic("customdata: length mismatch between sources and weights")
	}
	for _, l := range s.kinds[k].layers {
		var sum float64
		for i, r := range srcs {
			sum += weights[i] * l[r]
		}
		l[dst] = sum
	}
}
