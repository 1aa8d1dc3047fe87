package bmesh

// Record identifies the attribute-block record of one element. Its meaning
// belongs entirely to the AttrService that issued it.
type Record uint32

// AttrService owns per-element custom data. The mesh allocates a record for
// every element it creates, copies records when attributes are copied and
// frees them when elements are killed. It never looks inside a record.
type AttrService interface {
	AllocRecord(k Kind) Record
	// CopyRecord copies the contents of srcRec, issued by src, onto dstRec,
	// issued by the receiver. src may be the receiver itself.
	CopyRecord(k Kind, src AttrService, srcRec, dstRec Record)
	FreeRecord(k Kind, r Record)
}

// Interpolator is implemented by attribute services able to blend records.
// dst may appear in srcs; implementations must read every source before
// writing dst.
type Interpolator interface {
	InterpRecord(k Kind, dst Record, srcs []Record, weights []float64)
}

// noAttrs is the attribute service of meshes created without WithAttrs.
type noAttrs struct{}

var _ AttrService = noAttrs{}

func (noAttrs) AllocRecord(Kind) Record                      { return 0 }
func (noAttrs) CopyRecord(Kind, AttrService, Record, Record) {}
func (noAttrs) FreeRecord(Kind, Record)                      {}

// interp blends srcs onto dst if the mesh attribute service supports it.
func (m *Mesh) interp(k Kind, dst Record, srcs []Record, weights []float64) {
	if ip, ok := m.attrs.(Interpolator); ok {
		ip.InterpRecord(k, dst, srcs, weights)
	}
}
