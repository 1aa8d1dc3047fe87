package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// ErrNormalMismatch is returned by ReadSTL alongside the triangles read when
// stored normals disagree with the vertex winding or a triangle has zero
// area. Many exporters write sloppy normals so the triangles are usually fine.
var ErrNormalMismatch = errors.New("STL triangle normal differs from the normal computed from its vertices")

// CreateSTL writes every triangle produced by r to a binary STL file at path.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = writeSTLFile(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeSTLFile(file *os.File, r Renderer) error {
	// The triangle count is only known at the end.
	if _, err := file.Seek(stlHeaderSize, io.SeekStart); err != nil {
		return err
	}
	n, err := io.CopyBuffer(file, &stlReader{r: r}, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return fmt.Errorf("writing STL triangles: %w", err)
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header := stlHeader{Count: uint32(n / stlTriangleSize)}
	return binary.Write(file, binary.LittleEndian, &header)
}

// WriteSTL writes model to w in binary STL format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for i := range model {
		stlFromTriangle3(model[i]).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL stream. If the only problem found is normals
// that disagree with the vertices the triangles are returned together with
// an error wrapping ErrNormalMismatch.
func ReadSTL(r io.Reader) ([]Triangle3, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf        [stlTriangleSize]byte
		d          stlTriangle
		mismatches int
	)
	output := make([]Triangle3, 0, min(header.Count, 1<<20))
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		d.get(buf[:])
		err := d.validate()
		switch {
		case errors.Is(err, ErrNormalMismatch):
			mismatches++
		case err != nil:
			return nil, fmt.Errorf("STL triangle %d: %w", i, err)
		}
		output = append(output, d.toTriangle3())
	}
	if mismatches > 0 {
		return output, fmt.Errorf("%d of %d triangles: %w", mismatches, header.Count, ErrNormalMismatch)
	}
	return output, nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

const trianglesInBuffer = 1 << 10

// stlReader streams the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // triangles written to b
		nt  int
	)
	for it < ntMax && err == nil {
		nt, err = w.r.ReadTriangles(w.buf[:ntMax-it])
		if nt > ntMax-it {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		for i := range w.buf[:nt] {
			stlFromTriangle3(w.buf[i]).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func stlFromTriangle3(t Triangle3) stlTriangle {
	return stlTriangle{
		Normal:  f32From(t.Normal()),
		Vertex1: f32From(t.V[0]),
		Vertex2: f32From(t.V[1]),
		Vertex3: f32From(t.V[2]),
	}
}

func f32From(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) || bad3F32(t.Normal) {
		// Zero area slivers have no normal to check against.
		return ErrNormalMismatch
	}
	calc := t.normalFromVertices()
	neg := [3]float32{-calc[0], -calc[1], -calc[2]}
	if !equalWithin3F32(calc, t.Normal, normTol) && !equalWithin3F32(neg, t.Normal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	// Scaled up to keep tiny triangles clear of underflow.
	v1 := r3.Scale(10, r3From3F32(t.Vertex1))
	v2 := r3.Scale(10, r3From3F32(t.Vertex2))
	v3 := r3.Scale(10, r3From3F32(t.Vertex3))
	return f32From(r3.Unit(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1))))
}

func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (t stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{V: [3]r3.Vec{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}}
}
