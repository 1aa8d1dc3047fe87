package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/bmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes the vertices and faces of m in Wavefront OBJ format.
// Faces keep their corner count. The application index of every vertex
// is overwritten with its 1-based OBJ index.
func WriteOBJ(w io.Writer, m *bmesh.Mesh) error {
	bw := bufio.NewWriter(w)
	idx := 0
	for v := range m.Verts() {
		idx++
		m.SetIndex(v, idx)
		co := m.VertCo(v)
		fmt.Fprintf(bw, "v %g %g %g\n", co.X, co.Y, co.Z)
	}
	var line []byte
	for f := range m.Faces() {
		line = append(line[:0], 'f')
		for v := range m.FaceVerts(f) {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(m.Index(v)), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadOBJ builds a mesh from the vertex and face statements of a Wavefront
// OBJ stream. Texture and normal references are ignored, as are all other
// statements. Faces already present in the mesh are not duplicated.
func ReadOBJ(r io.Reader, opts ...bmesh.Option) (*bmesh.Mesh, error) {
	m := bmesh.New(opts...)
	var verts, face []bmesh.Vert
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", lineno)
			}
			var c [3]float64
			for i := range c {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineno, err)
				}
				c[i] = f
			}
			verts = append(verts, m.MakeVert(r3.Vec{X: c[0], Y: c[1], Z: c[2]}))
		case "f":
			face = face[:0]
			for _, tok := range fields[1:] {
				ref, _, _ := strings.Cut(tok, "/")
				i, err := strconv.Atoi(ref)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineno, err)
				}
				if i < 0 {
					i += len(verts) + 1
				}
				if i < 1 || i > len(verts) {
					return nil, fmt.Errorf("obj line %d: vertex index %s out of range", lineno, ref)
				}
				face = append(face, verts[i-1])
			}
			if err := checkPolygon(face); err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineno, err)
			}
			m.MakePolygon(face, bmesh.Face{}, true)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func checkPolygon(verts []bmesh.Vert) error {
	if len(verts) < 3 {
		return errors.New("face needs at least 3 vertices")
	}
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if verts[i] == verts[j] {
				return errors.New("face repeats a vertex")
			}
		}
	}
	return nil
}
