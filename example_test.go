package bmesh_test

import (
	"fmt"

	"github.com/soypat/bmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func Example() {
	m := bmesh.New()
	v := []bmesh.Vert{
		m.MakeVert(r3.Vec{X: 0, Y: 0}),
		m.MakeVert(r3.Vec{X: 1, Y: 0}),
		m.MakeVert(r3.Vec{X: 1, Y: 1}),
		m.MakeVert(r3.Vec{X: 0, Y: 1}),
	}
	f := m.MakePolygon(v, bmesh.Face{}, true)
	nf, _ := m.SplitFace(f, v[0], v[2])
	fmt.Println(m.NumFaces(), m.FaceLen(f), m.FaceLen(nf))

	m.FlagForDeletion(v[3])
	st := m.DeleteFlagged()
	fmt.Printf("%+v\n", st)
	fmt.Println(m.NumVerts(), m.NumEdges(), m.NumFaces(), m.Validate())
	// Output:
	// 2 3 3
	// {Faces:1 Edges:2 Verts:1}
	// 3 3 1 <nil>
}
