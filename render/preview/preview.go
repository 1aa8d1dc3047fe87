// Package preview draws shaded pictures of meshes with the fauxgl software
// rasterizer. It is used to illustrate examples and to compare meshes
// visually in tests.
package preview

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/bmesh/internal/d3"
	"github.com/soypat/bmesh/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// View places the camera. The drawn mesh is first fit in a bi-unit cube
// centered at the origin so a single view serves meshes of any size.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the direction drawn as up.
	Up r3.Vec
	// Eye is the camera position.
	Eye       r3.Vec
	Near, Far float64
}

// IsoView looks at the origin from the positive octant.
var IsoView = View{
	Up:   r3.Vec{Z: 1},
	Eye:  d3.Elem(2.4),
	Near: 1,
	Far:  10,
}

const (
	supersample = 2  // drawn at this multiple of the output size, then downsampled.
	fovy        = 30 // vertical field of view in degrees
)

var (
	background  = fauxgl.HexColor("#FFF8E3")
	objectColor = fauxgl.HexColor("#468966")
	light       = fauxgl.V(-0.75, 1, 0.25).Normalize()
)

// Mesh collects the triangles of r into a fauxgl mesh with flat normals.
func Mesh(r render.Renderer) (*fauxgl.Mesh, error) {
	model, err := render.RenderAll(r)
	if err != nil {
		return nil, err
	}
	if len(model) == 0 {
		return nil, errors.New("no triangles to draw")
	}
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		ft := &fauxgl.Triangle{}
		ft.V1.Position = fvec(t.V[0])
		ft.V2.Position = fvec(t.V[1])
		ft.V3.Position = fvec(t.V[2])
		ft.FixNormals()
		tris[i] = ft
	}
	return fauxgl.NewTriangleMesh(tris), nil
}

// Draw renders the triangles of r as seen from view into a width by height
// picture.
func Draw(r render.Renderer, view View, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("non-positive picture size")
	}
	mesh, err := Mesh(r)
	if err != nil {
		return nil, err
	}
	mesh.BiUnitCube()
	eye := fvec(view.Eye)
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, fvec(view.LookAt), fvec(view.Up)).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = objectColor

	context := fauxgl.NewContext(width*supersample, height*supersample)
	context.ClearColorBufferWith(background)
	context.Shader = shader
	context.DrawMesh(mesh)
	return resize.Resize(uint(width), uint(height), context.Image(), resize.Bilinear), nil
}

func fvec(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }
