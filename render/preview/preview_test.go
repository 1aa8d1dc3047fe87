package preview_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/soypat/bmesh"
	"github.com/soypat/bmesh/helpers/weld"
	"github.com/soypat/bmesh/render"
	"github.com/soypat/bmesh/render/preview"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta is a normalized parameter describing how close the matching
// should be (imgDelta=0: perfect match, imgDelta=1: loose match).
const imgDelta = 0

const width, height = 320, 240

// cube builds the unit cube with outward facing quads.
func cube() *bmesh.Mesh {
	m := bmesh.New()
	var v [8]bmesh.Vert
	for i := range v {
		v[i] = m.MakeVert(r3.Vec{X: float64(i & 1), Y: float64(i >> 1 & 1), Z: float64(i >> 2 & 1)})
	}
	for _, q := range [6][4]int{{0, 2, 3, 1}, {4, 5, 7, 6}, {0, 1, 5, 4}, {2, 6, 7, 3}, {0, 4, 6, 2}, {1, 3, 7, 5}} {
		m.MakePolygon([]bmesh.Vert{v[q[0]], v[q[1]], v[q[2]], v[q[3]]}, bmesh.Face{}, false)
	}
	return m
}

// TestPreviewAfterWeld writes a mesh to STL, welds the triangles read back
// into a mesh and checks that both draw the same picture.
func TestPreviewAfterWeld(t *testing.T) {
	src := cube()
	want := meshToPNG(t, src)

	path := filepath.Join(t.TempDir(), "src.stl")
	if err := render.CreateSTL(path, render.NewMeshRenderer(src)); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	model, err := render.ReadSTL(fp)
	if err != nil {
		t.Fatal(err)
	}
	m, err := weld.FromTriangles(model, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumVerts() != 8 {
		t.Fatalf("welded mesh has %d vertices, want 8", m.NumVerts())
	}
	if !equalImages(t, meshToPNG(t, m), want) {
		t.Error("welded mesh draws differently")
	}
}

// TestPreviewSplitJoin splits every quad of a cube along a diagonal, joins
// the halves back and checks the result draws the same picture.
func TestPreviewSplitJoin(t *testing.T) {
	m := cube()
	type half struct {
		f, nf bmesh.Face
		diag  bmesh.Edge
	}
	var halves []half
	for _, f := range slices.Collect(m.Faces()) {
		l := m.FaceLoop(f)
		a, c := m.LoopVert(l), m.LoopVert(m.LoopNext(m.LoopNext(l)))
		nf, nl := m.SplitFace(f, a, c)
		if nf.IsNil() {
			t.Fatal("split refused")
		}
		halves = append(halves, half{f: f, nf: nf, diag: m.LoopEdge(nl)})
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.NumFaces() != 12 || m.NumEdges() != 18 {
		t.Fatalf("got %d faces and %d edges after splitting", m.NumFaces(), m.NumEdges())
	}
	for _, h := range halves {
		if m.JoinFaces(h.f, h.nf, h.diag) != h.f {
			t.Fatal("join refused")
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if !equalImages(t, meshToPNG(t, m), meshToPNG(t, cube())) {
		t.Error("cube draws differently after split and join")
	}
}

// TestPreviewFlip turns the cube inside out by reversing every face and
// checks that the picture changes, then flips back and expects the original.
func TestPreviewFlip(t *testing.T) {
	m := cube()
	want := meshToPNG(t, m)
	for f := range m.Faces() {
		m.FlipFace(f)
	}
	if equalImages(t, meshToPNG(t, m), want) {
		t.Error("flipped cube draws the same as the original")
	}
	for f := range m.Faces() {
		m.FlipFace(f)
	}
	if !equalImages(t, meshToPNG(t, m), want) {
		t.Error("flipping twice must restore the picture")
	}
}

func TestDrawErrors(t *testing.T) {
	if _, err := preview.Draw(render.NewMeshRenderer(bmesh.New()), preview.IsoView, width, height); err == nil {
		t.Error("expected error drawing an empty mesh")
	}
	if _, err := preview.Draw(render.NewMeshRenderer(cube()), preview.IsoView, 0, height); err == nil {
		t.Error("expected error drawing a zero width picture")
	}
}

func meshToPNG(t *testing.T, m *bmesh.Mesh) []byte {
	t.Helper()
	img, err := preview.Draw(render.NewMeshRenderer(m), preview.IsoView, width, height)
	if err != nil {
		t.Fatal(err)
	}
	if blank(img) {
		t.Fatal("mesh drew a blank image")
	}
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

// blank reports whether every pixel of img matches its top left corner.
func blank(img image.Image) bool {
	r0, g0, b0, a0 := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r != r0 || g != g0 || b != b0 || a != a0 {
				return false
			}
		}
	}
	return true
}

func equalImages(t *testing.T, png1, png2 []byte) bool {
	t.Helper()
	equal, err := cmpimg.EqualApprox("png", png1, png2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
