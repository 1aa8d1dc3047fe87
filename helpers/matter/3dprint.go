// Package matter compensates meshes for how materials deform while parts
// are manufactured.
package matter

import (
	"github.com/soypat/bmesh"
	"github.com/soypat/bmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Scale enlarges m about the center of its bounds so the printed part
// shrinks back to the modeled size as it cools.
func (mat ViscousMaterial) Scale(m *bmesh.Mesh) {
	b := d3.Box(m.Bounds())
	if b.IsEmpty() {
		return
	}
	scale := 1 / (1 - mat.shrink)
	c := b.Center()
	m.Transform(func(p r3.Vec) r3.Vec {
		return r3.Add(c, r3.Scale(scale, r3.Sub(p, c)))
	})
}

// InternalDimScale returns the modeled size of an internal feature such as
// a hole so that it comes out real sized.
func (mat ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(mat.shrink+1) + mat.pullShrink
}
