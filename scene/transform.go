package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the local position, rotation and scale of a node relative to its parent.
// Rotation holds Euler angles in radians, composed as Rx * Ry * Rz.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform creates an identity Transform.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the column-major matrix Translate * Rotate * Scale.
// A zero scale component produces a singular matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.rotation()).Mul4(scale)
}

func (t Transform) rotation() mgl32.Mat4 {
	r := mgl32.Ident4()
	if x := t.Rotation.X(); x != 0 {
		r = r.Mul4(mgl32.HomogRotate3DX(x))
	}
	if y := t.Rotation.Y(); y != 0 {
		r = r.Mul4(mgl32.HomogRotate3DY(y))
	}
	if z := t.Rotation.Z(); z != 0 {
		r = r.Mul4(mgl32.HomogRotate3DZ(z))
	}
	return r
}

// Move offsets the position by delta.
func (t *Transform) Move(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

// SetScale replaces the scale.
func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}
