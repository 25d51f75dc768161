package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewTransformIsIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), NewTransform().Matrix())
}

func TestTransformOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 0, 0}
	tr.Rotation = mgl32.Vec3{0, 0, mgl32.DegToRad(90)}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	// Scaled to (2,0,0), turned onto +Y, then moved.
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assertVec4(t, mgl32.Vec4{1, 2, 0, 1}, p)

	want := mgl32.Translate3D(1, 0, 0).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assertMat(t, want, tr.Matrix())
}

func TestTransformRotationComposition(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl32.Vec3{0.3, -1.1, 2.0}
	want := mgl32.HomogRotate3DX(0.3).
		Mul4(mgl32.HomogRotate3DY(-1.1)).
		Mul4(mgl32.HomogRotate3DZ(2.0))
	assertMat(t, want, tr.Matrix())
}

func TestTransformZeroScale(t *testing.T) {
	tr := NewTransform()
	tr.SetScale(mgl32.Vec3{0, 1, 1})
	var m mgl32.Mat4
	assert.NotPanics(t, func() { m = tr.Matrix() })
	assert.Equal(t, float32(0), m.Det())
}

func TestTransformMove(t *testing.T) {
	tr := NewTransform()
	tr.Move(mgl32.Vec3{5, -5, -10})
	tr.Move(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{6, -4, -9}, tr.Position)
	assert.Equal(t, translation(6, -4, -9), tr.Matrix())
}
