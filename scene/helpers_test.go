package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-5

func assertMat(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], epsilon, "want\n%v\nhave\n%v", want, got)
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], epsilon, "have %v", got)
}

func assertVec4(t *testing.T, want, got mgl32.Vec4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], epsilon, "have %v", got)
}

// recorder collects render commands in emission order.
type recorder struct {
	cmds []RenderCommand
}

func (r *recorder) Render(cmd RenderCommand) { r.cmds = append(r.cmds, cmd) }

func (r *recorder) byName(name string) (RenderCommand, bool) {
	for _, c := range r.cmds {
		if c.Name == name {
			return c, true
		}
	}
	return RenderCommand{}, false
}

func testCamera() *Camera {
	return NewCamera(CameraOptions{
		Fov:         mgl32.DegToRad(45),
		Aspect:      4.0 / 3.0,
		Near:        0.1,
		Far:         100,
		Speed:       1,
		Sensitivity: 1,
	})
}

func translation(x, y, z float32) mgl32.Mat4 { return mgl32.Translate3D(x, y, z) }
