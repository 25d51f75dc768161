package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var maxPitch = mgl32.DegToRad(89)

// InputEvent is a normalised movement delta delivered by an input source.
// Move is along the camera's right, up and forward axes; Look is yaw and pitch.
type InputEvent struct {
	Move mgl32.Vec3
	Look mgl32.Vec2
}

// CameraOptions configures a Camera. Angles are in radians.
type CameraOptions struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Fov         float32
	Aspect      float32
	Near        float32
	Far         float32
	Speed       float32
	Sensitivity float32
}

// Camera keeps the view and projection matrices handed to a traversal.
type Camera struct {
	position    mgl32.Vec3
	yaw         float32
	pitch       float32
	speed       float32
	sensitivity float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// NewCamera creates an instance of a Camera. The projection is fixed from here on.
func NewCamera(opts CameraOptions) *Camera {
	c := new(Camera)
	c.position = opts.Position
	c.yaw = opts.Yaw
	c.pitch = mgl32.Clamp(opts.Pitch, -maxPitch, maxPitch)
	c.speed = opts.Speed
	c.sensitivity = opts.Sensitivity
	c.projection = mgl32.Perspective(opts.Fov, opts.Aspect, opts.Near, opts.Far)
	c.updateView()
	return c
}

// Update applies accumulated input events in order.
func (c *Camera) Update(events []InputEvent) {
	if len(events) == 0 {
		return
	}
	for _, e := range events {
		c.yaw += e.Look.X() * c.sensitivity
		c.pitch = mgl32.Clamp(c.pitch+e.Look.Y()*c.sensitivity, -maxPitch, maxPitch)

		front := c.front()
		right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
		up := right.Cross(front)
		move := right.Mul(e.Move.X()).Add(up.Mul(e.Move.Y())).Add(front.Mul(e.Move.Z()))
		c.position = c.position.Add(move.Mul(c.speed))
	}
	c.updateView()
}

func (c *Camera) front() mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Cos(c.pitch) * math32.Sin(c.yaw),
		math32.Sin(c.pitch),
		-math32.Cos(c.pitch) * math32.Cos(c.yaw),
	}
}

func (c *Camera) updateView() {
	c.view = mgl32.LookAtV(c.position, c.position.Add(c.front()), mgl32.Vec3{0, 1, 0})
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }
