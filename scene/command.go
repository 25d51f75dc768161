package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Handle names a resource owned by the external resource system.
type Handle string

// Payload is the drawable part of a node. Handles are shared, never copied resources.
type Payload struct {
	Geometry Handle `json:"geometry"`
	Material Handle `json:"material"`
	Texture  Handle `json:"texture"`
	Shader   Handle `json:"shader"`
}

// Light is passed through a traversal unchanged.
type Light struct {
	Position mgl32.Vec4
	Color    colorful.Color
}

// NewLight creates an instance of a Light.
func NewLight(position mgl32.Vec4, color colorful.Color) Light {
	return Light{Position: position, Color: color}
}

// RenderCommand is everything a renderer needs to draw one node.
type RenderCommand struct {
	Node       NodeID
	Name       string
	World      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Payload
	Light Light
}

// MVP returns Projection * View * World.
func (c *RenderCommand) MVP() mgl32.Mat4 {
	return c.Projection.Mul4(c.View).Mul4(c.World)
}

// A Renderer consumes the render commands emitted by a traversal.
type Renderer interface {
	Render(cmd RenderCommand)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(cmd RenderCommand)

// Render calls f(cmd).
func (f RendererFunc) Render(cmd RenderCommand) {
	f(cmd)
}
