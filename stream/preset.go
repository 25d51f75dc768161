package stream

import (
	"time"

	"github.com/matt-g-everett/scenetx/scene"
)

// DefaultScene describes the demo scene used when the config has none: a textured
// square, a lit cube and a fish mesh, plus a moon orbiting a pivot.
func DefaultScene() NodeConfig {
	scaling := []float32{5, 5, 5}
	return NodeConfig{
		Name: "root",
		Children: []NodeConfig{
			{
				Name:     "square",
				Position: []float32{5, -5, -10},
				Scale:    scaling,
				Payload:  &scene.Payload{Geometry: "square", Material: "default", Texture: "NonoreveLogo.png", Shader: "Tex"},
			},
			{
				Name:     "box",
				Position: []float32{-5, 5, -10},
				Scale:    scaling,
				Payload:  &scene.Payload{Geometry: "cube", Material: "default", Texture: "grass.png", Shader: "lightTex"},
				Animations: []AnimationConfig{{
					Name:    "spin",
					Actions: []ActionConfig{{Kind: "rotate", Vector: []float32{0, 1, 0}, Rate: 45}},
				}},
			},
			{
				Name:     "fish",
				Position: []float32{-2, 5, -10},
				Scale:    scaling,
				Payload:  &scene.Payload{Geometry: "fish.obj", Material: "default", Texture: "grass.png", Shader: "lightTex"},
				Animations: []AnimationConfig{{
					Name: "swim",
					Actions: []ActionConfig{{
						Kind: "translate", Vector: []float32{1, 0, 0}, Rate: 1,
						Duration: 4 * time.Second, Ease: "in-out-sine",
					}},
				}},
			},
			{
				Name:     "pivot",
				Position: []float32{0, 0, -10},
				Animations: []AnimationConfig{{
					Name:    "orbit",
					Actions: []ActionConfig{{Kind: "rotate", Vector: []float32{0, 1, 0}, Rate: 90, Duration: 4 * time.Second, Loop: true}},
				}},
				Children: []NodeConfig{{
					Name:     "moon",
					Position: []float32{3, 0, 0},
					Payload:  &scene.Payload{Geometry: "cube", Material: "default", Texture: "grass.png", Shader: "lightTex"},
				}},
			},
		},
	}
}
