package stream

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScene(t *testing.T) {
	g, err := BuildScene(NodeConfig{
		Name: "root",
		Children: []NodeConfig{{
			Name:     "n",
			Position: []float32{5, 0, 0},
			Rotation: []float32{0, 90, 0},
			Scale:    []float32{2, 2, 2},
			Payload:  &scene.Payload{Geometry: "cube"},
			Animations: []AnimationConfig{{
				Name: "bob",
				Actions: []ActionConfig{
					{Kind: "translate", Vector: []float32{0, 1, 0}, Rate: 1, Duration: 2 * time.Second, Loop: true},
					{Kind: "rotate", Vector: []float32{0, 0, 1}, Rate: 90, Start: time.Second, Ease: "in-out-quad"},
				},
			}},
			Children: []NodeConfig{{Name: "pivot"}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	root := g.Root()
	assert.Equal(t, "root", root.Name)
	assert.Nil(t, root.Payload)
	require.Len(t, root.Children(), 1)

	n := root.Children()[0]
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, n.Transform.Position)
	assert.Equal(t, mgl32.DegToRad(90), n.Transform.Rotation.Y())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, n.Transform.Scale)
	require.NotNil(t, n.Payload)
	assert.Equal(t, scene.Handle("cube"), n.Payload.Geometry)

	require.Len(t, n.Animations(), 1)
	a := n.Animations()[0]
	assert.Equal(t, n.ID, a.Target)
	require.Len(t, a.Actions(), 2)
	assert.Equal(t, scene.Translate, a.Actions()[0].Kind)
	assert.True(t, a.Actions()[0].Loop)
	assert.Equal(t, scene.Rotate, a.Actions()[1].Kind)
	assert.Equal(t, mgl32.DegToRad(90), a.Actions()[1].Rate)
	assert.NotNil(t, a.Actions()[1].Ease)

	require.Len(t, n.Children(), 1)
	pivot := n.Children()[0]
	assert.Nil(t, pivot.Payload)
	assert.Equal(t, scene.NewTransform(), pivot.Transform)
}

func TestBuildSceneErrors(t *testing.T) {
	action := func(a ActionConfig) NodeConfig {
		return NodeConfig{Name: "root", Children: []NodeConfig{{
			Name:       "n",
			Animations: []AnimationConfig{{Actions: []ActionConfig{a}}},
		}}}
	}

	tests := []struct {
		name string
		node NodeConfig
		want string
	}{
		{"bad position", NodeConfig{Name: "root", Position: []float32{1, 2}}, "position"},
		{"bad scale", NodeConfig{Name: "root", Scale: []float32{1, 2, 3, 4}}, "scale"},
		{"empty payload", NodeConfig{Name: "root", Payload: &scene.Payload{Texture: "x.png"}}, "geometry"},
		{"unknown kind", action(ActionConfig{Kind: "scale", Vector: []float32{1, 0, 0}}), `unknown action kind "scale"`},
		{"zero vector", action(ActionConfig{Kind: "rotate", Vector: []float32{0, 0, 0}}), "non-zero"},
		{"loop without duration", action(ActionConfig{Kind: "rotate", Vector: []float32{0, 1, 0}, Loop: true}), "positive duration"},
		{"negative start", action(ActionConfig{Kind: "translate", Vector: []float32{0, 1, 0}, Start: -time.Second}), "negative start"},
		{"unknown ease", action(ActionConfig{Kind: "translate", Vector: []float32{0, 1, 0}, Ease: "wobble"}), `unknown easing "wobble"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildScene(tt.node)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBuildSceneErrorPath(t *testing.T) {
	_, err := BuildScene(NodeConfig{Name: "root", Children: []NodeConfig{{
		Name:     "a",
		Children: []NodeConfig{{Name: "b", Position: []float32{1}}},
	}}})
	assert.ErrorContains(t, err, "node root/a/b")
}

func TestBuildSceneZeroScale(t *testing.T) {
	g, err := BuildScene(NodeConfig{Name: "root", Scale: []float32{0, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 1}, g.Root().Transform.Scale)
}

func TestDefaultScene(t *testing.T) {
	g, err := BuildScene(DefaultScene())
	require.NoError(t, err)
	assert.Equal(t, 6, g.Len())

	var names []string
	g.Walk(func(n *scene.Node, depth int) bool {
		if n.Payload != nil {
			names = append(names, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"square", "box", "fish", "moon"}, names)

	square := g.Root().Children()[0]
	assert.Equal(t, mgl32.Vec3{5, -5, -10}, square.Transform.Position)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, square.Transform.Scale)
}
