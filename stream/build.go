package stream

import (
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/util"
	"github.com/pkg/errors"
)

// BuildScene assembles a graph from its description. The tree is fully validated
// here so that traversal never has to deal with a malformed scene.
func BuildScene(root NodeConfig) (*scene.Graph, error) {
	g := scene.NewGraph(root.Name)
	if err := configureNode(g.Root(), root, root.Name); err != nil {
		return nil, err
	}
	slog.Debug("scene built", "nodes", g.Len())
	return g, nil
}

func configureNode(n *scene.Node, c NodeConfig, path string) error {
	var err error
	t := scene.NewTransform()
	if t.Position, err = vec3(c.Position, t.Position); err != nil {
		return errors.Wrapf(err, "node %s: position", path)
	}
	rot, err := vec3(c.Rotation, mgl32.Vec3{})
	if err != nil {
		return errors.Wrapf(err, "node %s: rotation", path)
	}
	t.Rotation = mgl32.Vec3{mgl32.DegToRad(rot[0]), mgl32.DegToRad(rot[1]), mgl32.DegToRad(rot[2])}
	if t.Scale, err = vec3(c.Scale, t.Scale); err != nil {
		return errors.Wrapf(err, "node %s: scale", path)
	}
	if t.Scale[0] == 0 || t.Scale[1] == 0 || t.Scale[2] == 0 {
		slog.Warn("node has a zero scale component", "node", path, "scale", t.Scale)
	}
	n.Transform = t

	if c.Payload != nil {
		p := *c.Payload
		if p.Geometry == "" {
			return errors.Errorf("node %s: payload without geometry", path)
		}
		n.Payload = &p
	}

	for i, ac := range c.Animations {
		a, err := buildAnimation(ac)
		if err != nil {
			return errors.Wrapf(err, "node %s: animation %d", path, i)
		}
		n.Animate(a)
	}

	for _, cc := range c.Children {
		child := n.NewChild(cc.Name)
		if err := configureNode(child, cc, path+"/"+cc.Name); err != nil {
			return err
		}
	}
	return nil
}

func buildAnimation(c AnimationConfig) (*scene.Animation, error) {
	a := scene.NewAnimation(c.Name)
	for i, ac := range c.Actions {
		action, err := buildAction(ac)
		if err != nil {
			return nil, errors.Wrapf(err, "action %d", i)
		}
		a.Append(action)
	}
	return a, nil
}

func buildAction(c ActionConfig) (scene.Action, error) {
	var a scene.Action
	v, err := vec3(c.Vector, mgl32.Vec3{})
	if err != nil {
		return a, errors.Wrap(err, "vector")
	}
	if v.Len() == 0 {
		return a, errors.New("vector must be non-zero")
	}

	switch strings.ToLower(c.Kind) {
	case "translate", "move":
		a = scene.NewTranslate(v, c.Rate)
	case "rotate":
		a = scene.NewRotate(v, mgl32.DegToRad(c.Rate))
	default:
		return a, errors.Errorf("unknown action kind %q", c.Kind)
	}

	if c.Start < 0 {
		return a, errors.Errorf("negative start %v", c.Start)
	}
	a = a.Between(c.Start, c.Duration)
	if c.Loop {
		if c.Duration <= 0 {
			return a, errors.Errorf("looping action needs a positive duration, got %v", c.Duration)
		}
		a = a.Looping()
	}

	if c.Ease != "" {
		fn, ok := util.Easing(c.Ease)
		if !ok {
			return a, errors.Errorf("unknown easing %q", c.Ease)
		}
		a = a.Eased(fn)
	}
	return a, nil
}
