package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// An Animation is an ordered list of actions applied to a single node.
// The node owns the animation; Target only names it.
type Animation struct {
	Name    string
	Target  NodeID
	actions []Action
}

// NewAnimation creates an instance of an Animation.
func NewAnimation(name string, actions ...Action) *Animation {
	a := new(Animation)
	a.Name = name
	a.Target = Nil
	a.actions = append(a.actions, actions...)
	return a
}

// Append adds an action after the existing ones.
func (a *Animation) Append(action Action) {
	a.actions = append(a.actions, action)
}

// Actions returns the actions in evaluation order.
func (a *Animation) Actions() []Action {
	return a.actions
}

// Evaluate multiplies the deltas of every action in declared order.
func (a *Animation) Evaluate(t time.Duration) mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, action := range a.actions {
		m = m.Mul4(action.Evaluate(t))
	}
	return m
}
