package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ActionKind selects how an Action turns elapsed time into a transform delta.
type ActionKind int

const (
	// Translate moves along Action.Vector at Action.Rate units per second.
	Translate ActionKind = iota
	// Rotate turns about Action.Vector at Action.Rate radians per second.
	Rotate
)

func (k ActionKind) String() string {
	switch k {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	}
	return "unknown"
}

// An Action is a time-parameterised transform delta. It holds no per-frame state:
// evaluating it twice with the same elapsed time gives the same matrix.
type Action struct {
	Kind   ActionKind
	Vector mgl32.Vec3
	Rate   float32

	// Start delays the action. Before it the action yields the identity.
	Start time.Duration
	// Duration bounds the motion. A non-looping action freezes at Duration,
	// a looping one wraps around it. Zero leaves a non-looping action unbounded.
	Duration time.Duration
	Loop     bool

	// Ease reshapes progress through Duration. Nil is linear.
	Ease func(float64) float64
}

// NewTranslate creates a translation along dir at rate units per second.
func NewTranslate(dir mgl32.Vec3, rate float32) Action {
	return Action{Kind: Translate, Vector: dir, Rate: rate}
}

// NewRotate creates a rotation about axis at rate radians per second.
func NewRotate(axis mgl32.Vec3, rate float32) Action {
	return Action{Kind: Rotate, Vector: axis, Rate: rate}
}

// Between returns a copy of the action active from start for duration.
func (a Action) Between(start, duration time.Duration) Action {
	a.Start = start
	a.Duration = duration
	return a
}

// Looping returns a copy of the action that wraps around its duration.
func (a Action) Looping() Action {
	a.Loop = true
	return a
}

// Eased returns a copy of the action with progress shaped by fn.
func (a Action) Eased(fn func(float64) float64) Action {
	a.Ease = fn
	return a
}

// Evaluate returns the transform delta of the action at elapsed scene time.
func (a Action) Evaluate(elapsed time.Duration) mgl32.Mat4 {
	if elapsed < a.Start {
		return mgl32.Ident4()
	}

	local, ok := a.clamp(elapsed - a.Start)
	if !ok {
		return mgl32.Ident4()
	}
	if a.Ease != nil && a.Duration > 0 {
		progress := float64(local) / float64(a.Duration)
		local = time.Duration(a.Ease(progress) * float64(a.Duration))
	}

	amount := a.Rate * float32(local.Seconds())
	switch a.Kind {
	case Translate:
		d := a.Vector.Mul(amount)
		return mgl32.Translate3D(d.X(), d.Y(), d.Z())
	case Rotate:
		if a.Vector.Len() == 0 {
			return mgl32.Ident4()
		}
		return mgl32.HomogRotate3D(amount, a.Vector.Normalize())
	}
	return mgl32.Ident4()
}

// clamp maps time since Start onto the motion's own timeline. It reports false when
// the action is a looping one without a usable duration, which holds it at its start.
func (a Action) clamp(local time.Duration) (time.Duration, bool) {
	switch {
	case a.Loop && a.Duration <= 0:
		return 0, false
	case a.Loop:
		return local % a.Duration, true
	case a.Duration > 0 && local > a.Duration:
		return a.Duration, true
	}
	return local, true
}
