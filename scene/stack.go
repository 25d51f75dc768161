package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MatrixStack accumulates world matrices during a single traversal pass.
type MatrixStack struct {
	matrices []mgl32.Mat4
}

// NewMatrixStack creates an empty MatrixStack.
func NewMatrixStack() *MatrixStack {
	s := new(MatrixStack)
	s.matrices = make([]mgl32.Mat4, 0, 16)
	return s
}

// Push places m on top of the stack.
func (s *MatrixStack) Push(m mgl32.Mat4) {
	s.matrices = append(s.matrices, m)
}

// Pop removes and returns the top matrix.
// Popping an empty stack is a traversal bug and panics.
func (s *MatrixStack) Pop() mgl32.Mat4 {
	n := len(s.matrices)
	if n == 0 {
		panic("scene: pop on empty matrix stack")
	}
	m := s.matrices[n-1]
	s.matrices = s.matrices[:n-1]
	return m
}

// Top returns the top matrix, or the identity when the stack is empty.
func (s *MatrixStack) Top() mgl32.Mat4 {
	if len(s.matrices) == 0 {
		return mgl32.Ident4()
	}
	return s.matrices[len(s.matrices)-1]
}

// Len returns the number of matrices on the stack.
func (s *MatrixStack) Len() int {
	return len(s.matrices)
}

// Reset empties the stack, keeping its storage.
func (s *MatrixStack) Reset() {
	s.matrices = s.matrices[:0]
}
