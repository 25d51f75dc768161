package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID identifies a node in a Graph.
type NodeID int

// Nil represents an invalid NodeID.
const Nil NodeID = 0

// Node is a single node of the scene graph. Nodes are only created through a Graph
// or Node.NewChild, so every node has at most one parent and the tree stays acyclic.
type Node struct {
	ID        NodeID
	Name      string
	Transform Transform
	Payload   *Payload

	graph      *Graph
	parent     *Node
	children   []*Node
	animations []*Animation
}

// NewChild creates a node as the last child of n.
// It panics if n has been removed from its graph.
func (n *Node) NewChild(name string) *Node {
	if n.graph == nil {
		panic(fmt.Sprintf("scene: node %q is detached", n.Name))
	}
	c := n.graph.newNode(name)
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// RemoveChild detaches child and its whole subtree from the graph.
// It reports false if child is not an immediate descendant of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c != child {
			continue
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
		child.parent = nil
		if n.graph != nil {
			n.graph.forget(child)
		}
		return true
	}
	return false
}

// Parent returns the immediate ancestor, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the immediate descendants in declared order.
func (n *Node) Children() []*Node { return n.children }

// Animations returns the animations in composition order.
func (n *Node) Animations() []*Animation { return n.animations }

// Animate appends a to the node's animations and points a back at it.
func (n *Node) Animate(a *Animation) {
	a.Target = n.ID
	n.animations = append(n.animations, a)
}

// Local returns the base transform followed by the combined animation delta at t.
func (n *Node) Local(t time.Duration) mgl32.Mat4 {
	m := n.Transform.Matrix()
	for _, a := range n.animations {
		m = m.Mul4(a.Evaluate(t))
	}
	return m
}

// Traverse composes the world matrix of n and of every descendant, depth first,
// and sends a RenderCommand to r for each node carrying a payload.
// stack is left exactly as it was found.
func (n *Node) Traverse(stack *MatrixStack, t time.Duration, cam *Camera, light Light, r Renderer) {
	world := stack.Top().Mul4(n.Local(t))
	stack.Push(world)

	if n.Payload != nil {
		r.Render(RenderCommand{
			Node:       n.ID,
			Name:       n.Name,
			World:      world,
			View:       cam.View(),
			Projection: cam.Projection(),
			Payload:    *n.Payload,
			Light:      light,
		})
	}

	for _, c := range n.children {
		c.Traverse(stack, t, cam, light, r)
	}

	stack.Pop()
}
