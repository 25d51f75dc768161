package scene

import (
	"fmt"
	"time"
)

// Graph owns a tree of nodes with a single root.
// It is not safe for concurrent use; edits must happen between render passes.
type Graph struct {
	root  *Node
	next  NodeID
	nodes map[NodeID]*Node
	stack *MatrixStack
}

// NewGraph creates a graph holding only a root node.
func NewGraph(rootName string) *Graph {
	g := new(Graph)
	g.nodes = make(map[NodeID]*Node)
	g.stack = NewMatrixStack()
	g.root = g.newNode(rootName)
	return g
}

func (g *Graph) newNode(name string) *Node {
	g.next++
	n := new(Node)
	n.ID = g.next
	n.Name = name
	n.Transform = NewTransform()
	n.graph = g
	g.nodes[n.ID] = n
	return n
}

func (g *Graph) forget(n *Node) {
	delete(g.nodes, n.ID)
	n.graph = nil
	for _, c := range n.children {
		g.forget(c)
	}
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// Node returns the node identified by id, or nil.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// Len returns the number of nodes reachable from the root.
func (g *Graph) Len() int { return len(g.nodes) }

// Walk calls f for every node in pre-order with its depth below the root.
// If f returns false the node's descendants are skipped.
func (g *Graph) Walk(f func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !f(n, depth) {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(g.root, 0)
}

// Render runs one traversal pass from the root at scene time t.
func (g *Graph) Render(t time.Duration, cam *Camera, light Light, r Renderer) {
	g.stack.Reset()
	g.root.Traverse(g.stack, t, cam, light, r)
	if n := g.stack.Len(); n != 0 {
		panic(fmt.Sprintf("scene: %d matrices left on stack after traversal", n))
	}
}
