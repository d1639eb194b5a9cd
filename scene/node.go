// Package scene is the renderable scene graph the animation engine writes transforms into
package scene

import (
	"github.com/lixenwraith/orbitals/graph"
	"github.com/lixenwraith/orbitals/vmath"
)

// Node is a transform in the scene graph
// Part is nil for pure groups
type Node struct {
	Name     string
	Position vmath.Vec3F
	Rotation vmath.Vec3F // Euler XYZ, radians
	Part     *graph.Part

	parent   *Node
	children []*Node
}

// NewGroup creates an empty transform node
func NewGroup(name string) *Node {
	return &Node{Name: name}
}

// NewPrimitive creates a group holding one child node per primitive part
// Returns the group and the marker child
func NewPrimitive(name string, p *graph.Primitive) (group, marker *Node) {
	group = NewGroup(name)
	for i := range p.Parts {
		child := &Node{Name: name + "/" + p.Parts[i].Kind.String(), Part: &p.Parts[i]}
		group.Add(child)
		if i == p.MarkerIndex {
			marker = child
		}
	}
	return group, marker
}

// Add attaches child, detaching it from any previous parent
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child; no-op if child is not attached to n
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}

// Clear detaches all children
func (n *Node) Clear() {
	for i, c := range n.children {
		c.parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the attached children; callers must not modify the slice
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the attaching node or nil
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) SetPosition(v vmath.Vec3F) {
	n.Position = v
}

func (n *Node) SetRotation(v vmath.Vec3F) {
	n.Rotation = v
}

// Local returns the node transform relative to its parent
func (n *Node) Local() Transform {
	return Transform{R: vmath.Mat3FromEuler(n.Rotation), T: n.Position}
}

// Walk visits n and its descendants depth-first with accumulated world transforms
func (n *Node) Walk(parent Transform, visit func(node *Node, world Transform)) {
	world := parent.Compose(n.Local())
	visit(n, world)
	for _, c := range n.children {
		c.Walk(world, visit)
	}
}
