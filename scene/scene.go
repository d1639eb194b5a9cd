package scene

// Scene owns the root node and the world container all pooled objects hang from
// The world container carries the shared offset translation
type Scene struct {
	Root  *Node
	World *Node
}

// New creates a scene with an attached world container
func New() *Scene {
	s := &Scene{
		Root:  NewGroup("scene"),
		World: NewGroup("world"),
	}
	s.Root.Add(s.World)
	return s
}

// Add attaches a node to the world container
func (s *Scene) Add(n *Node) {
	s.World.Add(n)
}

// Remove detaches a node from the world container
func (s *Scene) Remove(n *Node) {
	s.World.Remove(n)
}

// Walk visits every node with its world transform
func (s *Scene) Walk(visit func(node *Node, world Transform)) {
	s.Root.Walk(Identity(), visit)
}

// Camera is an orthographic camera with left=0, top=0 in screen pixels
type Camera struct {
	Width, Height float64
}

// Project maps a world point to screen pixels; depth is returned unchanged
func (c Camera) Project(x, y float64) (sx, sy float64, visible bool) {
	return x, y, x >= 0 && y >= 0 && x < c.Width && y < c.Height
}
