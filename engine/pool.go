package engine

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/orbitals/graph"
	"github.com/lixenwraith/orbitals/registry"
	"github.com/lixenwraith/orbitals/scene"
	"github.com/lixenwraith/orbitals/vmath"
)

// Mode records which update path last ran for an object
type Mode uint8

const (
	ModeNone Mode = iota
	ModeInteractive
	ModeIdle
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeIdle:
		return "idle"
	default:
		return "none"
	}
}

// SceneObject binds one viewport slot to its primitive instance
type SceneObject struct {
	Slot       int
	ViewportID string
	Primitive  *graph.Primitive
	Node       *scene.Node
	Marker     *scene.Node // Stored at construction, never searched for

	Position vmath.Vec3F
	Rotation vmath.Vec3F

	Mode    Mode  // Path taken on the last update
	Updated int64 // Frame of the last update
}

// Pool owns the slot -> SceneObject mapping
type Pool struct {
	scene    *scene.Scene
	objects  []*SceneObject
	rebuilds int
}

func NewPool(s *scene.Scene) *Pool {
	return &Pool{scene: s}
}

// Rebuild discards every object and creates one per viewport, in slot order
// Panics without touching the pool if any descriptor has an invalid shape
func (p *Pool) Rebuild(viewports []registry.Viewport) {
	for i := range viewports {
		if !viewports[i].Shape.Valid() {
			panic(fmt.Sprintf("pool: viewport %d (%s) has invalid shape %s", i, viewports[i].ID, viewports[i].Shape))
		}
	}

	for i, obj := range p.objects {
		p.scene.Remove(obj.Node)
		p.objects[i] = nil
	}
	p.objects = p.objects[:0]

	for i := range viewports {
		prim := graph.Generate(i)
		node, marker := scene.NewPrimitive("slot"+strconv.Itoa(i), prim)

		cx, cy := viewports[i].Shape.Center()
		center := vmath.Vec3F{X: cx, Y: cy}
		node.SetPosition(center)

		p.objects = append(p.objects, &SceneObject{
			Slot:       i,
			ViewportID: viewports[i].ID,
			Primitive:  prim,
			Node:       node,
			Marker:     marker,
			Position:   center,
		})
		p.scene.Add(node)
	}
	p.rebuilds++
}

func (p *Pool) Len() int {
	return len(p.objects)
}

// At returns the object in slot i
func (p *Pool) At(i int) *SceneObject {
	return p.objects[i]
}

// Objects returns the slot-ordered objects; callers must not modify the slice
func (p *Pool) Objects() []*SceneObject {
	return p.objects
}

// Rebuilds returns the number of completed rebuilds
func (p *Pool) Rebuilds() int {
	return p.rebuilds
}
