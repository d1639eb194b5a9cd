package engine

import (
	"github.com/lixenwraith/orbitals/registry"
	"github.com/lixenwraith/orbitals/vmath"
)

// SharedOffset is the translation of the world container
// Target is the negated local viewport origin; Current eases toward it
type SharedOffset struct {
	Current vmath.Vec2F
	Target  vmath.Vec2F
}

// Retarget follows a local move or resize
func (o *SharedOffset) Retarget(s registry.Shape) {
	o.Target = vmath.Vec2F{X: -float64(s.X), Y: -float64(s.Y)}
}

// Snap sets Current to Target without easing, used once at startup
func (o *SharedOffset) Snap() {
	o.Current = o.Target
}

// Step performs one easing step with factor k
func (o *SharedOffset) Step(k float64) {
	o.Current = vmath.V2FEase(o.Current, o.Target, k)
}

// ToShared converts local viewport pixels to shared-space pixels
func (o *SharedOffset) ToShared(x, y float64) (float64, float64) {
	return x - o.Current.X, y - o.Current.Y
}
