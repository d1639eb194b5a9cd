package scene

import "github.com/lixenwraith/orbitals/vmath"

// Transform is a rigid transform: rotate by R then translate by T
type Transform struct {
	R vmath.Mat3
	T vmath.Vec3F
}

// Identity returns the no-op transform
func Identity() Transform {
	return Transform{R: vmath.Identity3()}
}

// Compose returns the transform applying child first, then t
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		R: vmath.Mat3Mul(t.R, child.R),
		T: vmath.V3FAdd(vmath.Mat3Apply(t.R, child.T), t.T),
	}
}

// Apply maps a local point into the transform's space
func (t Transform) Apply(v vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FAdd(vmath.Mat3Apply(t.R, v), t.T)
}
