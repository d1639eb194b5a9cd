package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector for scene transforms
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FNormalize returns the unit vector and false for a zero-length input
func V3FNormalize(v Vec3F) (Vec3F, bool) {
	mag := V3FMag(v)
	if mag == 0 || math.IsNaN(mag) {
		return Vec3F{}, false
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}, true
}

// V3FEase moves cur toward target by factor k in one step
func V3FEase(cur, target Vec3F, k float64) Vec3F {
	return Vec3F{
		X: Ease(cur.X, target.X, k),
		Y: Ease(cur.Y, target.Y, k),
		Z: Ease(cur.Z, target.Z, k),
	}
}

// V3FSpherical converts radius, polar angle phi and azimuth theta to Cartesian
func V3FSpherical(r, phi, theta float64) Vec3F {
	sinPhi := math.Sin(phi)
	return Vec3F{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}

// V3FRotateEuler applies an XYZ-order Euler rotation (Rx * Ry * Rz * v)
func V3FRotateEuler(v, rot Vec3F) Vec3F {
	// Z
	sz, cz := math.Sincos(rot.Z)
	x := v.X*cz - v.Y*sz
	y := v.X*sz + v.Y*cz
	z := v.Z

	// Y
	sy, cy := math.Sincos(rot.Y)
	x, z = x*cy+z*sy, -x*sy+z*cy

	// X
	sx, cx := math.Sincos(rot.X)
	y, z = y*cx-z*sx, y*sx+z*cx

	return Vec3F{x, y, z}
}
