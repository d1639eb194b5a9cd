package vmath

import "math"

// Mat3 is a row-major 3x3 rotation matrix
type Mat3 [9]float64

// Identity3 returns the identity matrix
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3FromEuler builds Rx * Ry * Rz, matching V3FRotateEuler
func Mat3FromEuler(rot Vec3F) Mat3 {
	sx, cx := math.Sincos(rot.X)
	sy, cy := math.Sincos(rot.Y)
	sz, cz := math.Sincos(rot.Z)

	return Mat3{
		cy * cz, -cy * sz, sy,
		cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy,
		sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy,
	}
}

// Mat3Mul returns a * b
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3]*b[c] + a[r*3+1]*b[3+c] + a[r*3+2]*b[6+c]
		}
	}
	return m
}

// Mat3Apply returns m * v
func Mat3Apply(m Mat3, v Vec3F) Vec3F {
	return Vec3F{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}
