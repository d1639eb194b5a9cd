package vmath

import "math"

// Vec2F is a float64 2D vector in screen space
type Vec2F struct {
	X, Y float64
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FMag(v Vec2F) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2FEase moves cur toward target by factor k in one step
func V2FEase(cur, target Vec2F, k float64) Vec2F {
	return Vec2F{Ease(cur.X, target.X, k), Ease(cur.Y, target.Y, k)}
}
