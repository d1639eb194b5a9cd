package vmath

// Ease performs one step of exponential decay of cur toward target
// k in (0,1]; never overshoots
func Ease(cur, target, k float64) float64 {
	return cur + (target-cur)*k
}
