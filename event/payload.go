package event

// PointerPayload carries pointer coordinates in local viewport pixels
type PointerPayload struct {
	X, Y float64
}

// IdleTimeoutPayload identifies which armed timer fired
type IdleTimeoutPayload struct {
	Generation uint64
}

// ShapePayload carries the local viewport rectangle in shared-space pixels
type ShapePayload struct {
	X, Y, W, H int
}

// ResizePayload carries the host surface extent in pixels
type ResizePayload struct {
	Width, Height float64
}

// MovePayload carries an origin shift in shared-space pixels
type MovePayload struct {
	DX, DY int
}
