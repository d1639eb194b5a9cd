package parameter

// Terminal Rendering
const (
	// RenderDepthRange is the z span mapped onto the full shading ramp
	RenderDepthRange = 400.0

	// RenderDepthMin is the brightness floor for the farthest fragments
	RenderDepthMin = 0.35

	// RenderMarkerCore is the fraction of the marker radius drawn at full glow
	RenderMarkerCore = 0.35

	// RenderMarkerWeight ranks marker cells above any wire fragment
	RenderMarkerWeight = 2.0
)
