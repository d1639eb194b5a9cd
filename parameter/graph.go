package parameter

// Graph Primitive Geometry
const (
	// GraphVertexCount is the number of vertices on each primitive
	GraphVertexCount = 54

	// GraphBands is the number of polar bands the vertices cycle through
	GraphBands = 3

	// GraphRadiusBase and GraphRadiusStep give radius = (base + index*step + pad) * scale
	GraphRadiusBase  = 50.0
	GraphRadiusStep  = 20.0
	GraphRadiusPad   = 30.0
	GraphRadiusScale = 2.0

	// GraphHueStep is the hue advance per primitive index, wrapping at 1.0
	GraphHueStep = 0.1

	// GraphHuePeriod is the number of indices before the hue wheel repeats
	GraphHuePeriod = 10
)

// GraphEdgeStrides are the vertex index strides of the three edge families
var GraphEdgeStrides = [3]int{1, 3, 9}

// Graph Primitive Appearance
const (
	WireSaturation = 1.0
	WireLightness  = 0.5
	WireOpacity    = 0.7

	MarkerSaturation = 1.0
	MarkerLightness  = 0.8
	MarkerOpacity    = 0.6
	MarkerScale      = 20.0
)
