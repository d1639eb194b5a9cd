// Package graph generates the wire-frame primitive assigned to each viewport slot
package graph

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orbitals/parameter"
	"github.com/lixenwraith/orbitals/vmath"
)

// EdgeCount is the number of edges on every primitive (one per vertex per stride family)
const EdgeCount = parameter.GraphVertexCount * len(parameter.GraphEdgeStrides)

// PartKind tags the variant held by a Part
type PartKind uint8

const (
	PartWire PartKind = iota
	PartMarker
)

func (k PartKind) String() string {
	switch k {
	case PartWire:
		return "wire"
	case PartMarker:
		return "marker"
	default:
		return fmt.Sprintf("PartKind(%d)", uint8(k))
	}
}

// WireShape is the closed-loop line structure of a primitive
type WireShape struct {
	Vertices [parameter.GraphVertexCount]vmath.Vec3F
	Edges    [EdgeCount][2]uint16
}

// Part is one renderable piece of a primitive
// Wire is set only for PartWire, Scale only for PartMarker
type Part struct {
	Kind    PartKind
	Color   colorful.Color
	Opacity float64
	Wire    *WireShape
	Scale   float64
}

// Primitive groups the wire mesh and the glow marker, centered at local origin
type Primitive struct {
	Index       int
	Hue         float64 // [0,1)
	Radius      float64
	Parts       []Part
	MarkerIndex int
}

// Wire returns the wire shape part
func (p *Primitive) Wire() *Part {
	for i := range p.Parts {
		if p.Parts[i].Kind == PartWire {
			return &p.Parts[i]
		}
	}
	return nil
}

// Marker returns the marker part recorded at generation
func (p *Primitive) Marker() *Part {
	return &p.Parts[p.MarkerIndex]
}

// Radius returns the primitive radius for index, strictly increasing with index
func Radius(index int) float64 {
	return (parameter.GraphRadiusBase + float64(index)*parameter.GraphRadiusStep + parameter.GraphRadiusPad) * parameter.GraphRadiusScale
}

// Hue returns the hue for index in [0,1), cycling every GraphHuePeriod indices
func Hue(index int) float64 {
	return float64(index%parameter.GraphHuePeriod) * parameter.GraphHueStep
}

// Generate builds the primitive for a slot index
// Pure and deterministic; panics on negative index
func Generate(index int) *Primitive {
	if index < 0 {
		panic(fmt.Sprintf("graph: negative primitive index %d", index))
	}

	radius := Radius(index)
	hue := Hue(index)

	wire := &WireShape{}
	n := parameter.GraphVertexCount
	for j := 0; j < n; j++ {
		theta := float64(j) / float64(n) * 2 * math.Pi
		phi := float64(j%parameter.GraphBands) * math.Pi / 6
		wire.Vertices[j] = vmath.V3FSpherical(radius, phi, theta)
	}

	e := 0
	for j := 0; j < n; j++ {
		for _, stride := range parameter.GraphEdgeStrides {
			wire.Edges[e] = [2]uint16{uint16(j), uint16((j + stride) % n)}
			e++
		}
	}

	return &Primitive{
		Index:  index,
		Hue:    hue,
		Radius: radius,
		Parts: []Part{
			{
				Kind:    PartWire,
				Color:   colorful.Hsl(hue*360, parameter.WireSaturation, parameter.WireLightness),
				Opacity: parameter.WireOpacity,
				Wire:    wire,
			},
			{
				Kind:    PartMarker,
				Color:   colorful.Hsl(hue*360, parameter.MarkerSaturation, parameter.MarkerLightness),
				Opacity: parameter.MarkerOpacity,
				Scale:   parameter.MarkerScale,
			},
		},
		MarkerIndex: 1,
	}
}
