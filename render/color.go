package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orbitals/parameter"
)

// Predefined colors
var (
	ColorBackground = colorful.Color{R: 0, G: 0, B: 0}
	ColorHUD        = colorful.Color{R: 0.55, G: 0.6, B: 0.65}
	ColorHUDIdle    = colorful.Color{R: 0.95, G: 0.75, B: 0.3}
)

// ToTcell converts to a true-color tcell value
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// DepthFactor maps z to a brightness in [RenderDepthMin, 1]; larger z is nearer the viewer
func DepthFactor(z float64) float64 {
	t := 0.5 + z/parameter.RenderDepthRange
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return parameter.RenderDepthMin + (1-parameter.RenderDepthMin)*t
}

// Shade dims c toward the background by opacity and depth
func Shade(c colorful.Color, opacity, z float64) colorful.Color {
	return ColorBackground.BlendRgb(c, opacity*DepthFactor(z))
}
