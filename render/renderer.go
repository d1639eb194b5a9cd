// Package render draws the scene graph onto a terminal through tcell
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orbitals/graph"
	"github.com/lixenwraith/orbitals/parameter"
	"github.com/lixenwraith/orbitals/scene"
	"github.com/lixenwraith/orbitals/status"
	"github.com/lixenwraith/orbitals/vmath"
)

// Renderer projects the scene through an orthographic camera into terminal cells
// Rows [0, height-HUDRows) hold the scene, the last row holds the HUD
type Renderer struct {
	screen tcell.Screen
	buf    *Buffer
	status *status.Registry

	cellW, cellH float64
	bg           tcell.Style

	// Scratch for projected wire vertices
	proj [parameter.GraphVertexCount]vmath.Vec3F
}

// NewRenderer creates a renderer; cellW and cellH are shared-space pixels per cell
func NewRenderer(screen tcell.Screen, reg *status.Registry, cellW, cellH int) *Renderer {
	if cellW <= 0 {
		cellW = parameter.CellWidth
	}
	if cellH <= 0 {
		cellH = parameter.CellHeight
	}
	return &Renderer{
		screen: screen,
		buf:    NewBuffer(0, 0),
		status: reg,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
		bg:     tcell.StyleDefault.Background(ToTcell(ColorBackground)),
	}
}

// CellToPixel returns the pixel at the center of a terminal cell
func (r *Renderer) CellToPixel(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * r.cellW, (float64(cy) + 0.5) * r.cellH
}

// SurfaceSize returns the scene area in pixels for a terminal of cols x rows
func (r *Renderer) SurfaceSize(cols, rows int) (float64, float64) {
	rows -= parameter.HUDRows
	if rows < 0 {
		rows = 0
	}
	return float64(cols) * r.cellW, float64(rows) * r.cellH
}

// Render draws one frame and shows it
func (r *Renderer) Render(sc *scene.Scene, cam scene.Camera) {
	cols, rows := r.screen.Size()
	sceneRows := rows - parameter.HUDRows
	if sceneRows < 0 {
		sceneRows = 0
	}
	if w, h := r.buf.Size(); w != cols || h != sceneRows {
		r.buf.Resize(cols, sceneRows)
	} else {
		r.buf.Clear()
	}

	sc.Walk(func(node *scene.Node, world scene.Transform) {
		if node.Part == nil {
			return
		}
		switch node.Part.Kind {
		case graph.PartWire:
			r.drawWire(node.Part, world, cam)
		case graph.PartMarker:
			r.drawMarker(node.Part, world, cam)
		}
	})

	r.buf.Flush(r.screen, 0, r.bg)
	r.drawHUD(cols, rows)
	r.screen.Show()
}

// Buffer exposes the composited scene area of the last frame
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

func (r *Renderer) drawWire(p *graph.Part, world scene.Transform, cam scene.Camera) {
	w := p.Wire
	if w == nil {
		return
	}
	for i := range w.Vertices {
		v := world.Apply(w.Vertices[i])
		sx, sy, _ := cam.Project(v.X, v.Y)
		r.proj[i] = vmath.Vec3F{X: sx / r.cellW, Y: sy / r.cellH, Z: v.Z}
	}

	bw, bh := r.buf.Size()
	for _, e := range w.Edges {
		a, b := r.proj[e[0]], r.proj[e[1]]
		if outside(a.X, b.X, float64(bw)) || outside(a.Y, b.Y, float64(bh)) {
			continue
		}
		z := (a.Z + b.Z) / 2
		weight := p.Opacity * DepthFactor(z)
		r.line(a, b, lineRune(a, b), Shade(p.Color, p.Opacity, z), weight)
	}
}

// drawMarker draws a radial glow; Scale is the glow radius in pixels
func (r *Renderer) drawMarker(p *graph.Part, world scene.Transform, cam scene.Camera) {
	c := world.Apply(vmath.Vec3F{})
	sx, sy, _ := cam.Project(c.X, c.Y)
	cx, cy := sx/r.cellW, sy/r.cellH
	rx, ry := p.Scale/r.cellW, p.Scale/r.cellH

	x0, x1 := int(math.Floor(cx-rx)), int(math.Floor(cx+rx))
	y0, y1 := int(math.Floor(cy-ry)), int(math.Floor(cy+ry))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 1 {
				continue
			}
			glow := 1 - d
			ch := '·'
			if d <= parameter.RenderMarkerCore {
				ch = '●'
				glow = 1
			} else if d <= 2*parameter.RenderMarkerCore {
				ch = '•'
			}
			r.buf.Set(x, y, ch, Shade(p.Color, p.Opacity*glow, c.Z), parameter.RenderMarkerWeight*glow)
		}
	}

	// The center cell always carries the core glyph
	r.buf.Set(int(math.Floor(cx)), int(math.Floor(cy)), '●', Shade(p.Color, p.Opacity, c.Z), parameter.RenderMarkerWeight+1)
}

// line rasterizes a segment between cell-space points with Bresenham
func (r *Renderer) line(a, b vmath.Vec3F, ch rune, fg colorful.Color, weight float64) {
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		r.buf.Set(x0, y0, ch, fg, weight)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) drawHUD(cols, rows int) {
	if parameter.HUDRows == 0 || rows < parameter.HUDRows {
		return
	}
	y := rows - parameter.HUDRows
	idle := r.status.Bools.Get("engine.idle").Load()

	fg := ColorHUD
	mode := "interactive"
	if idle {
		fg = ColorHUDIdle
		mode = "idle"
	}

	text := HUDText(r.status, mode)
	style := r.bg.Foreground(ToTcell(fg))
	x := 0
	for _, ch := range text {
		if x >= cols {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.bg)
	}
}

// HUDText formats the status line
func HUDText(reg *status.Registry, mode string) string {
	return fmt.Sprintf(" viewports %d | %s | ticks %d | %.2fms | rebuilds %d | faults %d ",
		reg.Ints.Get("registry.viewports").Load(),
		mode,
		reg.Ints.Get("engine.ticks").Load(),
		reg.Floats.Get("engine.frame_ms").Get(),
		reg.Ints.Get("pool.rebuilds").Load(),
		reg.Ints.Get("engine.slot_faults").Load(),
	)
}

// lineRune picks a glyph approximating the slope in cell space
func lineRune(a, b vmath.Vec3F) rune {
	dx := b.X - a.X
	dy := b.Y - a.Y
	switch {
	case math.Abs(dy) < math.Abs(dx)*0.4:
		return '─'
	case math.Abs(dx) < math.Abs(dy)*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// outside reports whether a segment lies entirely on one side of [0, limit)
func outside(a, b, limit float64) bool {
	return (a < 0 && b < 0) || (a >= limit && b >= limit)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
