package main

import (
	"github.com/gdamore/tcell/v2"
)

// inputSink receives translated terminal input; *engine.Engine satisfies it
type inputSink interface {
	PushPointer(x, y float64)
	PushResize(w, h float64)
	PushMove(dx, dy int)
}

// cellMapper converts terminal cells to shared-space pixels; *render.Renderer satisfies it
type cellMapper interface {
	CellToPixel(cx, cy int) (float64, float64)
	SurfaceSize(cols, rows int) (float64, float64)
}

// inputHandler translates tcell events into engine events
type inputHandler struct {
	sink   inputSink
	cells  cellMapper
	step   int
	quit   func()
	resync func() // Screen redraw after resize, may be nil
}

// handle processes one event; returns false once the loop should stop
func (h *inputHandler) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return false

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := h.cells.CellToPixel(x, y)
		h.sink.PushPointer(px, py)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, hgt := h.cells.SurfaceSize(cols, rows)
		h.sink.PushResize(w, hgt)
		if h.resync != nil {
			h.resync()
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			h.quit()
			return false
		case tcell.KeyLeft:
			h.sink.PushMove(-h.step, 0)
		case tcell.KeyRight:
			h.sink.PushMove(h.step, 0)
		case tcell.KeyUp:
			h.sink.PushMove(0, -h.step)
		case tcell.KeyDown:
			h.sink.PushMove(0, h.step)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				h.quit()
				return false
			case 'h':
				h.sink.PushMove(-h.step, 0)
			case 'l':
				h.sink.PushMove(h.step, 0)
			case 'k':
				h.sink.PushMove(0, -h.step)
			case 'j':
				h.sink.PushMove(0, h.step)
			}
		}
	}
	return true
}

// runInput polls the screen until quit or until the screen is finalized
func runInput(screen tcell.Screen, h *inputHandler) {
	for h.handle(screen.PollEvent()) {
	}
}
