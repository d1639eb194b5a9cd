package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one composited terminal cell
// Weight orders competing writes; the heaviest fragment of the frame wins
type Cell struct {
	Rune   rune
	Fg     colorful.Color
	Weight float64
}

// Buffer is a frame compositor with touched tracking, flushed to a tcell screen
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a fragment unless the cell already holds a heavier one
func (b *Buffer) Set(x, y int, r rune, fg colorful.Color, weight float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	if b.touched[idx] && b.cells[idx].Weight >= weight {
		return
	}
	b.cells[idx] = Cell{Rune: r, Fg: fg, Weight: weight}
	b.touched[idx] = true
}

// At returns the cell at x, y and whether anything was drawn there
func (b *Buffer) At(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	idx := y*b.width + x
	return b.cells[idx], b.touched[idx]
}

// Flush writes every cell to the screen starting at row top
// Untouched cells are blanked so stale frames never persist
func (b *Buffer) Flush(screen tcell.Screen, top int, bg tcell.Style) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if !b.touched[idx] {
				screen.SetContent(x, top+y, ' ', nil, bg)
				continue
			}
			c := &b.cells[idx]
			screen.SetContent(x, top+y, c.Rune, nil, bg.Foreground(ToTcell(c.Fg)))
		}
	}
}
