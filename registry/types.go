// Package registry discovers and tracks the live viewports sharing one coordinate space
package registry

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by operations that need a registered local viewport
var ErrNotInitialized = errors.New("registry: not initialized")

// Shape is a viewport rectangle in shared-space pixels
type Shape struct {
	X, Y int // Origin
	W, H int // Extent
}

// Center returns the geometric center of the rectangle
func (s Shape) Center() (x, y float64) {
	return float64(s.X) + float64(s.W)*0.5, float64(s.Y) + float64(s.H)*0.5
}

// Valid reports whether the extent is positive
func (s Shape) Valid() bool {
	return s.W > 0 && s.H > 0
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", s.W, s.H, s.X, s.Y)
}

// Viewport is one live peer's descriptor; read-only to consumers
type Viewport struct {
	ID    string
	Shape Shape
	Meta  map[string]string
}

// Adapter is the viewport synchronization service consumed by the engine
// All methods are called from the single engine goroutine unless noted
type Adapter interface {
	// Init registers this instance; failure is non-fatal and retried by the adapter
	Init(meta map[string]string) error

	// Viewports returns live viewports in stable slot order, including the local one
	Viewports() []Viewport

	// OnSetChanged registers the callback fired when peers join or leave
	OnSetChanged(fn func())

	// OnShapeChanged registers the callback fired when the local viewport moves or resizes
	OnShapeChanged(fn func(Shape))

	// Poll refreshes liveness bookkeeping; called once per tick
	Poll()

	// Local returns the local viewport shape
	Local() Shape

	// SetShape reports a local move or resize; callbacks fire on the next Poll
	SetShape(s Shape)

	// Close removes the local viewport from the shared set
	Close() error
}

// sameIDs reports whether two viewport lists hold the same ids in the same order
func sameIDs(ids []string, vs []Viewport) bool {
	if len(ids) != len(vs) {
		return false
	}
	for i := range vs {
		if ids[i] != vs[i].ID {
			return false
		}
	}
	return true
}

func collectIDs(dst []string, vs []Viewport) []string {
	dst = dst[:0]
	for i := range vs {
		dst = append(dst, vs[i].ID)
	}
	return dst
}
