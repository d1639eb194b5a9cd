package event

import "fmt"

// EventType represents the type of engine event
type EventType int

const (
	// EventNone is the zero value and never pushed
	EventNone EventType = iota

	// EventPointerMove signals pointer movement in local viewport pixels
	// Trigger: host input poller | Consumer: InputActivity | Payload: PointerPayload
	EventPointerMove

	// EventIdleTimeout signals the idle countdown elapsed
	// Trigger: idle timer callback | Consumer: InputActivity | Payload: IdleTimeoutPayload
	EventIdleTimeout

	// EventViewportSetChanged signals a peer joined or left
	// Trigger: registry Poll | Consumer: Pool rebuild | Payload: nil
	EventViewportSetChanged

	// EventLocalShapeChanged signals this viewport moved or resized
	// Trigger: registry Poll | Consumer: SharedOffset target | Payload: ShapePayload
	EventLocalShapeChanged

	// EventResize signals the host surface changed size in pixels
	// Trigger: host input poller | Consumer: camera | Payload: ResizePayload
	EventResize

	// EventLocalMove requests shifting this viewport's origin
	// Trigger: host key input | Consumer: registry SetShape | Payload: MovePayload
	EventLocalMove
)

var eventNames = map[EventType]string{
	EventNone:               "None",
	EventPointerMove:        "PointerMove",
	EventIdleTimeout:        "IdleTimeout",
	EventViewportSetChanged: "ViewportSetChanged",
	EventLocalShapeChanged:  "LocalShapeChanged",
	EventResize:             "Resize",
	EventLocalMove:          "LocalMove",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a queued engine event
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}
