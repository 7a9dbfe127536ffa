// ABOUTME: Scroll surfaces, page environment and input events seen by the controller
// ABOUTME: Lets the controller run against real viewports or in-memory fakes

package scroll

// Target is a scrollable surface measured in rows.
//
// Implementations must be comparable (pointer types) because the controller
// identifies the surface an event came from by equality.
type Target interface {
	ScrollTop() int    // Offset of the viewport from the resting edge
	ScrollHeight() int // Total content height
	ClientHeight() int // Visible height
	ScrollTo(y int)
}

// Environment supplies the page-level surfaces used when the controller has no
// fixed-height region or explicit scrollable ancestor of its own.
type Environment interface {
	Window() Target          // Surface that receives page scroll events
	Root() Target            // Page root; measured when it reports a scroll offset
	Body() Target            // Page body; measured otherwise
	Lookup(id string) Target // Named scrollable ancestor, nil if unknown
	AvailHeight() int        // Usable screen height, used for page surfaces
}

// EventKind identifies an input event
type EventKind int

const (
	EventScroll EventKind = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
)

func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	default:
		return "unknown"
	}
}

// Event is a scroll or pointer event delivered to a controller
type Event struct {
	Kind   EventKind
	Source Target // Surface that emitted the event; nil means the attached one
	Y      int    // Pointer row for pointer events
	Touch  bool   // Pointer event came from a touch device rather than a mouse
}
