package strata

import "math"

// Patch is a partial set of layer properties keyed by property name, as in
// "fillStyle" or "x". Values may be numbers, strings, bools, slices, maps,
// handlers (keyed by event name) or "+=N"/"-=N" increments.
type Patch map[string]any

// DrawFunc paints a layer. It builds the layer's path on ctx, calls
// [Canvas.DetectEvents] once the path exists, and finishes with
// [Canvas.ClosePath] (or [Canvas.RestoreTransform] for shapes that do not
// fill a path).
type DrawFunc func(c *Canvas, ctx Context, l *Layer)

// Handler receives layer events: pointer events, drag lifecycle, and
// add/remove/change/move/animate/load lifecycle.
type Handler func(e *Event)

// Hooks maps event names to handlers. Used for canvas-level and
// library-global observation points.
type Hooks map[string]Handler

// Event is passed to every [Handler].
type Event struct {
	Canvas *Canvas
	Layer  *Layer
	Type   string

	// X and Y are the cached pointer coordinates of the current sample,
	// relative to the surface.
	X, Y float64

	// Pointer is the raw event that produced the current sample.
	Pointer PointerEvent

	// Arg carries event-specific data: the changed properties for
	// "change", the animation progress (0..1) for "animate".
	Arg any
}

// PathPoint is one point of a line, quadratic or bezier path. Quadratic
// segments use CX1/CY1 as their control point; bezier segments use both
// control points. The first point of a path only uses X and Y.
type PathPoint struct {
	X, Y     float64
	CX1, CY1 float64
	CX2, CY2 float64
}

// Pt returns a PathPoint with only its end coordinates set.
func Pt(x, y float64) PathPoint { return PathPoint{X: x, Y: y} }

// --- Event names ---

const (
	EventClick       = "click"
	EventDblClick    = "dblclick"
	EventMouseDown   = "mousedown"
	EventMouseUp     = "mouseup"
	EventMouseMove   = "mousemove"
	EventMouseOver   = "mouseover"
	EventMouseOut    = "mouseout"
	EventTouchStart  = "touchstart"
	EventTouchMove   = "touchmove"
	EventTouchEnd    = "touchend"
	EventPointerDown = "pointerdown"
	EventPointerMove = "pointermove"
	EventPointerUp   = "pointerup"
	EventContextMenu = "contextmenu"

	EventAdd          = "add"
	EventRemove       = "remove"
	EventChange       = "change"
	EventMove         = "move"
	EventLoad         = "load"
	EventAnimateStart = "animatestart"
	EventAnimate      = "animate"
	EventAnimateEnd   = "animateend"
	EventDelay        = "delay"
	EventStop         = "stop"
	EventDragStart    = "dragstart"
	EventDrag         = "drag"
	EventDragStop     = "dragstop"
	EventDragCancel   = "dragcancel"
)

// pointerEvents are the raw surface events a layer handler can subscribe to.
var pointerEvents = map[string]bool{
	EventClick: true, EventDblClick: true, EventMouseDown: true, EventMouseUp: true,
	EventMouseMove: true, EventMouseOver: true, EventMouseOut: true,
	EventTouchStart: true, EventTouchMove: true, EventTouchEnd: true,
	EventPointerDown: true, EventPointerMove: true, EventPointerUp: true,
	EventContextMenu: true,
}

// tangibleEvents are blocked for intangible layers.
var tangibleEvents = map[string]bool{
	EventMouseDown: true, EventMouseMove: true, EventMouseUp: true,
	EventMouseOver: true, EventMouseOut: true,
	EventTouchStart: true, EventTouchMove: true, EventTouchEnd: true,
	EventPointerDown: true, EventPointerMove: true, EventPointerUp: true,
}

var touchToMouse = map[string]string{
	EventTouchStart: EventMouseDown,
	EventTouchEnd:   EventMouseUp,
	EventTouchMove:  EventMouseMove,
}

var mouseToTouch = map[string]string{
	EventMouseDown: EventTouchStart,
	EventMouseUp:   EventTouchEnd,
	EventMouseMove: EventTouchMove,
}

// IsPointerEvent reports whether name is a raw pointer or touch event.
func IsPointerEvent(name string) bool { return pointerEvents[name] }

// degToRad converts degrees to radians.
const degToRad = math.Pi / 180
