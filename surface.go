package strata

// PointerEvent is a raw pointer or touch event delivered by a surface.
type PointerEvent struct {
	Type string
	// X and Y are relative to the surface's top-left corner in CSS pixels.
	X, Y   float64
	Button int
	// Raw is the host's native event value, if any.
	Raw any
}

// Surface is a drawing target with its own event stream: an HTML canvas
// element, an ebiten window or an offscreen buffer.
type Surface interface {
	// Context returns the drawing context, or nil when none is available.
	Context() Context
	Size() (width, height int)
	// Bind registers fn for raw events of the given type.
	Bind(event string, fn func(PointerEvent))
	Cursor() string
	SetCursor(cursor string)
}

// BasicSurface is a Surface over any Context. Hosts feed it events with
// Dispatch or the Inject helpers.
type BasicSurface struct {
	ctx      Context
	width    int
	height   int
	cursor   string
	handlers map[string][]func(PointerEvent)

	injectQueue []PointerEvent
}

// NewBasicSurface creates a surface of the given size drawing into ctx.
// ctx may be nil, in which case every drawing operation is a no-op.
func NewBasicSurface(ctx Context, width, height int) *BasicSurface {
	return &BasicSurface{
		ctx:      ctx,
		width:    width,
		height:   height,
		cursor:   "default",
		handlers: make(map[string][]func(PointerEvent)),
	}
}

// Context implements Surface.
func (s *BasicSurface) Context() Context { return s.ctx }

// Size implements Surface.
func (s *BasicSurface) Size() (int, int) { return s.width, s.height }

// Resize changes the reported surface size.
func (s *BasicSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Bind implements Surface.
func (s *BasicSurface) Bind(event string, fn func(PointerEvent)) {
	s.handlers[event] = append(s.handlers[event], fn)
}

// Bound reports how many handlers are bound for event.
func (s *BasicSurface) Bound(event string) int { return len(s.handlers[event]) }

// Cursor implements Surface.
func (s *BasicSurface) Cursor() string { return s.cursor }

// SetCursor implements Surface.
func (s *BasicSurface) SetCursor(cursor string) { s.cursor = cursor }

// Dispatch delivers ev to every handler bound for ev.Type.
func (s *BasicSurface) Dispatch(ev PointerEvent) {
	for _, fn := range s.handlers[ev.Type] {
		fn(ev)
	}
}
