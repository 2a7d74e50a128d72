//go:build js && wasm

package webcanvas

import (
	"syscall/js"

	"github.com/phanxgames/strata"
)

// Surface is a strata.Surface over an HTML canvas element.
type Surface struct {
	el    js.Value
	ctx   *Context
	funcs []js.Func
}

// NewSurface wraps the canvas element el.
func NewSurface(el js.Value) *Surface {
	return &Surface{el: el, ctx: NewContext(el)}
}

// ByID finds a canvas element by its id attribute.
func ByID(id string) *Surface {
	return NewSurface(js.Global().Get("document").Call("getElementById", id))
}

// Context implements strata.Surface.
func (s *Surface) Context() strata.Context { return s.ctx }

// Size implements strata.Surface.
func (s *Surface) Size() (int, int) {
	return s.el.Get("width").Int(), s.el.Get("height").Int()
}

// Cursor implements strata.Surface.
func (s *Surface) Cursor() string {
	c := s.el.Get("style").Get("cursor").String()
	if c == "" {
		return "default"
	}
	return c
}

// SetCursor implements strata.Surface.
func (s *Surface) SetCursor(cursor string) {
	s.el.Get("style").Set("cursor", cursor)
}

// Bind implements strata.Surface. Positions are relative to the element's
// bounding box.
func (s *Surface) Bind(event string, fn func(strata.PointerEvent)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		ev := strata.PointerEvent{Type: event, Raw: e}
		pos := e
		if t := e.Get("changedTouches"); t.Truthy() && t.Length() > 0 {
			pos = t.Index(0)
			e.Call("preventDefault")
		}
		if b := e.Get("button"); b.Type() == js.TypeNumber {
			ev.Button = b.Int()
		}
		rect := s.el.Call("getBoundingClientRect")
		ev.X = pos.Get("clientX").Float() - rect.Get("left").Float()
		ev.Y = pos.Get("clientY").Float() - rect.Get("top").Float()
		fn(ev)
		return nil
	})
	s.funcs = append(s.funcs, f)
	s.el.Call("addEventListener", event, f)
}

// Release frees the JavaScript callbacks created by Bind. The surface stops
// receiving events.
func (s *Surface) Release() {
	for _, f := range s.funcs {
		f.Release()
	}
	s.funcs = nil
}

// Loop calls c.Tick on every animation frame until stop is closed.
func Loop(c *strata.Canvas, stop <-chan struct{}) {
	var last float64
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case <-stop:
			frame.Release()
			return nil
		default:
		}
		now := args[0].Float()
		if last != 0 {
			c.Tick(float32((now - last) / 1000))
		}
		last = now
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)
}

var _ strata.Surface = (*Surface)(nil)
