package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/strata"
)

// pointerSample is one frame of raw pointer state.
type pointerSample struct {
	x, y   float64
	inside bool
	down   bool
	button int
	touch  bool
}

// pointerTracker turns per-frame pointer state into DOM-style pointer
// events.
type pointerTracker struct {
	prev   pointerSample
	seen   bool
	width  int
	height int
	buf    []strata.PointerEvent
}

// poll reads ebiten's mouse and first touch and returns the events for this
// frame.
func (t *pointerTracker) poll() []strata.PointerEvent {
	var s pointerSample
	touches := ebiten.AppendTouchIDs(nil)
	if len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		s = pointerSample{x: float64(tx), y: float64(ty), down: true, touch: true, inside: true}
	} else if t.prev.touch && t.prev.down {
		s = pointerSample{x: t.prev.x, y: t.prev.y, touch: true, inside: true}
	} else {
		mx, my := ebiten.CursorPosition()
		s.x, s.y = float64(mx), float64(my)
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			s.down, s.button = true, 0
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			s.down, s.button = true, 1
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			s.down, s.button = true, 2
		}
		s.inside = ebiten.IsFocused() && s.x >= 0 && s.y >= 0 && s.x < float64(t.width) && s.y < float64(t.height)
	}
	return t.step(s)
}

// step compares s with the previous sample. A release yields mouseup then
// click; leaving the window yields mouseout.
func (t *pointerTracker) step(s pointerSample) []strata.PointerEvent {
	t.buf = t.buf[:0]
	prev := t.prev
	if !t.seen {
		prev = pointerSample{x: s.x, y: s.y, inside: s.inside, touch: s.touch}
		t.seen = true
	}
	t.prev = s

	if s.touch {
		switch {
		case s.down && !prev.down:
			t.emit(strata.EventTouchStart, s)
		case s.down && (s.x != prev.x || s.y != prev.y):
			t.emit(strata.EventTouchMove, s)
		case !s.down && prev.down:
			t.emit(strata.EventTouchEnd, s)
		}
		return t.buf
	}

	if !s.inside {
		if prev.inside {
			t.emit(strata.EventMouseOut, s)
		}
		return t.buf
	}
	if s.x != prev.x || s.y != prev.y || !prev.inside {
		t.emit(strata.EventMouseMove, s)
	}
	switch {
	case s.down && !prev.down:
		t.emit(strata.EventMouseDown, s)
	case !s.down && prev.down:
		s.button = prev.button
		t.emit(strata.EventMouseUp, s)
		if s.button == 2 {
			t.emit(strata.EventContextMenu, s)
		} else {
			t.emit(strata.EventClick, s)
		}
	}
	return t.buf
}

func (t *pointerTracker) emit(typ string, s pointerSample) {
	t.buf = append(t.buf, strata.PointerEvent{Type: typ, X: s.x, Y: s.y, Button: s.button})
}
