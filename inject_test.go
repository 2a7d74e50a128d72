package strata

import "testing"

func TestInjectClick(t *testing.T) {
	c, s := newTestCanvas(t)
	var clicked int
	c.AddLayer(Patch{"type": "rectangle", "x": 50, "y": 50, "width": 100, "height": 100, EventClick: counter(&clicked)})

	s.InjectClick(50, 50)
	if s.Pending() != 3 {
		t.Fatalf("expected 3 queued events, got %d", s.Pending())
	}

	// Frames 1 and 2: press and release.
	s.ProcessInjected()
	s.ProcessInjected()
	if clicked != 0 {
		t.Error("click should not fire before the click event is delivered")
	}

	// Frame 3: click.
	s.ProcessInjected()
	if s.Pending() != 0 {
		t.Fatalf("expected 0 remaining events, got %d", s.Pending())
	}
	if clicked != 1 {
		t.Errorf("click fired %d times, want 1", clicked)
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewBasicSurface(nil, 10, 10)
	s.InjectDrag(10, 10, 200, 200, 4)

	want := []PointerEvent{
		{Type: EventMouseDown, X: 10, Y: 10},
		{Type: EventMouseMove, X: 57.5, Y: 57.5},
		{Type: EventMouseMove, X: 105, Y: 105},
		{Type: EventMouseMove, X: 152.5, Y: 152.5},
		{Type: EventMouseMove, X: 200, Y: 200},
		{Type: EventMouseUp, X: 200, Y: 200},
		{Type: EventClick, X: 200, Y: 200},
	}
	var got []PointerEvent
	s.Bind(EventMouseDown, func(ev PointerEvent) { got = append(got, ev) })
	s.Bind(EventMouseMove, func(ev PointerEvent) { got = append(got, ev) })
	s.Bind(EventMouseUp, func(ev PointerEvent) { got = append(got, ev) })
	s.Bind(EventClick, func(ev PointerEvent) { got = append(got, ev) })
	s.FlushInjected()

	if len(got) != len(want) {
		t.Fatalf("delivered %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].X != want[i].X || got[i].Y != want[i].Y {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInjectDrag_MinSteps(t *testing.T) {
	s := NewBasicSurface(nil, 10, 10)
	s.InjectDrag(0, 0, 100, 100, 0)
	// press + 1 move + release + click
	if s.Pending() != 4 {
		t.Errorf("expected 4 events with steps clamped to 1, got %d", s.Pending())
	}
}

func TestProcessInjected_EmptyQueue(t *testing.T) {
	s := NewBasicSurface(nil, 10, 10)
	if s.ProcessInjected() {
		t.Error("ProcessInjected on an empty queue should report false")
	}
}

func TestInjectLeave(t *testing.T) {
	s := NewBasicSurface(nil, 10, 10)
	var left int
	s.Bind(EventMouseOut, func(PointerEvent) { left++ })
	s.InjectLeave()
	s.FlushInjected()
	if left != 1 {
		t.Errorf("mouseout delivered %d times, want 1", left)
	}
}
