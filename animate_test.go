package strata

import (
	"strings"
	"testing"
	"time"
)

const tick = float32(0.05)

func TestAnimateFillStyle(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetDebugMode(true)
	l := c.AddLayer(Patch{
		"type": "rectangle", "x": 50, "y": 50, "width": 20, "height": 20,
		"fillStyle": "#000000",
	})

	var completed int
	c.AnimateLayer(l, Patch{"fillStyle": "#ff0000"}, AnimateOptions{
		Duration: 100 * time.Millisecond,
		Complete: func(*Layer) { completed++ },
	})

	c.Tick(tick)
	if !l.Animating() {
		t.Fatal("layer should be animating after the first tick")
	}
	if l.FillStyle == "#000000" || l.FillStyle == "rgb(255, 0, 0)" {
		t.Errorf("mid-animation fillStyle = %q", l.FillStyle)
	}
	for i := 0; i < 4; i++ {
		c.Tick(tick)
	}

	if l.FillStyle != "rgb(255, 0, 0)" {
		t.Errorf("fillStyle = %q, want rgb(255, 0, 0)", l.FillStyle)
	}
	if completed != 1 {
		t.Errorf("Complete ran %d times, want 1", completed)
	}
	if c.Animating() {
		t.Error("canvas still animating after completion")
	}
	if c.DebugStats().Passes < 1 {
		t.Error("animation should have triggered at least one redraw")
	}
}

func TestAnimationQueueIsFIFO(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle", "x": 0})
	var order []string
	opts := func(name string) AnimateOptions {
		return AnimateOptions{
			Duration: 100 * time.Millisecond,
			Easing:   "linear",
			Complete: func(*Layer) { order = append(order, name) },
		}
	}
	c.AnimateLayer(l, Patch{"x": 100}, opts("first"))
	c.AnimateLayer(l, Patch{"x": 40}, opts("second"))

	c.Tick(0.1)
	if l.X != 100 {
		t.Errorf("after first X = %v, want 100", l.X)
	}
	c.Tick(0.1)
	if l.X != 40 {
		t.Errorf("after second X = %v, want 40", l.X)
	}
	if got := strings.Join(order, ","); got != "first,second" {
		t.Errorf("completion order = %s", got)
	}
}

func TestStopLayer(t *testing.T) {
	tests := []struct {
		name       string
		clearQueue bool
		wantX      float64
	}{
		{"clear queue", true, -1},
		{"keep queue", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCanvas(t)
			l := c.AddLayer(Patch{"type": "rectangle", "x": 0})
			opts := AnimateOptions{Duration: 100 * time.Millisecond, Easing: "linear"}
			c.AnimateLayer(l, Patch{"x": 100}, opts)
			c.AnimateLayer(l, Patch{"x": 0}, opts)

			c.Tick(tick)
			stopped := l.X
			if stopped <= 0 || stopped >= 100 {
				t.Fatalf("mid-animation X = %v", stopped)
			}
			c.StopLayer(l, tt.clearQueue)
			if l.X != stopped {
				t.Errorf("StopLayer moved X from %v to %v", stopped, l.X)
			}

			c.Tick(0.1)
			want := tt.wantX
			if want < 0 {
				want = stopped
			}
			if l.X != want {
				t.Errorf("X = %v, want %v", l.X, want)
			}
			if c.Animating() {
				t.Error("canvas still animating")
			}
		})
	}
}

func TestDelayLayer(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle", "x": 0})
	c.DelayLayer(l, 100*time.Millisecond)
	c.AnimateLayer(l, Patch{"x": 100}, AnimateOptions{Duration: 100 * time.Millisecond})

	c.Tick(tick)
	if l.X != 0 {
		t.Errorf("X moved during the delay: %v", l.X)
	}
	c.Tick(0.1)
	if l.X <= 0 || l.X >= 100 {
		t.Errorf("X = %v, want mid-animation", l.X)
	}
	c.Tick(0.1)
	if l.X != 100 {
		t.Errorf("X = %v, want 100", l.X)
	}
}

func TestAnimateHiddenProperty(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle", "width": 0})
	c.AnimateLayer(l, Patch{"width": 100}, AnimateOptions{Duration: 100 * time.Millisecond})

	c.Tick(tick)
	v, ok := l.Hidden("width")
	if !ok {
		t.Fatal("_width should exist while animating")
	}
	if v != l.Width {
		t.Errorf("_width = %v, Width = %v", v, l.Width)
	}

	c.Tick(0.1)
	if _, ok := l.Hidden("width"); ok {
		t.Error("_width should be removed after completion")
	}
	if l.Width != 100 {
		t.Errorf("Width = %v, want 100", l.Width)
	}
}

func TestAnimateMapAndPoints(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{
		"type":   "line",
		"data":   map[string]any{"n": 0},
		"points": []PathPoint{{X: 0, Y: 0}, {X: 10, Y: 10}},
	})
	c.AnimateLayer(l, Patch{
		"data":   map[string]any{"n": 10},
		"points": []PathPoint{{X: 0, Y: 0}, {X: 20, Y: 10}},
	}, AnimateOptions{Duration: 100 * time.Millisecond, Easing: "linear"})

	c.Tick(tick)
	if _, ok := l.Alias("data.n"); !ok {
		t.Error("data.n alias missing while animating")
	}
	if v, ok := l.Alias("points.1.x"); !ok || v != l.Points[1].X {
		t.Errorf("points.1.x = %v (%v), point X = %v", v, ok, l.Points[1].X)
	}
	if _, ok := l.Alias("points.1.y"); ok {
		t.Error("unchanged coordinate should not be tweened")
	}

	c.Tick(0.1)
	if l.Data["n"] != 10.0 {
		t.Errorf("data.n = %v, want 10", l.Data["n"])
	}
	if l.Points[1].X != 20 {
		t.Errorf("points[1].X = %v, want 20", l.Points[1].X)
	}
	if _, ok := l.Alias("data.n"); ok {
		t.Error("alias should be removed after completion")
	}
}

func TestAnimateRelative(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle", "x": 10})
	c.AnimateLayer(l, Patch{"x": "+=30"}, AnimateOptions{Duration: 50 * time.Millisecond})
	c.Tick(0.1)
	if l.X != 40 {
		t.Errorf("X = %v, want 40", l.X)
	}
}

func TestAnimateEvents(t *testing.T) {
	c, _ := newTestCanvas(t)
	var events []string
	record := func(e *Event) {
		if n := len(events); n == 0 || events[n-1] != e.Type {
			events = append(events, e.Type)
		}
	}
	l := c.AddLayer(Patch{
		"type":            "rectangle",
		EventAnimateStart: record,
		EventAnimate:      record,
		EventAnimateEnd:   record,
	})
	c.AnimateLayer(l, Patch{"x": 10}, AnimateOptions{Duration: 100 * time.Millisecond})
	for i := 0; i < 3; i++ {
		c.Tick(tick)
	}
	if got := strings.Join(events, ","); got != "animatestart,animate,animateend" {
		t.Errorf("events = %s", got)
	}
}

func TestFunctionLayersAreNotAnimated(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "function", "x": 0, "fn": func(Context, *Layer) {}})
	c.AnimateLayer(l, Patch{"x": 100}, AnimateOptions{Duration: time.Millisecond})
	if c.Animating() {
		t.Error("function layer should not be queued")
	}
}

func TestEasing(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"", true},
		{"linear", true},
		{"swing", true},
		{"easeOutBounce", true},
		{"wobble", false},
	}
	for _, tt := range tests {
		fn, ok := Easing(tt.name)
		if ok != tt.ok {
			t.Errorf("Easing(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if fn == nil {
			t.Errorf("Easing(%q) returned nil", tt.name)
		}
	}
}

func TestChainFromComplete(t *testing.T) {
	c, _ := newTestCanvas(t)
	a := c.AddLayer(Patch{"type": "rectangle", "name": "a"})
	b := c.AddLayer(Patch{"type": "rectangle", "name": "b"})
	c.AnimateLayer(a, Patch{"x": 100}, AnimateOptions{
		Duration: 50 * time.Millisecond,
		Complete: func(*Layer) {
			c.AnimateLayer(b, Patch{"x": 100}, AnimateOptions{Duration: 50 * time.Millisecond})
		},
	})
	for i := 0; i < 20; i++ {
		c.Tick(0.02)
	}
	if a.X != 100 || b.X != 100 {
		t.Errorf("a.X = %v, b.X = %v, want 100 and 100", a.X, b.X)
	}
	if c.Animating() {
		t.Error("canvas still animating")
	}
}

func TestRequeueSameLayerFromComplete(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle"})
	var rounds int
	var again func(*Layer)
	again = func(l *Layer) {
		rounds++
		if rounds < 3 {
			c.AnimateLayer(l, Patch{"x": "+=10"}, AnimateOptions{Duration: 40 * time.Millisecond, Complete: again})
		}
	}
	c.AnimateLayer(l, Patch{"x": "+=10"}, AnimateOptions{Duration: 40 * time.Millisecond, Complete: again})
	for i := 0; i < 20; i++ {
		c.Tick(0.02)
	}
	if rounds != 3 {
		t.Errorf("rounds = %d, want 3", rounds)
	}
	if l.X != 30 {
		t.Errorf("X = %v, want 30", l.X)
	}
}

func TestOneRedrawPerTick(t *testing.T) {
	c, _ := newTestCanvas(t)
	var passes int
	c.AddLayer(Patch{"type": "function", "fn": func(Context, *Layer) { passes++ }})
	a := c.AddLayer(Patch{"type": "rectangle"})
	b := c.AddLayer(Patch{"type": "rectangle"})
	c.AnimateLayer(a, Patch{"x": 100}, AnimateOptions{Duration: 100 * time.Millisecond, Easing: "linear"})
	c.AnimateLayer(b, Patch{"y": 100}, AnimateOptions{Duration: 200 * time.Millisecond, Easing: "linear"})

	for tick := 0; c.Animating(); tick++ {
		if tick > 20 {
			t.Fatal("animations did not finish")
		}
		passes = 0
		c.Tick(0.02)
		if passes != 1 {
			t.Errorf("tick %d: %d redraws, want 1", tick, passes)
		}
	}
	if a.X != 100 || b.Y != 100 {
		t.Errorf("a.X = %v, b.Y = %v, want 100 and 100", a.X, b.Y)
	}

	passes = 0
	c.Tick(0.02)
	if passes != 0 {
		t.Errorf("idle tick redrew %d times", passes)
	}
}

func TestReanimateAfterStopTicksOnce(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle", "x": 0})
	opts := AnimateOptions{Duration: 100 * time.Millisecond, Easing: "linear"}
	c.AnimateLayer(l, Patch{"x": 100}, opts)
	c.StopLayer(l, true)
	c.AnimateLayer(l, Patch{"x": 100}, opts)

	c.Tick(tick)
	if l.X < 49 || l.X > 51 {
		t.Errorf("X = %v after half the duration, want about 50", l.X)
	}
}
