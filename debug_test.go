package strata

import (
	"fmt"
	"strings"
	"testing"
)

func TestDebugMode_IndexMismatchPanics(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetDebugMode(true)
	c.AddLayer(Patch{"type": "rectangle", "name": "a"})
	l := c.AddLayer(Patch{"type": "rectangle", "name": "b"})
	l.index = 7

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on corrupted index, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "strata debug") || !strings.Contains(msg, `"b"`) {
			t.Errorf("panic message = %s", msg)
		}
	}()
	c.DrawLayers(DrawOptions{})
}

func TestReleaseMode_IndexMismatchNoPanic(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "rectangle"})
	l.index = 3
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic, got: %v", r)
		}
	}()
	c.DrawLayers(DrawOptions{})
}

func TestDebugStats(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetDebugMode(true)
	c.AddLayer(Patch{"type": "rectangle"})
	c.AddLayer(Patch{"type": "rectangle", "visible": false})
	c.AddLayer(Patch{"type": "image", "source": NewPendingImage()})

	c.DrawLayers(DrawOptions{})
	st := c.DebugStats()
	if st.Passes != 1 || st.Suspended != 1 {
		t.Errorf("stats = %+v, want one suspended pass", st)
	}
	if st.Drawn != 1 {
		t.Errorf("Drawn = %d, want 1", st.Drawn)
	}

	c.SetDebugMode(false)
	if c.DebugStats() != (DebugStats{}) {
		t.Error("disabling debug mode should reset stats")
	}
}
