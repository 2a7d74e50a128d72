package raster

import (
	"math"
	"testing"
)

func TestIsPointInPathRect(t *testing.T) {
	c := New(200, 200)
	c.BeginPath()
	c.Rect(10, 20, 100, 50)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"near corner", 11, 21, true},
		{"left of", 5, 40, false},
		{"below", 50, 80, false},
		{"far", 500, 500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsPointInPath(tt.x, tt.y, "nonzero"); got != tt.want {
				t.Errorf("IsPointInPath(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsPointInPathTransformed(t *testing.T) {
	c := New(200, 200)
	c.Translate(100, 100)
	c.Rotate(math.Pi / 4)
	c.BeginPath()
	c.Rect(-10, -10, 20, 20)

	if !c.IsPointInPath(100, 100, "nonzero") {
		t.Error("center of rotated square should be inside")
	}
	// The rotated square's corners reach about 14.1px along the axes.
	if !c.IsPointInPath(112, 100, "nonzero") {
		t.Error("point along the rotated diagonal should be inside")
	}
	if c.IsPointInPath(109, 91, "nonzero") {
		t.Error("point at the unrotated corner should be outside")
	}
}

func TestFillRules(t *testing.T) {
	c := New(200, 200)
	c.BeginPath()
	// Two nested squares traced in the same direction.
	c.Rect(0, 0, 100, 100)
	c.Rect(25, 25, 50, 50)

	if !c.IsPointInPath(50, 50, "nonzero") {
		t.Error("nonzero: inner square should be inside")
	}
	if c.IsPointInPath(50, 50, "evenodd") {
		t.Error("evenodd: inner square should be a hole")
	}
	if !c.IsPointInPath(10, 10, "evenodd") {
		t.Error("evenodd: ring should be inside")
	}
}

func TestIsPointInStroke(t *testing.T) {
	c := New(200, 200)
	c.SetLineWidth(10)
	c.BeginPath()
	c.MoveTo(0, 50)
	c.LineTo(100, 50)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"on line", 50, 50, true},
		{"within half width", 50, 54, true},
		{"outside half width", 50, 56, false},
		{"past end", 110, 50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsPointInStroke(tt.x, tt.y); got != tt.want {
				t.Errorf("IsPointInStroke(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestArcPath(t *testing.T) {
	c := New(200, 200)
	c.BeginPath()
	c.Arc(100, 100, 50, 0, 2*math.Pi, false)
	c.ClosePath()

	if !c.IsPointInPath(100, 100, "nonzero") {
		t.Error("circle center should be inside")
	}
	if !c.IsPointInPath(140, 100, "nonzero") {
		t.Error("point within radius should be inside")
	}
	if c.IsPointInPath(140, 140, "nonzero") {
		t.Error("point outside radius should be outside")
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		ccw        bool
		want       float64
	}{
		{"quarter cw", 0, math.Pi / 2, false, math.Pi / 2},
		{"negative wraps cw", 0, -math.Pi / 2, false, 3 * math.Pi / 2},
		{"full turn cw", 0, 4 * math.Pi, false, 2 * math.Pi},
		{"quarter ccw", 0, -math.Pi / 2, true, -math.Pi / 2},
		{"positive wraps ccw", 0, math.Pi / 2, true, -3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arcSweep(tt.start, tt.end, tt.ccw); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("arcSweep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSaveRestore(t *testing.T) {
	c := New(100, 100)
	c.SetFillStyle("#ff0000")
	c.SetLineWidth(4)
	c.Save()
	c.SetFillStyle("blue")
	c.SetLineWidth(8)
	c.Translate(10, 10)
	if c.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", c.Depth())
	}
	c.Restore()

	if got := c.FillStyle(); got != "rgb(255, 0, 0)" {
		t.Errorf("FillStyle = %q, want rgb(255, 0, 0)", got)
	}
	if got := c.LineWidth(); got != 4 {
		t.Errorf("LineWidth = %v, want 4", got)
	}
	if m := c.Transform(); m.C != 0 || m.F != 0 {
		t.Errorf("translation not restored: %+v", m)
	}

	// Restoring an empty stack is a no-op.
	c.Restore()
	if c.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth())
	}
}

func TestInvalidStyleKeepsPrevious(t *testing.T) {
	c := New(10, 10)
	c.SetFillStyle("rgba(0, 0, 255, 0.5)")
	c.SetFillStyle("not-a-color")
	if got := c.FillStyle(); got != "rgba(0, 0, 255, 0.5)" {
		t.Errorf("FillStyle = %q", got)
	}
	c.SetGlobalAlpha(2)
	if got := c.GlobalAlpha(); got != 1 {
		t.Errorf("GlobalAlpha = %v, want 1", got)
	}
	c.SetLineWidth(0)
	if got := c.LineWidth(); got != 1 {
		t.Errorf("LineWidth = %v, want 1", got)
	}
}

func TestFillPaintsPixels(t *testing.T) {
	c := New(100, 100)
	c.SetFillStyle("#ff0000")
	c.BeginPath()
	c.Rect(10, 10, 80, 80)
	c.Fill("nonzero")

	r, _, _, a := c.Snapshot().At(50, 50).RGBA()
	if r>>8 < 200 || a>>8 < 200 {
		t.Errorf("center pixel r=%d a=%d, want opaque red", r>>8, a>>8)
	}
	_, _, _, a = c.Snapshot().At(2, 2).RGBA()
	if a != 0 {
		t.Errorf("corner pixel alpha = %d, want 0", a>>8)
	}

	c.ClearRect(0, 0, 100, 100)
	_, _, _, a = c.Snapshot().At(50, 50).RGBA()
	if a != 0 {
		t.Errorf("after ClearRect alpha = %d, want 0", a>>8)
	}
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		font  string
		style string
		size  float64
		ok    bool
	}{
		{"12px sans-serif", "regular", 12, true},
		{"italic 16px Arial", "italic", 16, true},
		{"bold 12pt serif", "bold", 16, true},
		{"sans-serif", "regular", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.font, func(t *testing.T) {
			style, size, ok := parseFont(tt.font)
			if style != tt.style || math.Abs(size-tt.size) > 1e-9 || ok != tt.ok {
				t.Errorf("parseFont(%q) = %q, %v, %v; want %q, %v, %v",
					tt.font, style, size, ok, tt.style, tt.size, tt.ok)
			}
		})
	}
}

func TestMeasureTextScalesWithFont(t *testing.T) {
	c := New(100, 100)
	c.SetFont("10px sans-serif")
	w1, _ := c.MeasureText("hello")
	c.SetFont("20px sans-serif")
	w2, _ := c.MeasureText("hello")
	if w1 <= 0 || w2 <= w1 {
		t.Errorf("widths %v, %v: want positive and growing with size", w1, w2)
	}
}
