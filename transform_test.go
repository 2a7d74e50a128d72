package strata

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestRotateCanvasDegrees(t *testing.T) {
	c, _ := newTestCanvas(t)
	before := c.SavedDepth()
	c.RotateCanvas(Patch{"rotate": 180})

	st := c.TransformState()
	assertNear(t, "Rotate", st.Rotate, math.Pi)
	if c.SavedDepth() != before+1 {
		t.Errorf("SavedDepth = %d, want %d", c.SavedDepth(), before+1)
	}

	c.RotateCanvas(Patch{"rotate": math.Pi / 2, "inDegrees": false, "autosave": false})
	assertNear(t, "Rotate radians", c.TransformState().Rotate, 1.5*math.Pi)
	if c.SavedDepth() != before+1 {
		t.Error("autosave false should not push a snapshot")
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.TranslateCanvas(Patch{"translateX": 5, "translateY": 7, "autosave": false})
	want := c.TransformState()

	c.SaveCanvas(Patch{})
	c.ScaleCanvas(Patch{"scale": 2})
	c.TranslateCanvas(Patch{"translate": 3})

	st := c.TransformState()
	assertNear(t, "ScaleX", st.ScaleX, 2)
	assertNear(t, "TranslateX", st.TranslateX, 8)

	c.RestoreCanvas(Patch{"count": 3})
	got := c.TransformState()
	if got.ScaleX != want.ScaleX || got.TranslateX != want.TranslateX || got.TranslateY != want.TranslateY {
		t.Errorf("after restore %+v, want %+v", got, want)
	}
	if c.SavedDepth() != 0 {
		t.Errorf("SavedDepth = %d, want 0", c.SavedDepth())
	}
}

func TestRestoreEmptyResetsIdentity(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.ScaleCanvas(Patch{"scaleX": 3, "autosave": false})
	c.RestoreCanvas(Patch{})

	st := c.TransformState()
	if st.ScaleX != 1 || st.ScaleY != 1 || st.Rotate != 0 || st.TranslateX != 0 {
		t.Errorf("state = %+v, want identity", st)
	}
	if len(st.Masks) != 0 {
		t.Errorf("masks = %d, want 0", len(st.Masks))
	}
}

func TestTransformStateIsCopy(t *testing.T) {
	c, _ := newTestCanvas(t)
	st := c.TransformState()
	st.ScaleX = 10
	st.Masks = append(st.Masks, &Layer{})
	if got := c.TransformState(); got.ScaleX != 1 || len(got.Masks) != 0 {
		t.Errorf("mutating the copy changed the canvas: %+v", got)
	}
}

func TestUnrotate(t *testing.T) {
	tests := []struct {
		name         string
		st           TransformState
		x, y         float64
		wantX, wantY float64
	}{
		{"identity", identityTransform(), 3, 4, 3, 4},
		{"half turn", TransformState{Rotate: math.Pi, ScaleX: 1, ScaleY: 1}, 3, 4, -3, -4},
		{"scale", TransformState{ScaleX: 2, ScaleY: 4}, 8, 8, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.st.unrotate(tt.x, tt.y)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("unrotate(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRotatedLayerHitTest(t *testing.T) {
	c, s := newTestCanvas(t)
	var clicks int
	// A 100×10 bar rotated a quarter turn covers x 95..105, y 50..150.
	c.AddLayer(Patch{
		"type": "rectangle", "x": 100, "y": 100, "width": 100, "height": 10,
		"rotate":   90,
		EventClick: counter(&clicks),
	})
	s.InjectClick(100, 60)
	s.FlushInjected()
	if clicks != 1 {
		t.Errorf("click inside rotated bar: %d, want 1", clicks)
	}
	s.InjectClick(60, 100)
	s.FlushInjected()
	if clicks != 1 {
		t.Errorf("click on the unrotated footprint fired")
	}
}
