package strata

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// monoCtx measures every rune as 10 units wide.
type monoCtx struct{ Context }

func (monoCtx) MeasureText(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 10, 10
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits", "hi there", 100, []string{"hi there"}},
		{"greedy", "the quick brown fox", 100, []string{"the quick", "brown fox"}},
		{"long word", "supercalifragilistic", 50, []string{"supercalifragilistic"}},
		{"newlines", "a\nb c", 100, []string{"a", "b c"}},
		{"word per line", "aaa bbb ccc", 40, []string{"aaa", "bbb", "ccc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(monoCtx{}, tt.text, tt.maxWidth)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "text", "text": "one\ntwo", "fontSize": 20, "lineHeight": 1.5})

	w, h := c.MeasureText(l)
	if h != 60 {
		t.Errorf("height = %v, want 60", h)
	}
	if w <= 0 {
		t.Errorf("width = %v, want > 0", w)
	}
	if l.Width != w || l.Height != h {
		t.Errorf("layer size = %vx%v, measured %vx%v", l.Width, l.Height, w, h)
	}

	c.SetLayer(l, Patch{"text": "one two three four five six", "maxWidth": 60})
	if _, h2 := c.MeasureText(l); h2 <= 30 {
		t.Errorf("wrapped height = %v, want more than one line", h2)
	}
}

func TestMeasureTextNumericText(t *testing.T) {
	c, _ := newTestCanvas(t)
	l := c.AddLayer(Patch{"type": "text", "text": 42})
	if l.Text != "42" {
		t.Fatalf("text = %q, want 42", l.Text)
	}
	if w, _ := c.MeasureText(l); w <= 0 {
		t.Errorf("width = %v", w)
	}
}

func TestTextLayerHitRect(t *testing.T) {
	c, s := newTestCanvas(t)
	var clicks int
	c.AddLayer(Patch{
		"type": "text", "text": "Hello", "x": 100, "y": 100, "fontSize": 20,
		"fillStyle": "#000000",
		EventClick:  counter(&clicks),
	})
	s.InjectClick(100, 100)
	s.FlushInjected()
	if clicks != 1 {
		t.Errorf("click on text fired %d times, want 1", clicks)
	}
	s.InjectClick(100, 150)
	s.FlushInjected()
	if clicks != 1 {
		t.Error("click below the text should miss")
	}
}
