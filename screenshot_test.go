package strata

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotWritesPNG(t *testing.T) {
	c, s := newTestCanvas(t)
	c.AddLayer(Patch{"type": "rectangle", "x": 100, "y": 100, "width": 50, "height": 50, "fillStyle": "#ff0000"})
	c.DrawLayers(DrawOptions{})

	dir := filepath.Join(t.TempDir(), "shots")
	path, err := Screenshot(s, dir, "red box")
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if !strings.HasSuffix(path, "_red_box.png") {
		t.Errorf("path = %q, want suffix _red_box.png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("size = %v, want 200x200", b)
	}
	r, g, _, a := img.At(100, 100).RGBA()
	if r>>8 != 255 || g != 0 || a>>8 != 255 {
		t.Errorf("center pixel = %v, want opaque red", img.At(100, 100))
	}
}

func TestScreenshotWithoutSnapshotter(t *testing.T) {
	s := NewBasicSurface(nil, 10, 10)
	if _, err := Screenshot(s, t.TempDir(), "x"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("err = %v, want ErrNoSnapshot", err)
	}
}
