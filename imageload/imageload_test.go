package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/raster"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr error
	}{
		{"base64", "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")), "hi", nil},
		{"escaped", "data:,a%20b", "a b", nil},
		{"no comma", "data:image/png;base64", "", ErrBadDataURL},
		{"not data", "http://x", "", ErrBadDataURL},
		{"empty", "data:,", "", ErrEmptyData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDataURL(tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("data = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadSources(t *testing.T) {
	data := pngBytes(t, 3, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hero.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	ld := New()
	ld.FS = fstest.MapFS{"sprites/hero.png": {Data: data}}
	ld.Timeout = 5 * time.Second

	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{"file system", "sprites/hero.png", false},
		{"leading slash", "/sprites/hero.png", false},
		{"http", srv.URL + "/hero.png", false},
		{"data url", "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), false},
		{"missing file", "sprites/none.png", true},
		{"http 404", srv.URL + "/none.png", true},
		{"not an image", "data:,hello", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ld.Load(context.Background(), tt.src)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
				t.Errorf("size = %v, want 3x2", b)
			}
		})
	}
}

func TestResolveSharesImages(t *testing.T) {
	ld := New()
	ld.Sync = true
	ld.FS = fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1)}}

	a := ld.Resolve("a.png")
	if a != ld.Resolve("a.png") {
		t.Error("same source should share one image")
	}
	if _, ok := a.Image(); !ok {
		t.Error("sync load should be ready at once")
	}

	broken := ld.Resolve("missing.png")
	if _, ok := broken.Image(); ok {
		t.Error("failed load should stay pending")
	}
}

func TestBackgroundLoadResumesPass(t *testing.T) {
	s := strata.NewBasicSurface(raster.New(50, 50), 50, 50)
	t.Cleanup(strata.ClearCache)
	c := strata.For(s)

	ld := New()
	ld.FS = fstest.MapFS{"tile.png": {Data: pngBytes(t, 8, 4)}}
	c.SetImageResolver(ld.Resolve)

	var loaded int
	l := c.AddLayer(strata.Patch{"type": "image", "source": "tile.png", strata.EventLoad: func(*strata.Event) { loaded++ }})
	if res := c.DrawLayers(strata.DrawOptions{}); !res.Suspended {
		t.Fatal("pass should wait for the background load")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ld.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if loaded != 1 {
		t.Errorf("load fired %d times, want 1", loaded)
	}
	if l.Width != 8 || l.Height != 4 {
		t.Errorf("layer size = %vx%v, want 8x4", l.Width, l.Height)
	}
	if ld.Pending() != 0 || ld.Poll() != 0 {
		t.Error("nothing should be left to poll")
	}
}
