// Package ebitenhost runs a strata canvas in an ebiten window. The canvas
// paints into a software raster context; each frame the host feeds ebiten
// input to the surface as pointer events, advances animations and copies the
// raster onto the screen.
package ebitenhost

import (
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/imageload"
	"github.com/phanxgames/strata/raster"
)

// Host is an ebiten.Game that drives one canvas.
type Host struct {
	Surface *strata.BasicSurface
	Canvas  *strata.Canvas
	Raster  *raster.Context
	// Loader, when set, resolves image sources. Finished loads are
	// resolved at the start of every Update.
	Loader *imageload.Loader
	// Runner, when set, replaces live input with a scripted test run.
	Runner *strata.TestRunner
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// OnUpdate runs once per tick after input and animations.
	OnUpdate func(dt float64)

	input    pointerTracker
	screen   *ebiten.Image
	frame    *image.RGBA
	cursor   string
	fps      *fpsOverlay
	runnerOK bool
}

// New creates a host with a width×height canvas. Image sources are loaded
// through a fresh imageload.Loader.
func New(width, height int) *Host {
	rc := raster.New(width, height)
	s := strata.NewBasicSurface(rc, width, height)
	h := &Host{
		Surface:  s,
		Canvas:   strata.For(s),
		Raster:   rc,
		Loader:   imageload.New(),
		input:    pointerTracker{width: width, height: height},
		cursor:   s.Cursor(),
		runnerOK: true,
	}
	h.Canvas.SetImageResolver(h.Loader.Resolve)
	return h
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if h.Loader != nil {
		h.Loader.Poll()
	}

	if h.Runner != nil && h.runnerOK {
		if err := h.Runner.Step(h.Canvas, h.Surface); err != nil {
			strata.Logger().Warn("ebitenhost: test script failed", "err", err)
			h.runnerOK = false
		}
		if h.Runner.Done() {
			return ebiten.Termination
		}
	} else {
		if !h.Surface.ProcessInjected() {
			for _, ev := range h.input.poll() {
				h.Surface.Dispatch(ev)
			}
		}
		h.Canvas.Tick(float32(dt))
	}

	if c := h.Surface.Cursor(); c != h.cursor {
		h.cursor = c
		ebiten.SetCursorShape(cursorShape(c))
	}
	if h.ShowFPS {
		if h.fps == nil {
			h.fps = newFPSOverlay()
		}
		h.fps.update(dt)
	}
	if h.OnUpdate != nil {
		h.OnUpdate(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	w, ht := h.Surface.Size()
	if h.screen == nil || h.screen.Bounds().Dx() != w || h.screen.Bounds().Dy() != ht {
		h.screen = ebiten.NewImage(w, ht)
	}
	src := h.Raster.Snapshot()
	frame := rgbaFrame(src, h.frame)
	if frame != src {
		h.frame = frame
	}
	h.screen.WritePixels(frame.Pix)
	screen.DrawImage(h.screen, nil)
	if h.ShowFPS && h.fps != nil {
		h.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The canvas keeps its own size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.Surface.Size()
}

// Run opens a window titled title and runs the host until it is closed or
// its test script finishes.
func Run(h *Host, title string) error {
	w, ht := h.Surface.Size()
	ebiten.SetWindowSize(w, ht)
	ebiten.SetWindowTitle(title)
	h.Canvas.DrawLayers(strata.DrawOptions{})
	return ebiten.RunGame(h)
}

// rgbaFrame returns src as a tightly packed RGBA image, reusing buf when it
// has the right size.
func rgbaFrame(src image.Image, buf *image.RGBA) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return rgba
	}
	if buf == nil || buf.Bounds() != image.Rect(0, 0, b.Dx(), b.Dy()) {
		buf = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(buf, buf.Bounds(), src, b.Min, draw.Src)
	return buf
}

// cursorShape maps a CSS cursor name to the closest ebiten shape.
func cursorShape(css string) ebiten.CursorShapeType {
	switch css {
	case "pointer":
		return ebiten.CursorShapePointer
	case "text", "vertical-text":
		return ebiten.CursorShapeText
	case "crosshair":
		return ebiten.CursorShapeCrosshair
	case "move", "grab", "grabbing", "all-scroll":
		return ebiten.CursorShapeMove
	case "not-allowed", "no-drop":
		return ebiten.CursorShapeNotAllowed
	case "ew-resize", "e-resize", "w-resize", "col-resize":
		return ebiten.CursorShapeEWResize
	case "ns-resize", "n-resize", "s-resize", "row-resize":
		return ebiten.CursorShapeNSResize
	case "nesw-resize", "ne-resize", "sw-resize":
		return ebiten.CursorShapeNESWResize
	case "nwse-resize", "nw-resize", "se-resize":
		return ebiten.CursorShapeNWSEResize
	}
	return ebiten.CursorShapeDefault
}
