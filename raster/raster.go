// Package raster is an offscreen drawing context backed by the gg 2D
// rasterizer. It implements the engine's Context method set, so a
// [strata.BasicSurface] over a raster Context renders layers to pixels and
// answers hit tests without a browser or a window.
//
// Paths are tracked twice: once inside gg for painting and once in device
// space as flattened polylines, which is what IsPointInPath and
// IsPointInStroke test against.
package raster

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/strata/internal/csscolor"
)

// state is the portion of the context saved and restored by Save/Restore.
type state struct {
	m gg.Matrix

	fill   csscolor.Color
	stroke csscolor.Color

	lineWidth  float64
	lineCap    string
	lineJoin   string
	miterLimit float64
	dash       []float64
	dashOffset float64

	alpha     float64
	composite string
	smoothing bool

	shadowX, shadowY, shadowBlur float64
	shadowColor                  string

	font     string
	fontSize float64
	align    string
	baseline string
}

func defaultState() state {
	return state{
		m:          gg.Identity(),
		fill:       csscolor.Color{A: 1},
		stroke:     csscolor.Color{A: 1},
		lineWidth:  1,
		lineCap:    "butt",
		lineJoin:   "miter",
		miterLimit: 10,
		alpha:      1,
		composite:  "source-over",
		smoothing:  true,
		font:       "10px sans-serif",
		fontSize:   10,
		align:      "start",
		baseline:   "alphabetic",
	}
}

// Context is a gg-backed drawing context. It is not safe for concurrent use.
type Context struct {
	gc    *gg.Context
	w, h  int
	st    state
	stack []state
	path  devicePath
	fonts *fontCache
}

// New creates a transparent context of the given size in pixels.
func New(width, height int) *Context {
	c := &Context{
		gc:    gg.NewContext(width, height),
		w:     width,
		h:     height,
		st:    defaultState(),
		fonts: newFontCache(),
	}
	c.SetFont(c.st.font)
	return c
}

// Size returns the context dimensions in pixels.
func (c *Context) Size() (width, height int) { return c.w, c.h }

// Snapshot returns the current pixels.
func (c *Context) Snapshot() image.Image { return c.gc.Image() }

// SavePNG writes the current pixels to path.
func (c *Context) SavePNG(path string) error { return c.gc.SavePNG(path) }

// Depth reports how many states are saved.
func (c *Context) Depth() int { return len(c.stack) }

// --- State ---

// Save pushes the current style, transform and clip.
func (c *Context) Save() {
	s := c.st
	s.dash = append([]float64(nil), c.st.dash...)
	c.stack = append(c.stack, s)
	c.gc.Push()
}

// Restore pops the last saved state. Restoring with nothing saved is a
// no-op.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.gc.Pop()
	c.gc.SetTransform(c.st.m)
	c.SetFont(c.st.font)
}

// --- Transforms ---

func (c *Context) setMatrix(m gg.Matrix) {
	c.st.m = m
	c.gc.SetTransform(m)
}

// Translate moves the origin.
func (c *Context) Translate(x, y float64) { c.setMatrix(c.st.m.Multiply(gg.Translate(x, y))) }

// Rotate rotates the user space clockwise by angle radians.
func (c *Context) Rotate(angle float64) { c.setMatrix(c.st.m.Multiply(gg.Rotate(angle))) }

// Scale scales the user space.
func (c *Context) Scale(x, y float64) { c.setMatrix(c.st.m.Multiply(gg.Scale(x, y))) }

// ResetTransform restores the identity transform.
func (c *Context) ResetTransform() { c.setMatrix(gg.Identity()) }

// Transform returns the current transform.
func (c *Context) Transform() gg.Matrix { return c.st.m }

func (c *Context) toDevice(x, y float64) (float64, float64) {
	p := c.st.m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// --- Styles ---

// parseStyle reads a CSS color, keeping prev when s is not a color, as the
// canvas does for invalid assignments.
func parseStyle(s string, prev csscolor.Color) csscolor.Color {
	if col, ok := csscolor.Parse(s); ok {
		return col
	}
	return prev
}

// SetFillStyle sets the fill color.
func (c *Context) SetFillStyle(style string) { c.st.fill = parseStyle(style, c.st.fill) }

// SetStrokeStyle sets the stroke color.
func (c *Context) SetStrokeStyle(style string) { c.st.stroke = parseStyle(style, c.st.stroke) }

// SetLineWidth sets the stroke width. Non-positive widths are ignored.
func (c *Context) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) {
		c.st.lineWidth = width
	}
}

// SetLineCap sets "butt", "round" or "square".
func (c *Context) SetLineCap(lineCap string) {
	switch lineCap {
	case "butt", "round", "square":
		c.st.lineCap = lineCap
	}
}

// SetLineJoin sets "miter", "round" or "bevel".
func (c *Context) SetLineJoin(join string) {
	switch join {
	case "miter", "round", "bevel":
		c.st.lineJoin = join
	}
}

// SetMiterLimit sets the miter limit. Non-positive limits are ignored.
func (c *Context) SetMiterLimit(limit float64) {
	if limit > 0 {
		c.st.miterLimit = limit
	}
}

// SetLineDash sets the dash pattern. An odd-length pattern is repeated, and
// a pattern with a negative entry is ignored.
func (c *Context) SetLineDash(segments []float64, offset float64) {
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) {
			return
		}
	}
	dash := append([]float64(nil), segments...)
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	c.st.dash = dash
	c.st.dashOffset = offset
}

// SetShadow records the shadow parameters. Shadows are not rendered.
func (c *Context) SetShadow(offsetX, offsetY, blur float64, color string) {
	c.st.shadowX, c.st.shadowY, c.st.shadowBlur = offsetX, offsetY, blur
	c.st.shadowColor = color
}

// SetGlobalAlpha sets the alpha applied to every paint. Values outside
// [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha >= 0 && alpha <= 1 {
		c.st.alpha = alpha
	}
}

// SetGlobalCompositeOperation records the compositing mode. Only
// source-over is rendered.
func (c *Context) SetGlobalCompositeOperation(op string) {
	if op != "" {
		c.st.composite = op
	}
}

// SetImageSmoothing records the smoothing flag. Images are always sampled
// bilinearly.
func (c *Context) SetImageSmoothing(enabled bool) { c.st.smoothing = enabled }

// State accessors used by tests and hosts.

// FillStyle returns the current fill color in CSS notation.
func (c *Context) FillStyle() string { return c.st.fill.String() }

// StrokeStyle returns the current stroke color in CSS notation.
func (c *Context) StrokeStyle() string { return c.st.stroke.String() }

// LineWidth returns the current stroke width.
func (c *Context) LineWidth() float64 { return c.st.lineWidth }

// GlobalAlpha returns the current global alpha.
func (c *Context) GlobalAlpha() float64 { return c.st.alpha }

// ImageSmoothing reports the recorded smoothing flag.
func (c *Context) ImageSmoothing() bool { return c.st.smoothing }

// brush converts col to a gg brush with global alpha applied. ok is false
// when nothing would be painted.
func (c *Context) brush(col csscolor.Color) (gg.Brush, bool) {
	a := col.A * c.st.alpha
	if a <= 0 {
		return nil, false
	}
	return gg.Solid(gg.RGBA2(col.R/255, col.G/255, col.B/255, a)), true
}

func (c *Context) applyStroke() {
	c.gc.SetLineWidth(c.st.lineWidth)
	switch c.st.lineCap {
	case "round":
		c.gc.SetLineCap(gg.LineCapRound)
	case "square":
		c.gc.SetLineCap(gg.LineCapSquare)
	default:
		c.gc.SetLineCap(gg.LineCapButt)
	}
	switch c.st.lineJoin {
	case "round":
		c.gc.SetLineJoin(gg.LineJoinRound)
	case "bevel":
		c.gc.SetLineJoin(gg.LineJoinBevel)
	default:
		c.gc.SetLineJoin(gg.LineJoinMiter)
	}
	c.gc.SetMiterLimit(c.st.miterLimit)
	if len(c.st.dash) == 0 {
		c.gc.ClearDash()
	} else {
		c.gc.SetDash(c.st.dash...)
		c.gc.SetDashOffset(c.st.dashOffset)
	}
}

func fillRule(rule string) gg.FillRule {
	if rule == "evenodd" {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

// --- Painting ---

// Fill paints the current path with the fill style. The path is kept.
func (c *Context) Fill(rule string) {
	b, ok := c.brush(c.st.fill)
	if !ok {
		return
	}
	c.gc.SetFillRule(fillRule(rule))
	c.gc.SetFillBrush(b)
	_ = c.gc.FillPreserve()
}

// Stroke outlines the current path with the stroke style. The path is
// kept.
func (c *Context) Stroke() {
	b, ok := c.brush(c.st.stroke)
	if !ok {
		return
	}
	c.applyStroke()
	c.gc.SetStrokeBrush(b)
	_ = c.gc.StrokePreserve()
}

// Clip intersects the clip region with the current path. The path is kept.
// The region is removed by the matching Restore.
func (c *Context) Clip(rule string) {
	c.gc.SetFillRule(fillRule(rule))
	c.gc.ClipPreserve()
}

// ClearRect erases the rectangle to transparent black.
func (c *Context) ClearRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	c.gc.FillRectCPU(x, y, w, h, gg.RGBA{})
}

// DrawImage copies the source rectangle of img into the destination
// rectangle under the current transform.
func (c *Context) DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if img == nil || sw <= 0 || sh <= 0 || dw == 0 || dh == 0 {
		return
	}
	b := img.Bounds()
	src := image.Rect(
		b.Min.X+int(math.Round(sx)), b.Min.Y+int(math.Round(sy)),
		b.Min.X+int(math.Round(sx+sw)), b.Min.Y+int(math.Round(sy+sh)),
	).Intersect(b)
	if src.Empty() {
		return
	}
	if c.st.alpha <= 0 {
		return
	}
	src = src.Sub(b.Min)
	c.gc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         dx,
		Y:         dy,
		DstWidth:  dw,
		DstHeight: dh,
		SrcRect:   &src,
		Opacity:   c.st.alpha,
	})
}
