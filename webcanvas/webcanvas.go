//go:build js && wasm

// Package webcanvas hosts a strata canvas on an HTML canvas element when
// compiled to WebAssembly. [Context] forwards every drawing call to the
// element's 2D rendering context and [Surface] turns DOM pointer events into
// strata pointer events.
package webcanvas

import (
	"image"
	"image/draw"
	"syscall/js"

	"github.com/phanxgames/strata"
)

// Context is a strata.Context over a CanvasRenderingContext2D.
type Context struct {
	ctx    js.Value
	images map[image.Image]js.Value
}

// NewContext wraps the 2D context of the given canvas element.
func NewContext(canvas js.Value) *Context {
	return &Context{
		ctx:    canvas.Call("getContext", "2d"),
		images: make(map[image.Image]js.Value),
	}
}

func (c *Context) Save()                  { c.ctx.Call("save") }
func (c *Context) Restore()               { c.ctx.Call("restore") }
func (c *Context) Translate(x, y float64) { c.ctx.Call("translate", x, y) }
func (c *Context) Rotate(angle float64)   { c.ctx.Call("rotate", angle) }
func (c *Context) Scale(x, y float64)     { c.ctx.Call("scale", x, y) }
func (c *Context) ResetTransform()        { c.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0) }

func (c *Context) BeginPath()          { c.ctx.Call("beginPath") }
func (c *Context) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *Context) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }
func (c *Context) ClosePath()          { c.ctx.Call("closePath") }

func (c *Context) QuadraticCurveTo(cx, cy, x, y float64) {
	c.ctx.Call("quadraticCurveTo", cx, cy, x, y)
}

func (c *Context) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.ctx.Call("bezierCurveTo", c1x, c1y, c2x, c2y, x, y)
}

func (c *Context) Arc(x, y, radius, start, end float64, ccw bool) {
	c.ctx.Call("arc", x, y, radius, start, end, ccw)
}

func (c *Context) Rect(x, y, w, h float64) { c.ctx.Call("rect", x, y, w, h) }

func (c *Context) Fill(rule string) { c.ctx.Call("fill", rule) }
func (c *Context) Stroke()          { c.ctx.Call("stroke") }
func (c *Context) Clip(rule string) { c.ctx.Call("clip", rule) }

func (c *Context) IsPointInPath(x, y float64, rule string) bool {
	return c.ctx.Call("isPointInPath", x, y, rule).Bool()
}

func (c *Context) IsPointInStroke(x, y float64) bool {
	return c.ctx.Call("isPointInStroke", x, y).Bool()
}

func (c *Context) ClearRect(x, y, w, h float64) { c.ctx.Call("clearRect", x, y, w, h) }

func (c *Context) SetFillStyle(style string)   { c.ctx.Set("fillStyle", style) }
func (c *Context) SetStrokeStyle(style string) { c.ctx.Set("strokeStyle", style) }
func (c *Context) SetLineWidth(width float64)  { c.ctx.Set("lineWidth", width) }
func (c *Context) SetLineCap(lineCap string)   { c.ctx.Set("lineCap", lineCap) }
func (c *Context) SetLineJoin(join string)     { c.ctx.Set("lineJoin", join) }
func (c *Context) SetMiterLimit(limit float64) { c.ctx.Set("miterLimit", limit) }

func (c *Context) SetLineDash(segments []float64, offset float64) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = s
	}
	c.ctx.Call("setLineDash", js.ValueOf(arr))
	c.ctx.Set("lineDashOffset", offset)
}

func (c *Context) SetShadow(offsetX, offsetY, blur float64, color string) {
	c.ctx.Set("shadowOffsetX", offsetX)
	c.ctx.Set("shadowOffsetY", offsetY)
	c.ctx.Set("shadowBlur", blur)
	c.ctx.Set("shadowColor", color)
}

func (c *Context) SetGlobalAlpha(alpha float64)          { c.ctx.Set("globalAlpha", alpha) }
func (c *Context) SetGlobalCompositeOperation(op string) { c.ctx.Set("globalCompositeOperation", op) }
func (c *Context) SetImageSmoothing(enabled bool)        { c.ctx.Set("imageSmoothingEnabled", enabled) }

func (c *Context) SetFont(font string)             { c.ctx.Set("font", font) }
func (c *Context) SetTextAlign(align string)       { c.ctx.Set("textAlign", align) }
func (c *Context) SetTextBaseline(baseline string) { c.ctx.Set("textBaseline", baseline) }
func (c *Context) FillText(text string, x, y float64) {
	c.ctx.Call("fillText", text, x, y)
}
func (c *Context) StrokeText(text string, x, y float64) {
	c.ctx.Call("strokeText", text, x, y)
}

func (c *Context) MeasureText(text string) (width, height float64) {
	m := c.ctx.Call("measureText", text)
	width = m.Get("width").Float()
	if asc := m.Get("actualBoundingBoxAscent"); asc.Type() == js.TypeNumber {
		height = asc.Float() + m.Get("actualBoundingBoxDescent").Float()
	}
	return width, height
}

// DrawImage uploads img to an offscreen canvas on first use and draws it.
func (c *Context) DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	el, ok := c.images[img]
	if !ok {
		el = uploadImage(img)
		c.images[img] = el
	}
	c.ctx.Call("drawImage", el, sx, sy, sw, sh, dx, dy, dw, dh)
}

// Forget drops the uploaded copy of img.
func (c *Context) Forget(img image.Image) { delete(c.images, img) }

func uploadImage(img image.Image) js.Value {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	doc := js.Global().Get("document")
	el := doc.Call("createElement", "canvas")
	el.Set("width", b.Dx())
	el.Set("height", b.Dy())
	data := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(data, rgba.Pix)
	imageData := js.Global().Get("ImageData").New(data, b.Dx(), b.Dy())
	el.Call("getContext", "2d").Call("putImageData", imageData, 0, 0)
	return el
}

var _ strata.Context = (*Context)(nil)
