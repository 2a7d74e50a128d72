package strata

import "image"

// Context is the immediate-mode 2D drawing API the engine paints through.
// Its method set mirrors the HTML canvas 2D rendering context: paths are
// built in user space under the current transform, IsPointInPath and
// IsPointInStroke take untransformed surface coordinates, and Fill/Stroke
// keep the current path.
//
// Style values are CSS strings ("#ff0000", "rgba(0, 0, 0, 0.5)",
// "transparent"); fill rules are "nonzero" or "evenodd"; angles are radians.
type Context interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)
	ResetTransform()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(x, y, radius, start, end float64, ccw bool)
	Rect(x, y, w, h float64)
	ClosePath()

	Fill(rule string)
	Stroke()
	Clip(rule string)
	IsPointInPath(x, y float64, rule string) bool
	IsPointInStroke(x, y float64) bool
	ClearRect(x, y, w, h float64)

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(width float64)
	SetLineCap(lineCap string)
	SetLineJoin(join string)
	SetMiterLimit(limit float64)
	SetLineDash(segments []float64, offset float64)
	SetShadow(offsetX, offsetY, blur float64, color string)
	SetGlobalAlpha(alpha float64)
	SetGlobalCompositeOperation(op string)
	SetImageSmoothing(enabled bool)

	SetFont(font string)
	SetTextAlign(align string)
	SetTextBaseline(baseline string)
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)
	MeasureText(text string) (width, height float64)

	// DrawImage copies the source rectangle (sx, sy, sw, sh) of img into the
	// destination rectangle (dx, dy, dw, dh) under the current transform.
	DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64)
}

// Snapshotter is implemented by contexts that can hand back their pixels.
type Snapshotter interface {
	Snapshot() image.Image
}
