package strata

import "math"

// builtinShapes returns the draw routines of the base configuration.
func builtinShapes() map[string]DrawFunc {
	return map[string]DrawFunc{
		"rectangle": drawRect,
		"arc":       drawArc,
		"circle":    drawArc,
		"ellipse":   drawEllipse,
		"polygon":   drawPolygon,
		"line":      drawLine,
		"quadratic": drawQuadratic,
		"bezier":    drawBezier,
		"text":      drawText,
		"image":     drawImage,
		"function":  drawFunction,

		"save":      drawSave,
		"restore":   drawRestore,
		"rotate":    func(c *Canvas, ctx Context, l *Layer) { c.rotateCanvas(ctx, l) },
		"scale":     func(c *Canvas, ctx Context, l *Layer) { c.scaleCanvas(ctx, l) },
		"translate": func(c *Canvas, ctx Context, l *Layer) { c.translateCanvas(ctx, l) },
		"clear":     func(c *Canvas, ctx Context, l *Layer) { c.clear(ctx, l) },
	}
}

// --- Paths ---

func drawRect(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, l.Width, l.Height)
	c.SetGlobalProps(ctx, l)
	ctx.BeginPath()
	cx, cy := l.Center()
	x, y := cx-l.Width/2, cy-l.Height/2
	if r := math.Abs(l.CornerRadius); r != 0 {
		roundRect(ctx, x, y, l.Width, l.Height, r)
	} else {
		ctx.Rect(x, y, l.Width, l.Height)
	}
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// roundRect traces a rectangle with corners of radius r, clamped to half the
// shorter side.
func roundRect(ctx Context, x, y, w, h, r float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r = math.Min(r, math.Min(w, h)/2)
	ctx.MoveTo(x+r, y)
	ctx.LineTo(x+w-r, y)
	ctx.Arc(x+w-r, y+r, r, -math.Pi/2, 0, false)
	ctx.LineTo(x+w, y+h-r)
	ctx.Arc(x+w-r, y+h-r, r, 0, math.Pi/2, false)
	ctx.LineTo(x+r, y+h)
	ctx.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi, false)
	ctx.LineTo(x, y+r)
	ctx.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2, false)
	ctx.ClosePath()
}

// conicAngles converts Start and End to radians measured clockwise from
// north.
func conicAngles(l *Layer) (start, end float64) {
	k := toRad(l)
	start = l.Start*k - math.Pi/2
	if !l.InDegrees && l.End == 360 {
		end = 2 * math.Pi
	} else {
		end = l.End*k - math.Pi/2
	}
	return start, end
}

func drawArc(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, l.Radius*2, l.Radius*2)
	c.SetGlobalProps(ctx, l)
	ctx.BeginPath()
	cx, cy := l.Center()
	start, end := conicAngles(l)
	ctx.Arc(cx, cy, l.Radius, start, end, l.CCW)
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// ellipseSegments is the number of line segments per full turn used to trace
// an ellipse.
const ellipseSegments = 64

func drawEllipse(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, l.Width, l.Height)
	c.SetGlobalProps(ctx, l)
	ctx.BeginPath()
	cx, cy := l.Center()
	rx, ry := l.Width/2, l.Height/2
	start, end := conicAngles(l)
	sweep := arcSweep(start, end, l.CCW)
	n := max(int(math.Ceil(math.Abs(sweep)/(2*math.Pi)*ellipseSegments)), 1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		x, y := cx+rx*math.Cos(a), cy+ry*math.Sin(a)
		if i == 0 {
			ctx.MoveTo(x, y)
		} else {
			ctx.LineTo(x, y)
		}
	}
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// arcSweep returns the signed angle an arc from start to end covers,
// following the canvas arc rules.
func arcSweep(start, end float64, ccw bool) float64 {
	const turn = 2 * math.Pi
	sweep := end - start
	if !ccw {
		if sweep >= turn {
			return turn
		}
		for sweep < 0 {
			sweep += turn
		}
		return sweep
	}
	if sweep <= -turn {
		return -turn
	}
	for sweep > 0 {
		sweep -= turn
	}
	return sweep
}

// drawPolygon traces a regular polygon with Sides vertices on a circle of
// Radius. A nonzero Spread pulls (positive) or pushes (negative) the
// midpoint of every side relative to the apothem, producing stars.
func drawPolygon(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, l.Radius*2, l.Radius*2)
	c.SetGlobalProps(ctx, l)
	cx, cy := l.Center()
	ctx.BeginPath()
	if l.Sides > 0 {
		dtheta := 2 * math.Pi / float64(l.Sides)
		half := dtheta / 2
		theta := half + math.Pi/2
		apothem := l.Radius * math.Cos(half)
		for i := 0; i < l.Sides; i++ {
			ctx.LineTo(cx+l.Radius*math.Cos(theta), cy+l.Radius*math.Sin(theta))
			if l.Spread != 0 {
				d := apothem - apothem*l.Spread
				ctx.LineTo(cx+d*math.Cos(theta+half), cy+d*math.Sin(theta+half))
			}
			theta += dtheta
		}
	}
	c.DetectEvents(ctx, l)
	l.Closed = true
	c.ClosePath(ctx, l)
}

// drawLine traces Points as a polyline offset by the layer position.
func drawLine(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, 0, 0)
	c.SetGlobalProps(ctx, l)
	ox, oy := l.Center()
	ctx.BeginPath()
	for i, p := range l.Points {
		if i == 0 {
			ctx.MoveTo(p.X+ox, p.Y+oy)
			continue
		}
		ctx.LineTo(p.X+ox, p.Y+oy)
	}
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// drawQuadratic traces quadratic curves through Points; each point after the
// first uses CX1/CY1 as its control point.
func drawQuadratic(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, 0, 0)
	c.SetGlobalProps(ctx, l)
	ox, oy := l.Center()
	ctx.BeginPath()
	for i, p := range l.Points {
		if i == 0 {
			ctx.MoveTo(p.X+ox, p.Y+oy)
			continue
		}
		ctx.QuadraticCurveTo(p.CX1+ox, p.CY1+oy, p.X+ox, p.Y+oy)
	}
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// drawBezier traces cubic curves through Points; each point after the first
// uses both of its control points.
func drawBezier(c *Canvas, ctx Context, l *Layer) {
	c.TransformShape(ctx, l, 0, 0)
	c.SetGlobalProps(ctx, l)
	ox, oy := l.Center()
	ctx.BeginPath()
	for i, p := range l.Points {
		if i == 0 {
			ctx.MoveTo(p.X+ox, p.Y+oy)
			continue
		}
		ctx.BezierCurveTo(p.CX1+ox, p.CY1+oy, p.CX2+ox, p.CY2+oy, p.X+ox, p.Y+oy)
	}
	c.DetectEvents(ctx, l)
	c.ClosePath(ctx, l)
}

// --- Images ---

// drawImage paints a loaded image. Unset Width/Height take the image (or
// crop) size; a crop is used when SWidth and SHeight are set, centered on
// SX/SY unless CropFromCenter is false. An invisible
// rectangle over the image is built for hit testing.
func drawImage(c *Canvas, ctx Context, l *Layer) {
	if l.Source == nil {
		return
	}
	img, ok := l.Source.Image()
	if !ok || img == nil {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	crop := l.SWidth > 0 && l.SHeight > 0

	if l.Width == 0 {
		if crop {
			l.Width = l.SWidth
		} else {
			l.Width = iw
		}
	}
	if l.Height == 0 {
		if crop {
			l.Height = l.SHeight
		} else {
			l.Height = ih
		}
	}

	c.TransformShape(ctx, l, l.Width, l.Height)
	c.SetGlobalProps(ctx, l)
	cx, cy := l.Center()
	dx, dy := cx-l.Width/2, cy-l.Height/2

	if crop {
		sx, sy := l.SX, l.SY
		if !l.CropFromCenter {
			sx += l.SWidth / 2
			sy += l.SHeight / 2
		}
		sx = math.Max(l.SWidth/2, math.Min(sx, iw-l.SWidth/2))
		sy = math.Max(l.SHeight/2, math.Min(sy, ih-l.SHeight/2))
		ctx.DrawImage(img, sx-l.SWidth/2, sy-l.SHeight/2, l.SWidth, l.SHeight, dx, dy, l.Width, l.Height)
	} else {
		ctx.DrawImage(img, 0, 0, iw, ih, dx, dy, l.Width, l.Height)
	}

	ctx.BeginPath()
	ctx.Rect(dx, dy, l.Width, l.Height)
	c.DetectEvents(ctx, l)
	ctx.ClosePath()
	c.RestoreTransform(ctx, l)
	if l.Mask {
		c.EnableMasking(ctx, l)
	}
}

// --- Other layer types ---

// drawFunction calls the layer's Fn with the raw context.
func drawFunction(c *Canvas, ctx Context, l *Layer) {
	if l.Fn != nil {
		l.Fn(ctx, l)
	}
}

func drawSave(c *Canvas, ctx Context, l *Layer) {
	for i := 0; i < max(l.Count, 1); i++ {
		c.save(ctx)
	}
}

func drawRestore(c *Canvas, ctx Context, l *Layer) {
	for i := 0; i < max(l.Count, 1); i++ {
		c.restore(ctx)
	}
}
