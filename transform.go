package strata

import "math"

// TransformState is the cumulative canvas transform recorded alongside the
// drawing context, so hit testing can undo it. Rotate is in radians.
type TransformState struct {
	Rotate     float64
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
	// Masks are the mask layers currently clipping the canvas, outermost
	// first.
	Masks []*Layer
}

func identityTransform() TransformState {
	return TransformState{ScaleX: 1, ScaleY: 1}
}

// Clone returns a copy that shares nothing with t.
func (t TransformState) Clone() TransformState {
	t.Masks = append([]*Layer(nil), t.Masks...)
	return t
}

// TransformState returns a copy of the current cumulative transform.
func (c *Canvas) TransformState() TransformState { return c.transforms.Clone() }

// SavedDepth returns the number of saved transform snapshots.
func (c *Canvas) SavedDepth() int { return len(c.saved) }

// --- Stack ---

func (c *Canvas) save(ctx Context) {
	ctx.Save()
	c.saved = append(c.saved, c.transforms.Clone())
}

func (c *Canvas) restore(ctx Context) {
	ctx.Restore()
	if n := len(c.saved); n > 0 {
		c.transforms = c.saved[n-1].Clone()
		c.saved = c.saved[:n-1]
		return
	}
	c.transforms = identityTransform()
}

// --- Primitive transforms ---

func toRad(l *Layer) float64 {
	if l.InDegrees {
		return degToRad
	}
	return 1
}

// rotate rotates ctx by l.Rotate about (x, y) and records it in rec.
func rotate(ctx Context, l *Layer, x, y float64, rec *TransformState) {
	angle := l.Rotate * toRad(l)
	ctx.Translate(x, y)
	ctx.Rotate(angle)
	ctx.Translate(-x, -y)
	if rec != nil {
		rec.Rotate += angle
	}
}

// shapeScale returns the effective scale factors; a Scale other than 1
// overrides both axes.
func shapeScale(l *Layer) (sx, sy float64) {
	if l.Scale != 1 {
		return l.Scale, l.Scale
	}
	return l.ScaleX, l.ScaleY
}

func scale(ctx Context, l *Layer, x, y float64, rec *TransformState) {
	sx, sy := shapeScale(l)
	ctx.Translate(x, y)
	ctx.Scale(sx, sy)
	ctx.Translate(-x, -y)
	if rec != nil {
		rec.ScaleX *= sx
		rec.ScaleY *= sy
	}
}

func shapeTranslate(l *Layer) (tx, ty float64) {
	if l.Translate != 0 {
		return l.Translate, l.Translate
	}
	return l.TranslateX, l.TranslateY
}

func translate(ctx Context, l *Layer, rec *TransformState) {
	tx, ty := shapeTranslate(l)
	ctx.Translate(tx, ty)
	if rec != nil {
		rec.TranslateX += tx
		rec.TranslateY += ty
	}
}

// --- Collaborator helpers ---

// TransformShape positions a shape before it is drawn. It saves the context,
// computes the draw-time center (shifting X/Y by half of width/height when
// FromCenter is false), then applies the layer's rotate, scale and translate
// in that order. Pair it with [Canvas.ClosePath] or
// [Canvas.RestoreTransform].
func (c *Canvas) TransformShape(ctx Context, l *Layer, width, height float64) {
	l.cx, l.cy = l.X, l.Y
	if !l.FromCenter {
		l.cx += width / 2
		l.cy += height / 2
	}
	l.transformed = true
	ctx.Save()
	if l.Rotate != 0 {
		rotate(ctx, l, l.cx, l.cy, nil)
	}
	if sx, sy := shapeScale(l); sx != 1 || sy != 1 {
		scale(ctx, l, l.cx, l.cy, nil)
	}
	if tx, ty := shapeTranslate(l); tx != 0 || ty != 0 {
		translate(ctx, l, nil)
	}
}

// RestoreTransform undoes [Canvas.TransformShape].
func (c *Canvas) RestoreTransform(ctx Context, l *Layer) {
	if l.transformed {
		ctx.Restore()
		l.transformed = false
	}
}

// ClosePath finishes a shape's path: optionally closes it, fills and strokes
// it with the layer's shadow rules, restores the shape transform, and clips
// to it when the layer is a mask.
func (c *Canvas) ClosePath(ctx Context, l *Layer) {
	if l.Closed {
		ctx.ClosePath()
	}
	if l.ShadowStroke && l.StrokeWidth != 0 {
		ctx.Stroke()
		ctx.Fill(l.FillRule)
		ctx.SetShadow(0, 0, 0, "transparent")
		ctx.Stroke()
	} else {
		ctx.Fill(l.FillRule)
		if l.FillStyle != "transparent" {
			ctx.SetShadow(l.ShadowX, l.ShadowY, 0, "transparent")
		}
		if l.StrokeWidth != 0 {
			ctx.Stroke()
		}
	}
	if !l.Closed {
		ctx.ClosePath()
	}
	c.RestoreTransform(ctx, l)
	if l.Mask {
		c.EnableMasking(ctx, l)
	}
}

// EnableMasking clips the canvas to the current path and pushes l onto the
// mask stack. With Autosave the clip is preceded by a save so a later
// restore removes it.
func (c *Canvas) EnableMasking(ctx Context, l *Layer) {
	if l.Autosave {
		c.save(ctx)
	}
	ctx.Clip(l.FillRule)
	c.transforms.Masks = append(c.transforms.Masks, l)
}

// SetGlobalProps applies the layer's style properties to ctx.
func (c *Canvas) SetGlobalProps(ctx Context, l *Layer) {
	ctx.SetFillStyle(l.FillStyle)
	ctx.SetStrokeStyle(l.StrokeStyle)
	ctx.SetLineWidth(l.StrokeWidth)
	if l.Rounded {
		ctx.SetLineCap("round")
		ctx.SetLineJoin("round")
	} else {
		ctx.SetLineCap(l.StrokeCap)
		ctx.SetLineJoin(l.StrokeJoin)
		ctx.SetMiterLimit(l.MiterLimit)
	}
	ctx.SetLineDash(l.StrokeDash, l.StrokeDashOffset)
	ctx.SetShadow(l.ShadowX, l.ShadowY, l.ShadowBlur, l.ShadowColor)
	ctx.SetGlobalAlpha(l.Opacity)
	ctx.SetGlobalCompositeOperation(l.Compositing)
	if l.ImageSmoothing {
		ctx.SetImageSmoothing(true)
	}
}

// --- Canvas-level operations ---

// SaveCanvas pushes the cumulative transform and saves the context, Count
// times.
func (c *Canvas) SaveCanvas(p Patch) *Canvas {
	ctx := c.ctx()
	if ctx == nil {
		return c
	}
	l := NewLayer(c.cfg, p)
	for i := 0; i < max(l.Count, 1); i++ {
		c.save(ctx)
	}
	return c
}

// RestoreCanvas pops Count snapshots. Popping an empty stack resets the
// cumulative transform to identity.
func (c *Canvas) RestoreCanvas(p Patch) *Canvas {
	ctx := c.ctx()
	if ctx == nil {
		return c
	}
	l := NewLayer(c.cfg, p)
	for i := 0; i < max(l.Count, 1); i++ {
		c.restore(ctx)
	}
	return c
}

// RotateCanvas rotates everything drawn afterwards by Rotate about (X, Y).
// With Autosave the previous state is saved first.
func (c *Canvas) RotateCanvas(p Patch) *Canvas {
	if ctx := c.ctx(); ctx != nil {
		c.rotateCanvas(ctx, NewLayer(c.cfg, p))
	}
	return c
}

func (c *Canvas) rotateCanvas(ctx Context, l *Layer) {
	if l.Autosave {
		c.save(ctx)
	}
	rotate(ctx, l, l.X, l.Y, &c.transforms)
}

// ScaleCanvas scales everything drawn afterwards about (X, Y).
func (c *Canvas) ScaleCanvas(p Patch) *Canvas {
	if ctx := c.ctx(); ctx != nil {
		c.scaleCanvas(ctx, NewLayer(c.cfg, p))
	}
	return c
}

func (c *Canvas) scaleCanvas(ctx Context, l *Layer) {
	if l.Autosave {
		c.save(ctx)
	}
	scale(ctx, l, l.X, l.Y, &c.transforms)
}

// TranslateCanvas offsets everything drawn afterwards.
func (c *Canvas) TranslateCanvas(p Patch) *Canvas {
	if ctx := c.ctx(); ctx != nil {
		c.translateCanvas(ctx, NewLayer(c.cfg, p))
	}
	return c
}

func (c *Canvas) translateCanvas(ctx Context, l *Layer) {
	if l.Autosave {
		c.save(ctx)
	}
	translate(ctx, l, &c.transforms)
}

// ClearCanvas clears the rectangle described by p, or the whole surface
// under the identity transform when p has no width or height.
func (c *Canvas) ClearCanvas(p Patch) *Canvas {
	if ctx := c.ctx(); ctx != nil {
		c.clear(ctx, NewLayer(c.cfg, p))
	}
	return c
}

func (c *Canvas) clear(ctx Context, l *Layer) {
	if l.Width == 0 || l.Height == 0 {
		w, h := c.surface.Size()
		ctx.Save()
		ctx.ResetTransform()
		ctx.ClearRect(0, 0, float64(w), float64(h))
		ctx.Restore()
		return
	}
	c.TransformShape(ctx, l, l.Width, l.Height)
	x, y := l.Center()
	ctx.ClearRect(x-l.Width/2, y-l.Height/2, l.Width, l.Height)
	c.RestoreTransform(ctx, l)
}

// unrotate maps surface coordinates into the canvas's rotated and scaled
// space.
func (t TransformState) unrotate(x, y float64) (float64, float64) {
	if t.Rotate != 0 {
		cos, sin := math.Cos(-t.Rotate), math.Sin(-t.Rotate)
		x, y = x*cos-y*sin, y*cos+x*sin
	}
	if t.ScaleX != 0 {
		x /= t.ScaleX
	}
	if t.ScaleY != 0 {
		y /= t.ScaleY
	}
	return x, y
}
