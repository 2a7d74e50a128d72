package strata

import "time"

// DrawOptions control a redraw pass.
type DrawOptions struct {
	// NoClear skips clearing the surface before drawing.
	NoClear bool
	// Index is the first layer drawn.
	Index int
	// ResetFire reopens every drawn layer's sample so it may receive one
	// more event. Pointer-driven passes set it.
	ResetFire bool
	// Complete runs once after the whole layer list has been drawn. A pass
	// that suspends carries it in its Cursor.
	Complete func()
}

// Cursor is the position at which a suspended pass continues.
type Cursor struct {
	// Next is the index of the first layer not drawn yet.
	Next int
	// Layer is the image layer the pass is waiting on.
	Layer    *Layer
	Complete func()
}

// DrawResult reports how a redraw pass ended.
type DrawResult struct {
	// Suspended is set when the pass stopped at an image layer whose image
	// has not loaded. Cursor says where to resume.
	Suspended bool
	Cursor    Cursor
	// Drawn counts the layers whose draw routine ran.
	Drawn int
}

// DrawLayers redraws the layer list in array order. A pending image
// suspends the pass; the image's load completion resumes it automatically
// through [Canvas.Resume]. After an uninterrupted pass pointer events are
// dispatched to the topmost eligible layer.
func (c *Canvas) DrawLayers(opts DrawOptions) DrawResult {
	ctx := c.ctx()
	if ctx == nil {
		return DrawResult{}
	}
	if c.inPass {
		Logger().Debug("strata: nested redraw ignored")
		return DrawResult{}
	}
	start := time.Now()
	debugCheckIndices(c, "DrawLayers")

	if !opts.NoClear {
		c.clearAll(ctx)
	}
	var res DrawResult
	c.inPass = true
	i := max(opts.Index, 0)
	for ; i < len(c.layers); i++ {
		l := c.layers[i]
		l.index = i
		if opts.ResetFire {
			l.reopen()
		}
		if src := pendingSource(l); src != nil {
			res.Suspended = true
			res.Cursor = Cursor{Next: i + 1, Layer: l, Complete: opts.Complete}
			c.suspend(src, res.Cursor)
			break
		}
		if l.Visible && l.draw != nil {
			c.drawAt(ctx, l, i+1)
			res.Drawn++
		}
		l.masks = append([]*Layer(nil), c.transforms.Masks...)
	}
	c.inPass = false

	c.recordPass(res, time.Since(start))
	if res.Suspended {
		return res
	}

	if opts.Complete != nil {
		opts.Complete()
	}
	c.dispatch()

	c.intersecting = c.intersecting[:0]
	c.transforms = identityTransform()
	c.saved = c.saved[:0]
	return res
}

// Resume draws the image layer a pass was suspended on, fires "load" on it
// and continues the pass from cur.Next without clearing.
func (c *Canvas) Resume(cur Cursor) DrawResult {
	ctx := c.ctx()
	if ctx == nil {
		return DrawResult{}
	}
	if l := cur.Layer; l != nil && l.live && l.Visible && l.draw != nil {
		c.drawAt(ctx, l, cur.Next)
		l.masks = append([]*Layer(nil), c.transforms.Masks...)
		c.triggerLayerEvent(l, EventLoad, nil)
	}
	return c.DrawLayers(DrawOptions{
		NoClear:   true,
		Index:     cur.Next,
		ResetFire: true,
		Complete:  cur.Complete,
	})
}

// DrawLayer draws one layer on top of whatever is on the surface.
func (c *Canvas) DrawLayer(id LayerID) *Canvas {
	ctx := c.ctx()
	l := c.Layer(id)
	if ctx == nil || l == nil {
		return c
	}
	if l.Visible && l.draw != nil {
		c.drawAt(ctx, l, 0)
	}
	return c
}

func (c *Canvas) drawAt(ctx Context, l *Layer, next int) {
	l.next = next
	c.drawOne(ctx, l)
}

// drawOne runs the layer's draw routine.
func (c *Canvas) drawOne(ctx Context, l *Layer) {
	l.draw(c, ctx, l)
}

func (c *Canvas) clearAll(ctx Context) {
	w, h := c.surface.Size()
	ctx.Save()
	ctx.ResetTransform()
	ctx.ClearRect(0, 0, float64(w), float64(h))
	ctx.Restore()
}

// pendingSource returns the image source a visible image layer is still
// waiting on, or nil.
func pendingSource(l *Layer) ImageSource {
	if !l.Visible || l.Type != "image" || l.Source == nil {
		return nil
	}
	if _, ready := l.Source.Image(); ready {
		return nil
	}
	return l.Source
}

// suspend registers a single load callback per source. A later suspension on
// the same source replaces the cursor the callback resumes from.
func (c *Canvas) suspend(src ImageSource, cur Cursor) {
	if prev, ok := c.waiting[src]; ok {
		if cur.Complete == nil {
			cur.Complete = prev.Complete
		}
		c.waiting[src] = &cur
		return
	}
	c.waiting[src] = &cur
	src.OnLoad(func() {
		next, ok := c.waiting[src]
		if !ok {
			return
		}
		delete(c.waiting, src)
		c.Resume(*next)
	})
}

// Waiting reports how many image sources a suspended pass is waiting on.
func (c *Canvas) Waiting() int { return len(c.waiting) }
