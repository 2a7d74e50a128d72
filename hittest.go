package strata

// DetectEvents tests the path just built on ctx against the cached pointer
// position. Draw routines call it after building the path and before
// [Canvas.ClosePath]. The pointer position is scaled by the pixel ratio;
// the coordinates recorded on the layer have the canvas rotation and scale
// removed.
func (c *Canvas) DetectEvents(ctx Context, l *Layer) {
	if !l.live {
		return
	}
	intersects := false
	if c.event.set {
		x, y := c.event.x*c.pixelRatio, c.event.y*c.pixelRatio
		intersects = ctx.IsPointInPath(x, y, l.FillRule) || ctx.IsPointInStroke(x, y)
	}
	l.eventX, l.eventY = c.event.x, c.event.y
	l.localX, l.localY = c.transforms.unrotate(c.event.x, c.event.y)
	if intersects {
		c.intersecting = append(c.intersecting, l)
	}
	l.intersects = intersects
}

// Target returns the authoritative target of the current pointer sample:
// the topmost intersecting layer that every mask active when it was drawn
// also contains, skipping intangible layers. It returns nil when no layer
// qualifies.
func (c *Canvas) Target() *Layer {
	for i := len(c.intersecting) - 1; i >= 0; i-- {
		l := c.intersecting[i]
		if !unmasked(l) {
			l.intersects = false
			continue
		}
		if l.intersects && !l.Intangible {
			return l
		}
	}
	return nil
}

// unmasked reports whether every mask recorded on l contains the pointer.
func unmasked(l *Layer) bool {
	for i := len(l.masks) - 1; i >= 0; i-- {
		if !l.masks[i].intersects {
			return false
		}
	}
	return true
}
