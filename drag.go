package strata

// pressDrag arms a drag on l, recording its position and the pointer offset.
func (c *Canvas) pressDrag(l *Layer) {
	if c.drag.phase == DragPending {
		// The previous press was released off the canvas.
		c.drag.reset()
		c.redrawOnMove = c.savedRedraw
	}
	if !c.drag.press(l) {
		return
	}
	l.dragStartX, l.dragStartY = l.X, l.Y
	l.dragPointerX, l.dragPointerY = l.localX, l.localY
	c.savedRedraw = c.redrawOnMove
	c.redrawOnMove = true
}

// handleLayerDrag advances the drag machine for the cached event type.
func (c *Canvas) handleLayerDrag(typ string) {
	l := c.drag.layer
	switch typ {
	case EventMouseMove, EventTouchMove:
		if c.drag.move() {
			if l.BringToFront {
				c.bringToFront(l)
			}
			c.triggerLayerEvent(l, EventDragStart, nil)
		}
		if c.drag.active() {
			c.dragTo(l)
		}
	case EventMouseUp, EventTouchEnd:
		done := c.drag.release()
		c.redrawOnMove = c.savedRedraw
		if done != nil {
			c.triggerLayerEvent(done, EventDragStop, nil)
		}
	}
}

// bringToFront physically moves l to the end of the layer list.
func (c *Canvas) bringToFront(l *Layer) {
	i := c.position(l)
	if i < 0 {
		return
	}
	c.layers = append(append(c.layers[:i], c.layers[i+1:]...), l)
	c.reindex()
}

// dragTo moves l by the pointer delta since the press and shifts its drag
// group members by the same amount.
func (c *Canvas) dragTo(l *Layer) {
	newX := l.localX - (l.dragPointerX - l.dragStartX)
	newY := l.localY - (l.dragPointerY - l.dragStartY)
	if l.UpdateDragX != nil {
		newX = l.UpdateDragX(l, newX)
	}
	if l.UpdateDragY != nil {
		newY = l.UpdateDragY(l, newY)
	}
	dx, dy := newX-l.X, newY-l.Y
	if l.RestrictDragToAxis != "y" {
		l.X = newX
	}
	if l.RestrictDragToAxis != "x" {
		l.Y = newY
	}
	c.triggerLayerEvent(l, EventDrag, Patch{"dx": dx, "dy": dy})

	for _, m := range c.dragGroupMembers(l) {
		if l.RestrictDragToAxis != "y" && m.RestrictDragToAxis != "y" {
			m.X += dx
		}
		if l.RestrictDragToAxis != "x" && m.RestrictDragToAxis != "x" {
			m.Y += dy
		}
	}
}

// dragGroupMembers returns the other layers that move with l: the members
// of every group named in l.DragGroups.
func (c *Canvas) dragGroupMembers(l *Layer) []*Layer {
	if len(l.DragGroups) == 0 {
		return nil
	}
	seen := map[*Layer]bool{l: true}
	var out []*Layer
	for _, g := range l.DragGroups {
		for _, m := range c.groups[g] {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
