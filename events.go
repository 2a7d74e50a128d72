package strata

// --- Binding ---

// helperEvent is the raw surface event that drives a layer event. Hover
// events are synthesized from mousemove.
func helperEvent(name string) string {
	if name == EventMouseOver || name == EventMouseOut {
		return EventMouseMove
	}
	return name
}

// bindEvent binds the raw surface event behind name, once per canvas. Mouse
// events also bind their touch counterpart.
func (c *Canvas) bindEvent(name string) {
	helper := helperEvent(name)
	if c.bound[helper] {
		return
	}
	c.bound[helper] = true
	fn := func(ev PointerEvent) { c.handlePointer(helper, ev) }
	c.surface.Bind(helper, fn)
	if touch, ok := mouseToTouch[helper]; ok {
		c.surface.Bind(touch, fn)
	}
}

// bindLayerEvents binds every raw event l needs: one per declared handler or
// cursor, plus the drag helpers for draggable layers.
func (c *Canvas) bindLayerEvents(l *Layer) {
	for name := range pointerEvents {
		if l.Handlers[name] == nil && l.Cursors[name] == "" {
			continue
		}
		c.bindEvent(name)
		l.hasEvent = true
		if name == EventMouseOver || name == EventMouseOut || name == EventMouseMove {
			c.redrawOnMove = true
		}
	}
	c.bindLeave()
	if l.Draggable || len(l.Cursors) > 0 {
		c.bindEvent(EventMouseDown)
		c.bindEvent(EventMouseMove)
		c.bindEvent(EventMouseUp)
		l.hasEvent = true
	}
}

// bindLeave binds the surface's own mouseout once. Leaving the surface
// cancels a drag and ends every hover.
func (c *Canvas) bindLeave() {
	const key = "surface:" + EventMouseOut
	if c.bound[key] {
		return
	}
	c.bound[key] = true
	c.surface.Bind(EventMouseOut, func(ev PointerEvent) {
		c.event = eventCache{}
		redraw := false
		if l := c.drag.cancel(); l != nil {
			c.redrawOnMove = c.savedRedraw
			c.triggerLayerEvent(l, EventDragCancel, nil)
			redraw = true
		}
		for _, l := range append([]*Layer(nil), c.layers...) {
			if l.forceLeave() {
				c.triggerLayerEvent(l, EventMouseOut, nil)
				redraw = true
			}
		}
		c.lastIntersected = nil
		if redraw {
			c.resetCursor()
			c.DrawLayers(DrawOptions{})
		}
	})
}

// handlePointer caches a raw event and redraws with reset-fire semantics.
// Plain moves redraw only when something listens for hover or a drag is
// armed.
func (c *Canvas) handlePointer(helper string, ev PointerEvent) {
	typ := helper
	if _, touch := touchToMouse[ev.Type]; touch {
		typ = ev.Type
	}
	c.event = eventCache{set: true, x: ev.X, y: ev.Y, typ: typ, pointer: ev}
	isMove := typ == EventMouseMove || typ == EventTouchMove
	if !isMove || c.redrawOnMove || c.drag.phase != DragIdle {
		c.DrawLayers(DrawOptions{ResetFire: true})
	}
}

// --- Dispatch ---

// dispatch runs after an uninterrupted pass: drag transitions, the pending
// mouseout, then hover and the sample's single event on the target.
func (c *Canvas) dispatch() {
	target := c.Target()
	typ := c.event.typ

	if c.drag.layer != nil && typ != "" {
		c.handleLayerDrag(typ)
	}

	if last := c.lastIntersected; last != nil && last != target && !c.drag.active() {
		if last.leave() {
			c.lastIntersected = nil
			c.triggerLayerEvent(last, EventMouseOut, nil)
			c.resetCursor()
		}
	}

	if target != nil && typ != "" {
		if target.Handlers[typ] == nil {
			if mouse, ok := touchToMouse[typ]; ok {
				typ = mouse
			}
		}
		if target.hasEvent && target.intersects {
			c.lastIntersected = target
			if c.hoverable(target) && !c.drag.active() {
				if target.enter() {
					c.triggerLayerEvent(target, EventMouseOver, nil)
				}
			}
			if target.fire() {
				c.event.typ = ""
				c.triggerLayerEvent(target, typ, nil)
			}
			if target.Draggable && !target.DisableEvents && (typ == EventMouseDown || typ == EventTouchStart) {
				c.pressDrag(target)
			}
		}
	}

	if target == nil && !c.drag.active() {
		c.resetCursor()
	}
}

func (c *Canvas) hoverable(l *Layer) bool {
	return l.Handlers[EventMouseOver] != nil || l.Handlers[EventMouseOut] != nil || len(l.Cursors) > 0
}

// --- Cursors ---

func (c *Canvas) setCursor(l *Layer, typ string) {
	if cur := l.Cursors[typ]; cur != "" {
		c.surface.SetCursor(cur)
	}
}

func (c *Canvas) resetCursor() {
	c.surface.SetCursor(c.cursor)
}
