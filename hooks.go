package strata

var globalHooks = make(Hooks)

// GlobalEventHooks returns the process-wide hooks map. It runs after the
// layer's own handler and the canvas hook for every dispatched event.
func GlobalEventHooks() Hooks { return globalHooks }

// SetGlobalEventHooks merges h into the process-wide hooks. A nil handler
// removes the entry.
func SetGlobalEventHooks(h Hooks) {
	mergeHooks(globalHooks, h)
}

// EventHooks returns the canvas's hooks map.
func (c *Canvas) EventHooks() Hooks { return c.hooks }

// SetEventHooks merges h into the canvas's hooks. A nil handler removes the
// entry.
func (c *Canvas) SetEventHooks(h Hooks) *Canvas {
	mergeHooks(c.hooks, h)
	return c
}

func mergeHooks(dst, src Hooks) {
	for name, fn := range src {
		if fn == nil {
			delete(dst, name)
			continue
		}
		dst[name] = fn
	}
}

// canFire reports whether l may receive typ: events are not disabled, and
// intangible layers never receive tangible events.
func canFire(l *Layer, typ string) bool {
	return !l.DisableEvents && (!l.Intangible || !tangibleEvents[typ])
}

// TriggerLayerEvent dispatches the named event on a layer manually. Custom
// event names are allowed.
func (c *Canvas) TriggerLayerEvent(id LayerID, name string) *Canvas {
	if l := c.Layer(id); l != nil {
		c.triggerLayerEvent(l, name, nil)
	}
	return c
}

// triggerLayerEvent runs the layer handler, the canvas hook and the global
// hook for typ, in that order.
func (c *Canvas) triggerLayerEvent(l *Layer, typ string, arg any) {
	if !canFire(l, typ) {
		return
	}
	if typ != EventMouseOut {
		c.setCursor(l, typ)
	}
	ev := &Event{
		Canvas:  c,
		Layer:   l,
		Type:    typ,
		X:       c.event.x,
		Y:       c.event.y,
		Pointer: c.event.pointer,
		Arg:     arg,
	}
	runHandler(l, typ, l.Handlers[typ], ev)
	runHandler(l, typ, c.hooks[typ], ev)
	runHandler(l, typ, globalHooks[typ], ev)
}

// runHandler calls fn unless a handler for the same event is already running
// on l.
func runHandler(l *Layer, typ string, fn Handler, ev *Event) {
	if fn == nil || l.running[typ] {
		return
	}
	if l.running == nil {
		l.running = make(map[string]bool)
	}
	l.running[typ] = true
	defer func() { l.running[typ] = false }()
	fn(ev)
}
