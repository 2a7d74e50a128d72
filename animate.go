package strata

import (
	"strconv"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/strata/internal/csscolor"
)

// AnimateOptions configure [Canvas.AnimateLayer].
type AnimateOptions struct {
	Duration time.Duration
	// Easing names an easing function (see [Easing]). Empty means "swing".
	Easing string
	// Complete runs once the animation has finished.
	Complete func(l *Layer)
	// Step runs after every animation step with the eased progress (0..1).
	Step func(l *Layer, progress float64)
}

// EndFunc computes an animation end value when the animation starts.
type EndFunc func(l *Layer, prop string) any

// hiddenProps are tweened under an underscore alias and copied back on
// every step.
var hiddenProps = map[string]bool{
	"width": true, "height": true, "opacity": true, "lineHeight": true,
}

type tweenKind uint8

const (
	tweenPlain tweenKind = iota
	tweenHidden
	tweenColor
	tweenMap
	tweenPoint
)

// animProp is one tweened value. For nested values alias is the dotted
// name under which the value is exposed while the animation runs.
type animProp struct {
	kind     tweenKind
	name     string
	alias    string
	key      string
	point    int
	from, to float64
	fromC    csscolor.Color
	toC      csscolor.Color
}

// animation is one queue entry: a tween of a property set, or a delay.
type animation struct {
	delay   bool
	end     Patch
	opts    AnimateOptions
	easing  ease.TweenFunc
	tween   *gween.Tween
	started bool
	props   []animProp
}

// --- Public API ---

// AnimateLayer queues a tween of the layer's properties towards end. Values
// may be numbers, "+=N"/"-=N", CSS colors for color properties, maps of
// numbers for map properties, []PathPoint for "points", or an [EndFunc].
// Layers of type "function" are not animated. The animation advances with
// [Canvas.Tick].
func (c *Canvas) AnimateLayer(id LayerID, end Patch, opts AnimateOptions) *Canvas {
	l := c.Layer(id)
	if l == nil || l.Type == "function" {
		return c
	}
	fn, ok := Easing(opts.Easing)
	if !ok {
		Logger().Warn("strata: unknown easing", "name", opts.Easing)
	}
	c.enqueue(l, &animation{end: clonePatch(end), opts: opts, easing: fn})
	c.triggerLayerEvent(l, EventAnimateStart, nil)
	return c
}

// AnimateLayerGroup animates every layer of a group.
func (c *Canvas) AnimateLayerGroup(id GroupID, end Patch, opts AnimateOptions) *Canvas {
	for _, l := range append([]*Layer(nil), c.LayerGroup(id)...) {
		c.AnimateLayer(l, end, opts)
	}
	return c
}

// DelayLayer queues a pause of d before the layer's next animation.
func (c *Canvas) DelayLayer(id LayerID, d time.Duration) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	c.enqueue(l, &animation{delay: true, opts: AnimateOptions{Duration: d}, easing: ease.Linear})
	c.triggerLayerEvent(l, EventDelay, nil)
	return c
}

// DelayLayerGroup delays every layer of a group.
func (c *Canvas) DelayLayerGroup(id GroupID, d time.Duration) *Canvas {
	for _, l := range append([]*Layer(nil), c.LayerGroup(id)...) {
		c.DelayLayer(l, d)
	}
	return c
}

// StopLayer stops the running animation where it is, leaving the layer's
// properties at their current values. With clearQueue the queued
// animations are dropped too; otherwise the next one starts on the next
// tick.
func (c *Canvas) StopLayer(id LayerID, clearQueue bool) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	if a := l.anim; a != nil {
		c.settle(l, a)
		l.anim = nil
		l.animPos = 0
	}
	if clearQueue {
		l.queue = nil
	}
	c.triggerLayerEvent(l, EventStop, nil)
	return c
}

// StopLayerGroup stops every layer of a group.
func (c *Canvas) StopLayerGroup(id GroupID, clearQueue bool) *Canvas {
	for _, l := range append([]*Layer(nil), c.LayerGroup(id)...) {
		c.StopLayer(l, clearQueue)
	}
	return c
}

// Tick advances every animation by dt seconds and redraws once if any
// animated value changed. Hosts call it once per frame.
func (c *Canvas) Tick(dt float32) {
	layers := c.animLayers
	c.animLayers = nil
	for _, l := range layers {
		c.tickLayer(l, dt)
	}

	// Layers queued by callbacks during this tick are in c.animLayers.
	added := c.animLayers
	active := make([]*Layer, 0, len(layers)+len(added))
	for _, l := range layers {
		if (l.anim != nil || len(l.queue) > 0) && !contains(active, l) {
			active = append(active, l)
		}
	}
	for _, l := range added {
		if (l.anim != nil || len(l.queue) > 0) && !contains(active, l) {
			active = append(active, l)
		}
	}
	c.animLayers = active

	if c.animDirty {
		c.animDirty = false
		c.DrawLayers(DrawOptions{})
	}
}

// Animating reports whether any layer has a running or queued animation.
func (c *Canvas) Animating() bool { return len(c.animLayers) > 0 }

// --- Queue ---

func (c *Canvas) enqueue(l *Layer, a *animation) {
	if !contains(c.animLayers, l) {
		c.animLayers = append(c.animLayers, l)
	}
	l.queue = append(l.queue, a)
}

func (c *Canvas) tickLayer(l *Layer, dt float32) {
	for dt >= 0 {
		if l.anim == nil {
			if len(l.queue) == 0 {
				return
			}
			l.anim = l.queue[0]
			l.queue = l.queue[1:]
		}
		a := l.anim
		if !a.started {
			c.start(l, a)
		}
		pos, done := a.tween.Update(dt)
		if a.delay {
			if !done {
				return
			}
			l.anim = nil
			dt = a.tween.Overflow
			continue
		}
		c.step(l, a, float64(pos))
		if !done {
			return
		}
		c.finish(l, a)
		dt = a.tween.Overflow
		if dt <= 0 {
			return
		}
	}
}

// start resolves end values against the layer's current state.
func (c *Canvas) start(l *Layer, a *animation) {
	a.started = true
	a.tween = gween.New(0, 1, float32(a.opts.Duration.Seconds()), a.easing)
	if a.delay {
		return
	}
	for name, v := range a.end {
		if fn, ok := v.(EndFunc); ok {
			v = fn(l, name)
		} else if fn, ok := v.(func(*Layer, string) any); ok {
			v = fn(l, name)
		}
		a.props = append(a.props, c.parseEnd(l, name, v)...)
	}
	for _, p := range a.props {
		switch p.kind {
		case tweenHidden:
			if l.hidden == nil {
				l.hidden = make(map[string]float64)
			}
			l.hidden["_"+p.name] = p.from
		case tweenMap, tweenPoint:
			if l.aliases == nil {
				l.aliases = make(map[string]float64)
			}
			l.aliases[p.alias] = p.from
		}
	}
}

// parseEnd turns one end value into tweened values. Values that cannot be
// tweened are assigned straight away.
func (c *Canvas) parseEnd(l *Layer, name string, v any) []animProp {
	if s, ok := v.(string); ok && l.cfg.IsColorProp(name) {
		to, ok := csscolor.Parse(s)
		if !ok {
			return nil
		}
		cur, _ := l.Get(name)
		curS, _ := cur.(string)
		from, ok := csscolor.Parse(curS)
		if !ok {
			from = csscolor.Transparent
		}
		return []animProp{{kind: tweenColor, name: name, fromC: from, toC: to}}
	}

	switch end := v.(type) {
	case map[string]any:
		cur, _ := l.Get(name)
		m, _ := cur.(map[string]any)
		var out []animProp
		for k, ev := range end {
			to, ok := toFloat(ev)
			if !ok {
				continue
			}
			from, _ := toFloat(m[k])
			out = append(out, animProp{kind: tweenMap, name: name, key: k, alias: name + "." + k, from: from, to: to})
		}
		return out
	case []PathPoint:
		if name != "points" {
			return nil
		}
		var out []animProp
		for i, pt := range end {
			if i >= len(l.Points) {
				break
			}
			cur := l.Points[i]
			for _, f := range pointFields {
				from, to := f.get(cur), f.get(pt)
				if from == to {
					continue
				}
				out = append(out, animProp{
					kind: tweenPoint, name: name, key: f.name, point: i,
					alias: "points." + strconv.Itoa(i) + "." + f.name,
					from:  from, to: to,
				})
			}
		}
		return out
	}

	cur, numeric := l.Number(name)
	var to float64
	switch end := v.(type) {
	case string:
		if d, inc := parseIncrement(end); inc && numeric {
			to = cur + d
		} else if n, ok := parseNumeric(end); ok && numeric {
			to = n
		} else {
			l.Set(name, end)
			return nil
		}
	default:
		n, ok := toFloat(end)
		if !ok || !numeric {
			l.Set(name, v)
			return nil
		}
		to = n
	}
	kind := tweenPlain
	if hiddenProps[name] {
		kind = tweenHidden
	}
	return []animProp{{kind: kind, name: name, from: cur, to: to}}
}

// step writes the values for the eased progress pos and marks the canvas
// for a redraw at the end of the tick when anything moved.
func (c *Canvas) step(l *Layer, a *animation, pos float64) {
	c.apply(l, a, pos)
	if l.animPos != pos {
		l.animPos = pos
		c.animDirty = true
	}
	if a.opts.Step != nil {
		a.opts.Step(l, pos)
	}
	c.triggerLayerEvent(l, EventAnimate, pos)
}

func (c *Canvas) finish(l *Layer, a *animation) {
	c.apply(l, a, 1)
	c.settle(l, a)
	c.animDirty = true
	l.anim = nil
	l.animPos = 0
	if a.opts.Complete != nil {
		a.opts.Complete(l)
	}
	c.triggerLayerEvent(l, EventAnimateEnd, nil)
}

// settle removes the underscore and dotted aliases of an animation.
func (c *Canvas) settle(l *Layer, a *animation) {
	for _, p := range a.props {
		switch p.kind {
		case tweenHidden:
			if v, ok := l.hidden["_"+p.name]; ok {
				l.Set(p.name, v)
				delete(l.hidden, "_"+p.name)
			}
		case tweenMap, tweenPoint:
			delete(l.aliases, p.alias)
		}
	}
}

func (c *Canvas) apply(l *Layer, a *animation, pos float64) {
	for _, p := range a.props {
		v := p.from + (p.to-p.from)*pos
		if pos == 1 {
			v = p.to
		}
		switch p.kind {
		case tweenPlain:
			l.Set(p.name, v)
		case tweenHidden:
			l.hidden["_"+p.name] = v
			l.Set(p.name, l.hidden["_"+p.name])
		case tweenColor:
			l.Set(p.name, csscolor.Blend(p.fromC, p.toC, pos).String())
		case tweenMap:
			l.aliases[p.alias] = v
			cur, _ := l.Get(p.name)
			if m, ok := cur.(map[string]any); ok {
				m[p.key] = v
			}
		case tweenPoint:
			l.aliases[p.alias] = v
			if p.point < len(l.Points) {
				for _, f := range pointFields {
					if f.name == p.key {
						f.set(&l.Points[p.point], v)
					}
				}
			}
		}
	}
}

type pointField struct {
	name string
	get  func(PathPoint) float64
	set  func(*PathPoint, float64)
}

var pointFields = []pointField{
	{"x", func(p PathPoint) float64 { return p.X }, func(p *PathPoint, v float64) { p.X = v }},
	{"y", func(p PathPoint) float64 { return p.Y }, func(p *PathPoint, v float64) { p.Y = v }},
	{"cx1", func(p PathPoint) float64 { return p.CX1 }, func(p *PathPoint, v float64) { p.CX1 = v }},
	{"cy1", func(p PathPoint) float64 { return p.CY1 }, func(p *PathPoint, v float64) { p.CY1 = v }},
	{"cx2", func(p PathPoint) float64 { return p.CX2 }, func(p *PathPoint, v float64) { p.CX2 = v }},
	{"cy2", func(p PathPoint) float64 { return p.CY2 }, func(p *PathPoint, v float64) { p.CY2 = v }},
}

func clonePatch(p Patch) Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}
