package strata

import (
	"image"

	"go.jetify.com/typeid/v2"
)

// Layer is a persistent drawable unit retained across redraws. Its exported
// properties may be assigned directly; [Canvas.SetLayer] additionally keeps
// the name and group indices in sync and fires "change".
type Layer struct {
	Props

	// Handlers maps event names to callbacks.
	Handlers map[string]Handler

	id   string
	cfg  *Config
	draw DrawFunc

	live  bool
	index int

	hover      HoverState
	sample     SampleState
	dragging   bool
	intersects bool
	running    map[string]bool

	// Pointer coordinates recorded while the layer was last drawn, raw and
	// adjusted for the canvas rotation and scale.
	eventX, eventY float64
	localX, localY float64
	hasEvent       bool
	masks          []*Layer
	cx, cy         float64
	transformed    bool
	srcName        string
	next           int
	hidden         map[string]float64
	aliases        map[string]float64
	anim           *animation
	queue          []*animation
	animPos        float64
	dragStartX     float64
	dragStartY     float64
	dragPointerX   float64
	dragPointerY   float64
	text           textLayout
}

// NewLayer builds a layer from cfg's defaults with p applied. The layer is
// not added to any canvas.
func NewLayer(cfg *Config, p Patch) *Layer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Layer{
		Props:   cfg.Defaults(),
		id:      typeid.MustGenerate("layer").String(),
		cfg:     cfg,
		index:   -1,
		running: make(map[string]bool),
	}
	l.applyPatch(p)
	l.resolveDraw()
	return l
}

func (l *Layer) resolveDraw() {
	if fn, ok := l.cfg.DrawFunc(l.Type); ok {
		l.draw = fn
	}
}

// ID returns the layer's generated identifier, stable across removal and
// re-adding.
func (l *Layer) ID() string { return l.id }

// Index returns the layer's position in its canvas, or -1 when it is not a
// live layer.
func (l *Layer) Index() int { return l.index }

// Live reports whether the layer is currently in a canvas.
func (l *Layer) Live() bool { return l.live }

// Hovered reports whether the pointer is over the layer.
func (l *Layer) Hovered() bool { return l.hover == HoverOver }

// Dragging reports whether the layer is being dragged.
func (l *Layer) Dragging() bool { return l.dragging }

// Intersects reports whether the pointer was inside the layer's path when
// it was last drawn.
func (l *Layer) Intersects() bool { return l.intersects }

// EventPos returns the pointer coordinates recorded on the last draw.
func (l *Layer) EventPos() (x, y float64) { return l.eventX, l.eventY }

// LocalEventPos returns the recorded pointer coordinates with the canvas
// rotation and scale removed.
func (l *Layer) LocalEventPos() (x, y float64) { return l.localX, l.localY }

// Masks returns the mask layers that were active when the layer was last
// drawn.
func (l *Layer) Masks() []*Layer { return l.masks }

// Center returns the draw-time center of the shape: X and Y, shifted by half
// the shape size when FromCenter is false. Only meaningful inside a draw
// routine after [Canvas.TransformShape].
func (l *Layer) Center() (x, y float64) { return l.cx, l.cy }

// Animating reports whether an animation is running on the layer.
func (l *Layer) Animating() bool { return l.anim != nil }

// Hidden returns a property value parked under its underscore alias during
// an animation.
func (l *Layer) Hidden(name string) (float64, bool) {
	v, ok := l.hidden["_"+name]
	return v, ok
}

// Alias returns the value of a dotted animation alias such as "data.value".
func (l *Layer) Alias(name string) (float64, bool) {
	v, ok := l.aliases[name]
	return v, ok
}

// resolveSource turns a patch value for "source" into an ImageSource.
// Strings are remembered and resolved once the layer meets a canvas.
func (l *Layer) resolveSource(v any) any {
	switch src := v.(type) {
	case string:
		l.srcName = src
		return nil
	case image.Image:
		return LoadedImage(src)
	}
	return v
}
