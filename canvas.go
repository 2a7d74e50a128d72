package strata

// Canvas is the per-surface layer engine: layer list, name and group
// indices, transform stack, pointer cache, drag and animation state. Get one
// with [For]. A Canvas is not safe for concurrent use; drive it from the
// goroutine that owns the surface.
type Canvas struct {
	surface Surface
	cfg     *Config

	layers     []*Layer
	names      map[string]*Layer
	groups     map[string][]*Layer
	groupOrder []string

	hooks Hooks
	bound map[string]bool

	event           eventCache
	intersecting    []*Layer
	lastIntersected *Layer
	cursor          string
	drag            dragState
	redrawOnMove    bool
	savedRedraw     bool

	transforms TransformState
	saved      []TransformState

	animLayers []*Layer
	animDirty  bool

	pixelRatio float64
	resolver   ImageResolver
	waiting    map[ImageSource]*Cursor
	inPass     bool

	debug bool
	stats DebugStats
}

type eventCache struct {
	set     bool
	x, y    float64
	typ     string
	pointer PointerEvent
}

// --- Per-surface cache ---

var (
	lastSurface Surface
	lastCanvas  *Canvas
	canvases    = make(map[Surface]*Canvas)
)

// For returns the canvas for s, creating it on first use. Consecutive calls
// for the same surface hit a single-entry cache.
func For(s Surface) *Canvas {
	if s == nil {
		panic("strata: For called with a nil surface")
	}
	if lastCanvas != nil && lastSurface == s {
		return lastCanvas
	}
	c, ok := canvases[s]
	if !ok {
		c = newCanvas(s)
		canvases[s] = c
	}
	lastSurface, lastCanvas = s, c
	return c
}

// ClearCache forgets every canvas. The next call to For builds a fresh one.
func ClearCache() {
	lastSurface, lastCanvas = nil, nil
	canvases = make(map[Surface]*Canvas)
}

func newCanvas(s Surface) *Canvas {
	return &Canvas{
		surface:    s,
		cfg:        DefaultConfig(),
		names:      make(map[string]*Layer),
		groups:     make(map[string][]*Layer),
		hooks:      make(Hooks),
		bound:      make(map[string]bool),
		cursor:     s.Cursor(),
		transforms: identityTransform(),
		pixelRatio: 1,
		waiting:    make(map[ImageSource]*Cursor),
	}
}

// Surface returns the surface the canvas draws on.
func (c *Canvas) Surface() Surface { return c.surface }

// Config returns the configuration new layers are built from.
func (c *Canvas) Config() *Config { return c.cfg }

// UseConfig sets the configuration for layers added from now on. Existing
// layers keep the snapshot they were built from.
func (c *Canvas) UseConfig(cfg *Config) *Canvas {
	if cfg != nil {
		c.cfg = cfg
	}
	return c
}

// PixelRatio returns the device pixel ratio used for hit testing.
func (c *Canvas) PixelRatio() float64 { return c.pixelRatio }

// SetPixelRatio sets the device pixel ratio. Pointer coordinates are
// multiplied by it before being tested against paths.
func (c *Canvas) SetPixelRatio(r float64) *Canvas {
	if r > 0 {
		c.pixelRatio = r
	}
	return c
}

// SetImageResolver installs the function that turns "source" strings into
// image sources.
func (c *Canvas) SetImageResolver(r ImageResolver) *Canvas {
	c.resolver = r
	return c
}

// Dragging returns the layer being dragged and the drag phase.
func (c *Canvas) Dragging() (*Layer, DragPhase) { return c.drag.layer, c.drag.phase }

// Intersecting returns the layers hit by the current pointer sample, bottom
// to top.
func (c *Canvas) Intersecting() []*Layer { return c.intersecting }

func (c *Canvas) ctx() Context { return c.surface.Context() }

// bindSource resolves a pending "source" string through the image resolver.
func (c *Canvas) bindSource(l *Layer) {
	if l.Source != nil || l.srcName == "" || c.resolver == nil {
		return
	}
	l.Source = c.resolver(l.srcName)
}
