package strata

import (
	"errors"
	"fmt"
	"sync"
)

// ErrShadowedProperty is returned by [Config.Extend] when a plugin declares a
// property that already exists.
var ErrShadowedProperty = errors.New("strata: plugin shadows an existing property")

// ErrShadowedType is returned by [Config.Extend] when a plugin declares a
// shape type that already has a draw routine.
var ErrShadowedType = errors.New("strata: plugin shadows an existing shape type")

// Config is an immutable snapshot of default layer properties and the
// shape-type to draw-routine table. Extending a Config returns a new one;
// canvases and layers keep a reference to the snapshot they were built from.
type Config struct {
	defaults   Props
	draws      map[string]DrawFunc
	colorProps map[string]bool
}

// Plugin extends a Config with a new shape type and its properties.
type Plugin struct {
	// Type is the shape type name, used as a layer's "type" property.
	Type string
	// Props are the plugin's extra properties and their defaults.
	Props Patch
	// ColorProps names properties (built-in or plugin) whose values are CSS
	// colors and tween component-wise.
	ColorProps []string
	Draw       DrawFunc
}

var (
	baseConfigOnce sync.Once
	baseConfig     *Config
)

// DefaultConfig returns the base configuration: the built-in property
// defaults and shapes.
func DefaultConfig() *Config {
	baseConfigOnce.Do(func() {
		baseConfig = &Config{
			defaults:   baseDefaults(),
			draws:      builtinShapes(),
			colorProps: map[string]bool{"fillStyle": true, "strokeStyle": true, "shadowColor": true},
		}
	})
	return baseConfig
}

func baseDefaults() Props {
	return Props{
		Align:          "center",
		Autosave:       true,
		Baseline:       "middle",
		Compositing:    "source-over",
		Count:          1,
		CropFromCenter: true,
		End:            360,
		FillRule:       "nonzero",
		FillStyle:      "transparent",
		FontStyle:      "normal",
		FontSize:       12,
		FontFamily:     "sans-serif",
		FromCenter:     true,
		ImageSmoothing: true,
		InDegrees:      true,
		LineHeight:     1,
		MiterLimit:     10,
		Opacity:        1,
		Scale:          1,
		ScaleX:         1,
		ScaleY:         1,
		ShadowColor:    "transparent",
		StrokeCap:      "butt",
		StrokeJoin:     "miter",
		StrokeStyle:    "transparent",
		StrokeWidth:    1,
		Visible:        true,
	}
}

// Extend returns a new Config that adds p's properties and shape type. The
// receiver is left untouched.
func (c *Config) Extend(p Plugin) (*Config, error) {
	if p.Type != "" {
		if _, ok := c.draws[p.Type]; ok {
			return nil, fmt.Errorf("%w: %q", ErrShadowedType, p.Type)
		}
		if p.Draw == nil {
			panic(fmt.Sprintf("strata: plugin %q has no draw routine", p.Type))
		}
	}
	for name := range p.Props {
		if IsBuiltinProp(name) {
			return nil, fmt.Errorf("%w: %q", ErrShadowedProperty, name)
		}
		if _, ok := c.defaults.Extra[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrShadowedProperty, name)
		}
	}

	next := &Config{
		defaults:   c.defaults.Clone(),
		draws:      make(map[string]DrawFunc, len(c.draws)+1),
		colorProps: make(map[string]bool, len(c.colorProps)+len(p.ColorProps)),
	}
	for k, v := range c.draws {
		next.draws[k] = v
	}
	for k, v := range c.colorProps {
		next.colorProps[k] = v
	}
	for name, v := range p.Props {
		next.defaults.Set(name, cloneValue(v))
	}
	for _, name := range p.ColorProps {
		next.colorProps[name] = true
	}
	if p.Type != "" {
		next.draws[p.Type] = p.Draw
	}
	return next, nil
}

// Defaults returns a copy of the default properties.
func (c *Config) Defaults() Props { return c.defaults.Clone() }

// DrawFunc returns the draw routine registered for a shape type.
func (c *Config) DrawFunc(shapeType string) (DrawFunc, bool) {
	fn, ok := c.draws[shapeType]
	return fn, ok
}

// IsColorProp reports whether the named property holds a CSS color.
func (c *Config) IsColorProp(name string) bool { return c.colorProps[name] }

// NewProps builds a fully populated property set: cfg's defaults with p
// applied on top. Handlers in p are ignored; use [NewLayer] to keep them.
func NewProps(cfg *Config, p Patch) Props {
	l := NewLayer(cfg, p)
	return l.Props
}
