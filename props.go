package strata

import (
	"reflect"
	"sync"

	"github.com/jinzhu/copier"
)

// Props is the full property set of a layer. Every field has a default in
// the [Config] the layer was built from; the prop tag is the field's name in
// a [Patch].
type Props struct {
	Type   string   `prop:"type"`
	Name   string   `prop:"name"`
	Groups []string `prop:"groups"`
	// Layer requests persistence when passed to [Canvas.Draw].
	Layer bool `prop:"layer"`

	X          float64 `prop:"x"`
	Y          float64 `prop:"y"`
	Width      float64 `prop:"width"`
	Height     float64 `prop:"height"`
	FromCenter bool    `prop:"fromCenter"`

	FillStyle        string    `prop:"fillStyle"`
	StrokeStyle      string    `prop:"strokeStyle"`
	StrokeWidth      float64   `prop:"strokeWidth"`
	StrokeCap        string    `prop:"strokeCap"`
	StrokeJoin       string    `prop:"strokeJoin"`
	StrokeDash       []float64 `prop:"strokeDash"`
	StrokeDashOffset float64   `prop:"strokeDashOffset"`
	MiterLimit       float64   `prop:"miterLimit"`
	Rounded          bool      `prop:"rounded"`
	FillRule         string    `prop:"fillRule"`
	Closed           bool      `prop:"closed"`
	Opacity          float64   `prop:"opacity"`
	Compositing      string    `prop:"compositing"`
	ShadowX          float64   `prop:"shadowX"`
	ShadowY          float64   `prop:"shadowY"`
	ShadowBlur       float64   `prop:"shadowBlur"`
	ShadowColor      string    `prop:"shadowColor"`
	ShadowStroke     bool      `prop:"shadowStroke"`
	ImageSmoothing   bool      `prop:"imageSmoothing"`

	Rotate     float64 `prop:"rotate"`
	Scale      float64 `prop:"scale"`
	ScaleX     float64 `prop:"scaleX"`
	ScaleY     float64 `prop:"scaleY"`
	Translate  float64 `prop:"translate"`
	TranslateX float64 `prop:"translateX"`
	TranslateY float64 `prop:"translateY"`
	InDegrees  bool    `prop:"inDegrees"`
	Autosave   bool    `prop:"autosave"`
	Count      int     `prop:"count"`

	Radius       float64     `prop:"radius"`
	CornerRadius float64     `prop:"cornerRadius"`
	Start        float64     `prop:"start"`
	End          float64     `prop:"end"`
	CCW          bool        `prop:"ccw"`
	Sides        int         `prop:"sides"`
	Spread       float64     `prop:"spread"`
	Points       []PathPoint `prop:"points"`

	Text       string  `prop:"text"`
	FontStyle  string  `prop:"fontStyle"`
	FontSize   float64 `prop:"fontSize"`
	FontFamily string  `prop:"fontFamily"`
	Align      string  `prop:"align"`
	Baseline   string  `prop:"baseline"`
	LineHeight float64 `prop:"lineHeight"`
	MaxWidth   float64 `prop:"maxWidth"`

	Source         ImageSource `prop:"source" copier:"-"`
	SX             float64     `prop:"sx"`
	SY             float64     `prop:"sy"`
	SWidth         float64     `prop:"sWidth"`
	SHeight        float64     `prop:"sHeight"`
	CropFromCenter bool        `prop:"cropFromCenter"`

	// Fn paints a "function" layer.
	Fn func(ctx Context, l *Layer) `prop:"fn" copier:"-"`

	Visible            bool              `prop:"visible"`
	Mask               bool              `prop:"mask"`
	Draggable          bool              `prop:"draggable"`
	BringToFront       bool              `prop:"bringToFront"`
	RestrictDragToAxis string            `prop:"restrictDragToAxis"`
	DragGroups         []string          `prop:"dragGroups"`
	Intangible         bool              `prop:"intangible"`
	DisableEvents      bool              `prop:"disableEvents"`
	Cursors            map[string]string `prop:"cursors"`

	// UpdateDragX and UpdateDragY may rewrite the position computed for a
	// drag step before it is applied.
	UpdateDragX func(l *Layer, x float64) float64 `prop:"updateDragX" copier:"-"`
	UpdateDragY func(l *Layer, y float64) float64 `prop:"updateDragY" copier:"-"`

	Data map[string]any `prop:"data"`

	// Extra holds properties registered by plugins and any unknown patch
	// keys.
	Extra map[string]any `prop:"-"`
}

// Clone returns a deep copy. Slices and maps are never shared with the
// receiver; the image source and callbacks are shared.
func (p Props) Clone() Props {
	var out Props
	if err := copier.CopyWithOption(&out, &p, copier.Option{DeepCopy: true}); err != nil {
		panic("strata: clone props: " + err.Error())
	}
	out.Source = p.Source
	out.Fn = p.Fn
	out.UpdateDragX = p.UpdateDragX
	out.UpdateDragY = p.UpdateDragY
	return out
}

// --- Name-based access ---

type propField struct {
	index int
	typ   reflect.Type
}

var (
	propTableOnce sync.Once
	propTable     map[string]propField
)

func props() map[string]propField {
	propTableOnce.Do(func() {
		t := reflect.TypeOf(Props{})
		propTable = make(map[string]propField, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := f.Tag.Get("prop")
			if name == "" || name == "-" {
				continue
			}
			propTable[name] = propField{index: i, typ: f.Type}
		}
	})
	return propTable
}

// IsBuiltinProp reports whether name is a field of Props.
func IsBuiltinProp(name string) bool {
	_, ok := props()[name]
	return ok
}

// Get returns the value of the named property, looking in Extra for
// plugin properties.
func (p *Props) Get(name string) (any, bool) {
	if f, ok := props()[name]; ok {
		return reflect.ValueOf(p).Elem().Field(f.index).Interface(), true
	}
	v, ok := p.Extra[name]
	return v, ok
}

// Number returns the named property as a float64 when it is numeric.
func (p *Props) Number(name string) (float64, bool) {
	v, ok := p.Get(name)
	if !ok {
		return 0, false
	}
	if _, isStr := v.(string); isStr {
		return 0, false
	}
	return toFloat(v)
}

// Set assigns the named property after coercion. Unknown names land in
// Extra. It reports whether the value could be stored.
func (p *Props) Set(name string, v any) bool {
	f, ok := props()[name]
	if !ok {
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		if s, isStr := v.(string); isStr {
			if n, numeric := parseNumeric(s); numeric {
				p.Extra[name] = n
				return true
			}
		}
		p.Extra[name] = v
		return true
	}
	field := reflect.ValueOf(p).Elem().Field(f.index)
	val, ok := coerce(name, v, f.typ)
	if !ok {
		return false
	}
	field.Set(val)
	return true
}
