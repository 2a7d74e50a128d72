package raster

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache lazily parses the Go font family and hands out faces by size.
// Every CSS family maps onto Go Regular, Bold or Italic.
type fontCache struct {
	once    sync.Once
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

type faceKey struct {
	style string
	size  float64
}

func newFontCache() *fontCache {
	return &fontCache{faces: make(map[faceKey]text.Face)}
}

func (f *fontCache) load() {
	f.sources = make(map[string]*text.FontSource)
	for style, data := range map[string][]byte{
		"regular": goregular.TTF,
		"bold":    gobold.TTF,
		"italic":  goitalic.TTF,
	} {
		src, err := text.NewFontSource(data)
		if err != nil {
			continue
		}
		f.sources[style] = src
	}
}

func (f *fontCache) face(style string, size float64) text.Face {
	f.once.Do(f.load)
	key := faceKey{style, size}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.sources[style]
	if src == nil {
		src = f.sources["regular"]
	}
	if src == nil {
		return nil
	}
	face := src.Face(size)
	f.faces[key] = face
	return face
}

// parseFont extracts the style and pixel size from a CSS font shorthand
// such as "italic bold 16px Arial". ok is false when no size is present.
func parseFont(font string) (style string, size float64, ok bool) {
	style = "regular"
	for _, field := range strings.Fields(font) {
		switch field {
		case "bold", "bolder", "600", "700", "800", "900":
			style = "bold"
			continue
		case "italic", "oblique":
			style = "italic"
			continue
		}
		var unit float64
		switch {
		case strings.HasSuffix(field, "px"):
			unit = 1
			field = strings.TrimSuffix(field, "px")
		case strings.HasSuffix(field, "pt"):
			unit = 4.0 / 3
			field = strings.TrimSuffix(field, "pt")
		default:
			continue
		}
		if n, err := strconv.ParseFloat(field, 64); err == nil && n > 0 {
			size, ok = n*unit, true
		}
	}
	return style, size, ok
}

// SetFont sets the font from a CSS shorthand. A font without a size is
// ignored.
func (c *Context) SetFont(font string) {
	style, size, ok := parseFont(font)
	if !ok {
		return
	}
	c.st.font = font
	c.st.fontSize = size
	if face := c.fonts.face(style, size); face != nil {
		c.gc.SetFont(face)
	}
}

// Font returns the current font shorthand.
func (c *Context) Font() string { return c.st.font }

// SetTextAlign sets "start", "end", "left", "right" or "center".
func (c *Context) SetTextAlign(align string) {
	switch align {
	case "start", "end", "left", "right", "center":
		c.st.align = align
	}
}

// SetTextBaseline sets "top", "hanging", "middle", "alphabetic",
// "ideographic" or "bottom".
func (c *Context) SetTextBaseline(baseline string) {
	switch baseline {
	case "top", "hanging", "middle", "alphabetic", "ideographic", "bottom":
		c.st.baseline = baseline
	}
}

// MeasureText returns the advance width of s and the line height of the
// current font.
func (c *Context) MeasureText(s string) (width, height float64) {
	return c.gc.MeasureString(s)
}

func (c *Context) anchor() (ax, ay float64, onBaseline bool) {
	switch c.st.align {
	case "center":
		ax = 0.5
	case "right", "end":
		ax = 1
	}
	switch c.st.baseline {
	case "top", "hanging":
		ay = 0
	case "middle":
		ay = 0.5
	case "bottom", "ideographic":
		ay = 1
	default:
		onBaseline = true
	}
	return ax, ay, onBaseline
}

func (c *Context) drawString(s string, x, y float64) {
	ax, ay, onBaseline := c.anchor()
	if onBaseline {
		w, _ := c.gc.MeasureString(s)
		c.gc.DrawString(s, x-w*ax, y)
		return
	}
	c.gc.DrawStringAnchored(s, x, y, ax, ay)
}

// FillText paints s in the fill style, anchored at (x, y) by the current
// alignment and baseline.
func (c *Context) FillText(s string, x, y float64) {
	b, ok := c.brush(c.st.fill)
	if !ok {
		return
	}
	c.gc.SetFillBrush(b)
	c.drawString(s, x, y)
}

// StrokeText paints s in the stroke style. Glyphs are filled rather than
// outlined, so it only paints when the fill style is transparent.
func (c *Context) StrokeText(s string, x, y float64) {
	if c.st.fill.A*c.st.alpha > 0 {
		return
	}
	b, ok := c.brush(c.st.stroke)
	if !ok {
		return
	}
	c.gc.SetFillBrush(b)
	c.drawString(s, x, y)
}
