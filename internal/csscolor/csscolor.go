// Package csscolor parses and formats the CSS color strings used for layer
// styles: hex notation, rgb()/rgba() functions, named colors and
// "transparent".
package csscolor

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a straight-alpha color with 0..255 channels and a 0..1 alpha.
type Color struct {
	R, G, B float64
	A       float64
}

// Transparent is the CSS "transparent" keyword.
var Transparent = Color{0, 0, 0, 0}

// Parse converts a CSS color string. The second result is false when the
// string is not a recognised color.
func Parse(s string) (Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return Color{}, false
	case s == "transparent":
		return Transparent, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if nc, ok := colornames.Map[s]; ok {
		return Color{float64(nc.R), float64(nc.G), float64(nc.B), float64(nc.A) / 255}, true
	}
	return Color{}, false
}

func parseHex(s string) (Color, bool) {
	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, false
	}
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{float64(r), float64(g), float64(b), alpha}, true
}

func parseFunc(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	args := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(args[i])
		if !ok {
			return Color{}, false
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return Color{}, false
		}
		alpha = a
	}
	return Color{ch[0], ch[1], ch[2], alpha}, true
}

func parseChannel(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clamp(v*255/100, 0, 255), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp(v, 0, 255), true
}

func parseAlpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clamp(v/100, 0, 1), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp(v, 0, 1), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool { return c.A >= 1 }

// String formats the color as rgb() when opaque and rgba() otherwise.
// Channels are rounded and clamped to 0..255 and alpha to 0..1, so colors
// blended past their ends still format as valid CSS.
func (c Color) String() string {
	r := int(clamp(math.Round(c.R), 0, 255))
	g := int(clamp(math.Round(c.G), 0, 255))
	b := int(clamp(math.Round(c.B), 0, 255))
	a := clamp(c.A, 0, 1)
	if a >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(a, 'f', -1, 64))
}

// NRGBA converts to a straight-alpha image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(math.Round(c.R), 0, 255)),
		G: uint8(clamp(math.Round(c.G), 0, 255)),
		B: uint8(clamp(math.Round(c.B), 0, 255)),
		A: uint8(clamp(math.Round(c.A*255), 0, 255)),
	}
}

// Blend interpolates from one color to another at pos (0..1). Red, green and
// blue are rounded to integers. Alpha is interpolated only when either end
// is not opaque; otherwise the result is opaque.
func Blend(from, to Color, pos float64) Color {
	a := colorful.Color{R: from.R / 255, G: from.G / 255, B: from.B / 255}
	b := colorful.Color{R: to.R / 255, G: to.G / 255, B: to.B / 255}
	m := a.BlendRgb(b, pos)
	out := Color{
		R: math.Round(m.R * 255),
		G: math.Round(m.G * 255),
		B: math.Round(m.B * 255),
		A: 1,
	}
	if !from.Opaque() || !to.Opaque() {
		out.A = from.A + (to.A-from.A)*pos
	}
	return out
}
