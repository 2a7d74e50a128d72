package strata

import (
	"strconv"
	"strings"
)

// textKey is the set of properties a text layout depends on.
type textKey struct {
	text       string
	font       string
	maxWidth   float64
	lineHeight float64
}

// textLayout caches a layer's wrapped lines and measured size. It is
// recomputed only when its key changes.
type textLayout struct {
	key    textKey
	valid  bool
	lines  []string
	width  float64
	height float64
}

// fontString builds the context font for l, as in "italic 16px sans-serif".
func fontString(l *Layer) string {
	return l.FontStyle + " " + strconv.FormatFloat(l.FontSize, 'f', -1, 64) + "px " + l.FontFamily
}

// MeasureText sets the layer's Width and Height to the size of its text and
// returns them. Multi-line text is as wide as its widest line and as tall as
// FontSize × lines × LineHeight.
func (c *Canvas) MeasureText(l *Layer) (width, height float64) {
	ctx := c.ctx()
	if ctx == nil {
		return l.Width, l.Height
	}
	tl := c.layoutText(ctx, l)
	return tl.width, tl.height
}

func (c *Canvas) layoutText(ctx Context, l *Layer) *textLayout {
	key := textKey{text: l.Text, font: fontString(l), maxWidth: l.MaxWidth, lineHeight: l.LineHeight}
	tl := &l.text
	if tl.valid && tl.key == key {
		l.Width, l.Height = tl.width, tl.height
		return tl
	}
	ctx.SetFont(key.font)
	tl.key = key
	tl.valid = true
	if l.MaxWidth > 0 {
		tl.lines = wrapText(ctx, l.Text, l.MaxWidth)
	} else {
		tl.lines = strings.Split(l.Text, "\n")
	}
	tl.width = 0
	for _, line := range tl.lines {
		if w, _ := ctx.MeasureText(line); w > tl.width {
			tl.width = w
		}
	}
	tl.height = l.FontSize * float64(len(tl.lines)) * l.LineHeight
	l.Width, l.Height = tl.width, tl.height
	return tl
}

// wrapText splits text at newlines, then greedily at spaces so that no line
// exceeds maxWidth unless it is a single word.
func wrapText(ctx Context, text string, maxWidth float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Split(para, " ")
		if w, _ := ctx.MeasureText(para); len(words) == 1 || w < maxWidth {
			out = append(out, para)
			continue
		}
		line := ""
		for i, word := range words {
			if w, _ := ctx.MeasureText(line + word); w > maxWidth && line != "" {
				out = append(out, strings.TrimRight(line, " "))
				line = ""
			}
			line += word
			if i != len(words)-1 {
				line += " "
			}
		}
		out = append(out, line)
	}
	return out
}

// drawText paints each line of a text layer centered on its position, then
// builds an invisible rectangle over the text for hit testing.
func drawText(c *Canvas, ctx Context, l *Layer) {
	ctx.SetTextBaseline(l.Baseline)
	ctx.SetTextAlign(l.Align)
	ctx.SetFont(fontString(l))
	tl := c.layoutText(ctx, l)

	c.TransformShape(ctx, l, l.Width, l.Height)
	c.SetGlobalProps(ctx, l)

	cx, cy := l.Center()
	x := cx
	switch {
	case l.Align == "left" && l.Width != 0:
		x -= l.Width / 2
	case l.Align == "right" && l.Width != 0:
		x += l.Width / 2
	}
	n := float64(len(tl.lines))
	for i, line := range tl.lines {
		y := cy + float64(i)*l.Height/n - (n-1)*l.Height/n/2
		ctx.SetShadow(l.ShadowX, l.ShadowY, l.ShadowBlur, l.ShadowColor)
		ctx.FillText(line, x, y)
		if l.FillStyle != "transparent" {
			ctx.SetShadow(0, 0, 0, "transparent")
		}
		if l.StrokeWidth != 0 {
			ctx.StrokeText(line, x, y)
		}
	}

	if l.hasEvent {
		var dy float64
		switch l.Baseline {
		case "top":
			dy = l.Height / 2
		case "bottom":
			dy = -l.Height / 2
		}
		ctx.BeginPath()
		ctx.Rect(cx-l.Width/2, cy-l.Height/2+dy, l.Width, l.Height)
		c.DetectEvents(ctx, l)
		ctx.ClosePath()
	}
	c.RestoreTransform(ctx, l)
}
