package raster

import (
	"math"

	"github.com/gogpu/gg"
)

// curveSegments is the number of line segments a Bézier curve is flattened
// into for hit testing.
const curveSegments = 16

// arcSegmentsPerTurn is the number of line segments a full circle is traced
// with.
const arcSegmentsPerTurn = 64

type point struct{ x, y float64 }

type subpath struct {
	pts    []point
	closed bool
}

// devicePath is the current path flattened into device-space polylines.
type devicePath struct {
	subs []subpath
}

func (p *devicePath) reset() { p.subs = p.subs[:0] }

func (p *devicePath) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

// last returns the end point of the current subpath.
func (p *devicePath) last() (point, bool) {
	s := p.current()
	if s == nil || len(s.pts) == 0 {
		return point{}, false
	}
	return s.pts[len(s.pts)-1], true
}

func (p *devicePath) moveTo(pt point) {
	p.subs = append(p.subs, subpath{pts: []point{pt}})
}

func (p *devicePath) lineTo(pt point) {
	s := p.current()
	if s == nil || s.closed {
		start := pt
		if s != nil && len(s.pts) > 0 {
			start = s.pts[0]
		}
		p.moveTo(start)
		s = p.current()
	}
	s.pts = append(s.pts, pt)
}

func (p *devicePath) close() {
	s := p.current()
	if s == nil || len(s.pts) == 0 {
		return
	}
	s.closed = true
}

// --- Path building ---

// BeginPath discards the current path.
func (c *Context) BeginPath() {
	c.path.reset()
	c.gc.ClearPath()
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	dx, dy := c.toDevice(x, y)
	c.path.moveTo(point{dx, dy})
	c.gc.MoveTo(x, y)
}

// LineTo adds a straight segment. Without a current point it behaves like
// MoveTo.
func (c *Context) LineTo(x, y float64) {
	if _, ok := c.path.last(); !ok {
		c.MoveTo(x, y)
		return
	}
	dx, dy := c.toDevice(x, y)
	c.path.lineTo(point{dx, dy})
	c.gc.LineTo(x, y)
}

// QuadraticCurveTo adds a quadratic Bézier segment.
func (c *Context) QuadraticCurveTo(cx, cy, x, y float64) {
	p0, ok := c.userLast()
	if !ok {
		c.MoveTo(cx, cy)
		p0 = point{cx, cy}
	}
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		px := u*u*p0.x + 2*u*t*cx + t*t*x
		py := u*u*p0.y + 2*u*t*cy + t*t*y
		dx, dy := c.toDevice(px, py)
		c.path.lineTo(point{dx, dy})
	}
	c.gc.QuadraticTo(cx, cy, x, y)
}

// BezierCurveTo adds a cubic Bézier segment.
func (c *Context) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	p0, ok := c.userLast()
	if !ok {
		c.MoveTo(c1x, c1y)
		p0 = point{c1x, c1y}
	}
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		px := u*u*u*p0.x + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*x
		py := u*u*u*p0.y + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*y
		dx, dy := c.toDevice(px, py)
		c.path.lineTo(point{dx, dy})
	}
	c.gc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// userLast returns the current point mapped back into user space.
func (c *Context) userLast() (point, bool) {
	pt, ok := c.path.last()
	if !ok {
		return point{}, false
	}
	inv := c.st.m.Invert()
	u := inv.TransformPoint(gg.Pt(pt.x, pt.y))
	return point{u.X, u.Y}, true
}

// Arc adds a circular arc, connected to the current point by a straight
// line.
func (c *Context) Arc(x, y, radius, start, end float64, ccw bool) {
	if radius < 0 {
		return
	}
	sweep := arcSweep(start, end, ccw)
	n := max(int(math.Ceil(math.Abs(sweep)/(2*math.Pi)*arcSegmentsPerTurn)), 1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		c.LineTo(x+radius*math.Cos(a), y+radius*math.Sin(a))
	}
}

// arcSweep returns the signed angle an arc from start to end covers.
func arcSweep(start, end float64, ccw bool) float64 {
	const turn = 2 * math.Pi
	sweep := end - start
	if !ccw {
		if sweep >= turn {
			return turn
		}
		for sweep < 0 {
			sweep += turn
		}
		return sweep
	}
	if sweep <= -turn {
		return -turn
	}
	for sweep > 0 {
		sweep -= turn
	}
	return sweep
}

// Rect adds a closed rectangle subpath and starts a new subpath at (x, y).
func (c *Context) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
	c.MoveTo(x, y)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.path.close()
	c.gc.ClosePath()
}

// --- Hit testing ---

// IsPointInPath reports whether the surface point (x, y) lies inside the
// current path under the given fill rule. Every subpath is treated as
// closed.
func (c *Context) IsPointInPath(x, y float64, rule string) bool {
	winding, crossings := 0, 0
	for _, s := range c.path.subs {
		n := len(s.pts)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := s.pts[i], s.pts[(i+1)%n]
			if a.y <= y {
				if b.y > y && cross(a, b, x, y) > 0 {
					winding++
					crossings++
				}
			} else if b.y <= y && cross(a, b, x, y) < 0 {
				winding--
				crossings++
			}
		}
	}
	if rule == "evenodd" {
		return crossings%2 == 1
	}
	return winding != 0
}

// cross is positive when (x, y) is left of the edge a→b.
func cross(a, b point, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (x-a.x)*(b.y-a.y)
}

// IsPointInStroke reports whether the surface point (x, y) lies within half
// the line width of the current path's outline.
func (c *Context) IsPointInStroke(x, y float64) bool {
	half := c.st.lineWidth * math.Sqrt(math.Abs(c.st.m.A*c.st.m.E-c.st.m.B*c.st.m.D)) / 2
	p := point{x, y}
	for _, s := range c.path.subs {
		n := len(s.pts)
		for i := 0; i+1 < n; i++ {
			if segDist(p, s.pts[i], s.pts[i+1]) <= half {
				return true
			}
		}
		if s.closed && n > 2 && segDist(p, s.pts[n-1], s.pts[0]) <= half {
			return true
		}
	}
	return false
}

func dist(a, b point) float64 { return math.Hypot(a.x-b.x, a.y-b.y) }

func segDist(p, a, b point) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.x-a.x)*dx + (p.y-a.y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, point{a.x + t*dx, a.y + t*dy})
}
