package strata

import (
	"fmt"
	"time"
)

// DebugStats are redraw metrics collected while debug mode is on.
type DebugStats struct {
	// Passes counts calls to DrawLayers that drew at least one layer or
	// suspended.
	Passes    int
	Suspended int
	// Drawn is the number of draw routine calls in the last pass.
	Drawn        int
	LastDuration time.Duration
}

// SetDebugMode turns pass statistics and index consistency checks on or off.
// With debug mode on, every pass is logged at Debug level and a layer whose
// stored index disagrees with its position panics.
func (c *Canvas) SetDebugMode(on bool) *Canvas {
	c.debug = on
	if !on {
		c.stats = DebugStats{}
	}
	return c
}

// DebugStats returns the statistics collected since debug mode was enabled.
func (c *Canvas) DebugStats() DebugStats { return c.stats }

func (c *Canvas) recordPass(res DrawResult, d time.Duration) {
	if !c.debug {
		return
	}
	c.stats.Passes++
	if res.Suspended {
		c.stats.Suspended++
	}
	c.stats.Drawn = res.Drawn
	c.stats.LastDuration = d
	Logger().Debug("strata: pass",
		"layers", len(c.layers),
		"drawn", res.Drawn,
		"suspended", res.Suspended,
		"next", res.Cursor.Next,
		"duration", d,
	)
	debugCheckLayerCount(c)
}

// debugCheckIndices panics when a layer's stored index disagrees with its
// array position. Only called in debug mode.
func debugCheckIndices(c *Canvas, op string) {
	if !c.debug {
		return
	}
	for i, l := range c.layers {
		if l.index != i {
			panic(fmt.Sprintf("strata debug: %s left layer %q at position %d with index %d", op, l.Name, i, l.index))
		}
	}
}

// debugMaxLayerCount is the size above which a warning is logged per pass.
const debugMaxLayerCount = 1000

func debugCheckLayerCount(c *Canvas) {
	if len(c.layers) > debugMaxLayerCount {
		Logger().Warn("strata: layer count exceeds threshold",
			"layers", len(c.layers), "threshold", debugMaxLayerCount)
	}
}
