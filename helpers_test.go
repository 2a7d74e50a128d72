package strata

import (
	"testing"

	"github.com/phanxgames/strata/raster"
)

// newTestCanvas returns a canvas over a 200×200 raster surface.
func newTestCanvas(t *testing.T) (*Canvas, *BasicSurface) {
	t.Helper()
	s := NewBasicSurface(raster.New(200, 200), 200, 200)
	t.Cleanup(ClearCache)
	return For(s), s
}

// assertIndices fails when any layer's stored index disagrees with its
// position.
func assertIndices(t *testing.T, c *Canvas) {
	t.Helper()
	for i, l := range c.Layers(nil) {
		if l.Index() != i {
			t.Errorf("layer %q at position %d has index %d", l.Name, i, l.Index())
		}
	}
}

// counter returns a handler that counts its calls.
func counter(n *int) Handler {
	return func(*Event) { *n++ }
}
