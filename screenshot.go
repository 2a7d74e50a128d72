package strata

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoSnapshot is returned by [Screenshot] when the surface's context
// cannot hand back its pixels.
var ErrNoSnapshot = errors.New("strata: context does not implement Snapshotter")

// Screenshot captures the surface's current pixels and writes them as a PNG
// into dir with a timestamped filename. It returns the written path.
func Screenshot(s Surface, dir, label string) (string, error) {
	snap, ok := s.Context().(Snapshotter)
	if !ok {
		return "", ErrNoSnapshot
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	src := snap.Snapshot()
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, img); err != nil {
		Logger().Warn("strata: screenshot failed", "path", path, "err", err)
		return "", err
	}
	Logger().Debug("strata: screenshot", "path", path)
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
