// Command strata-demo opens a window with a handful of interactive layers:
// draggable cards that move as a group, a hover-highlighted button, a
// masked region and an animated badge. Set STRATA_SCRIPT to a JSON test
// script to run it unattended and write screenshots.
package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/ebitenhost"
	"github.com/phanxgames/strata/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	strata.SetLogger(logger)

	host := ebitenhost.New(cfg.Width, cfg.Height)
	host.ShowFPS = cfg.ShowFPS
	host.Loader.FS = os.DirFS(cfg.AssetDir)
	host.Canvas.SetDebugMode(cfg.Debug)

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			slog.Error("read test script", "path", cfg.Script, "error", err)
			os.Exit(1)
		}
		runner, err := strata.LoadTestScript(data)
		if err != nil {
			slog.Error("parse test script", "path", cfg.Script, "error", err)
			os.Exit(1)
		}
		runner.ScreenshotDir = cfg.ScreenshotDir
		host.Runner = runner
	}

	buildScene(host.Canvas, cfg.Width, cfg.Height)

	if err := ebitenhost.Run(host, cfg.Title); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
	if host.Runner != nil {
		slog.Info("test script finished", "screenshots", len(host.Runner.Screenshots()))
	}
}

func buildScene(c *strata.Canvas, w, h int) {
	fw, fh := float64(w), float64(h)

	c.AddLayer(strata.Patch{
		"type": "rectangle", "name": "background", "fromCenter": false,
		"width": fw, "height": fh, "fillStyle": "#1e1e28",
	})

	for i, color := range []string{"#50b4ff", "#ff7050", "#70e070"} {
		c.AddLayer(strata.Patch{
			"type": "rectangle", "groups": []string{"cards"}, "dragGroups": []string{"cards"},
			"x": 120 + float64(i)*90, "y": 140, "width": 80, "height": 110, "cornerRadius": 8,
			"fillStyle": color, "strokeStyle": "#ffffff", "strokeWidth": 2,
			"draggable": true, "bringToFront": true,
			"cursors": map[string]string{strata.EventMouseOver: "grab", strata.EventMouseDown: "grabbing", strata.EventMouseUp: "grab"},
		})
	}

	c.AddLayer(strata.Patch{
		"type": "rectangle", "name": "button", "x": fw / 2, "y": fh - 60, "width": 160, "height": 40,
		"fillStyle":           "#3a3a4a",
		"cursors":             map[string]string{strata.EventMouseOver: "pointer"},
		strata.EventMouseOver: func(e *strata.Event) {
			e.Canvas.AnimateLayer(e.Layer, strata.Patch{"fillStyle": "#5a5a7a"}, strata.AnimateOptions{Duration: 150 * time.Millisecond})
		},
		strata.EventMouseOut: func(e *strata.Event) {
			e.Canvas.AnimateLayer(e.Layer, strata.Patch{"fillStyle": "#3a3a4a"}, strata.AnimateOptions{Duration: 150 * time.Millisecond})
		},
		strata.EventClick: func(e *strata.Event) {
			e.Canvas.AnimateLayerGroup(strata.Group("cards"), strata.Patch{"rotate": "+=360"}, strata.AnimateOptions{
				Duration: 600 * time.Millisecond,
				Easing:   "easeInOutCubic",
			})
		},
	})
	c.AddLayer(strata.Patch{
		"type": "text", "name": "label", "text": "Spin", "x": fw / 2, "y": fh - 60,
		"fontSize": 18, "fillStyle": "#ffffff", "intangible": true,
	})

	c.AddLayer(strata.Patch{
		"type": "arc", "name": "window", "x": fw - 110, "y": 110, "radius": 70,
		"strokeStyle": "#888888", "strokeWidth": 2, "mask": true,
	})
	c.AddLayer(strata.Patch{
		"type": "rectangle", "name": "stripe", "x": fw - 110, "y": 110, "width": 220, "height": 30,
		"fillStyle": "#e0c040", "rotate": 30,
	})
	c.AddLayer(strata.Patch{"type": "restore"})

	badge := c.AddLayer(strata.Patch{
		"type": "arc", "name": "badge", "x": 60, "y": 60, "radius": 14, "fillStyle": "#ff4060",
	})
	pulse(c, badge)

	c.DrawLayers(strata.DrawOptions{})
}

// pulse grows and shrinks the badge forever.
func pulse(c *strata.Canvas, l *strata.Layer) {
	c.AnimateLayer(l, strata.Patch{"radius": 20}, strata.AnimateOptions{Duration: 500 * time.Millisecond})
	c.AnimateLayer(l, strata.Patch{"radius": 14}, strata.AnimateOptions{
		Duration: 500 * time.Millisecond,
		Complete: func(l *strata.Layer) { pulse(c, l) },
	})
}
