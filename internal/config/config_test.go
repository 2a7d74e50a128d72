package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if !cfg.ShowFPS || cfg.Debug {
		t.Errorf("ShowFPS = %v Debug = %v", cfg.ShowFPS, cfg.Debug)
	}
	if cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", cfg.ScreenshotDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STRATA_WIDTH", "320")
	t.Setenv("STRATA_DEBUG", "true")
	t.Setenv("STRATA_SCRIPT", "smoke.json")
	t.Setenv("STRATA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || !cfg.Debug || cfg.Script != "smoke.json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STRATA_HEIGHT", "tall")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric height")
	}
}

func TestLevelFallback(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
}
