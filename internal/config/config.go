package config

import (
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Config is the demo host configuration, read from STRATA_* environment
// variables.
type Config struct {
	Width         int    `envconfig:"WIDTH" default:"640"`
	Height        int    `envconfig:"HEIGHT" default:"480"`
	Title         string `envconfig:"TITLE" default:"strata demo"`
	ShowFPS       bool   `envconfig:"SHOW_FPS" default:"true"`
	Debug         bool   `envconfig:"DEBUG" default:"false"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	AssetDir      string `envconfig:"ASSET_DIR" default:"./assets"`
	Script        string `envconfig:"SCRIPT"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("strata", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level maps LogLevel to a slog level. Unknown names mean Info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
