package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Dot Grid"

	// Settings storage
	AppName = "dotgrid"

	// HUD
	HUDX          = 12
	HUDY          = 12
	HUDLineHeight = 16
)

// App is the process configuration. Environment values are read first and
// command-line flags may override them. An empty Preset means the saved choice.
type App struct {
	Preset     string `env:"DOTGRID_PRESET"`
	PresetFile string `env:"DOTGRID_PRESET_FILE"`
	Width      int    `env:"DOTGRID_WIDTH"       envDefault:"1024"`
	Height     int    `env:"DOTGRID_HEIGHT"      envDefault:"640"`
	Verbose    bool   `env:"DOTGRID_VERBOSE"`
	Mute       bool   `env:"DOTGRID_MUTE"`
}

// LoadApp reads the process configuration from the environment.
func LoadApp() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Width <= 0 {
		cfg.Width = WindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = WindowHeight
	}
	return cfg, nil
}
