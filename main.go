package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/dot-grid/internal/audio"
	"github.com/iburimskiy/dot-grid/internal/config"
	"github.com/iburimskiy/dot-grid/internal/game"
	"github.com/iburimskiy/dot-grid/internal/settings"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.Preset, "preset", cfg.Preset, "Grid preset to start with (default: last used)")
	flag.StringVar(&cfg.PresetFile, "presets", cfg.PresetFile, "YAML file with extra presets")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Window height")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose logging")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Start with sound off")
	flag.Parse()

	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sm, err := settings.Open(config.AppName)
	if err != nil {
		log.Printf("[Main] %v (settings will not be saved)", err)
	}
	prefs := sm.Get()

	presets := config.BuiltinPresets()
	if cfg.PresetFile != "" {
		if _, err := presets.LoadPresetFile(cfg.PresetFile); err != nil {
			fmt.Fprintf(os.Stderr, "dotgrid: %v\n", err)
			os.Exit(1)
		}
	}

	preset := cfg.Preset
	if preset == "" {
		preset = prefs.Preset
	}

	player := audio.NewPlayer(prefs.SoundEnabled && !cfg.Mute, prefs.Volume)
	if err := player.Init(); err != nil {
		log.Printf("[Main] %v (sound disabled)", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(config.WindowTitle + " - Click for a shockwave, Tab: next preset, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetFullscreen(prefs.Fullscreen)

	h := game.NewHost(presets, sm, player, preset)
	defer h.Close()
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
