package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/dot-grid/internal/config"
)

const helpLine = "Tab: next preset  O: open presets  M: sound  +/-: volume  F: fullscreen  H: hide  Esc/Q: quit"

func (h *Host) drawHUD(screen *ebiten.Image) {
	particles, excited := 0, 0
	if h.engine != nil {
		particles = h.engine.Len()
		excited = h.engine.Excited()
	}

	sound := "off"
	if h.player.Enabled() {
		sound = fmt.Sprintf("%.0f%%", h.player.Volume()*100)
	}

	lines := []string{
		fmt.Sprintf("Preset: %s (%d/%d)  Particles: %d  Active: %d",
			h.preset, h.presetIndex()+1, len(h.presets.Names()), particles, excited),
		fmt.Sprintf("Uptime %s  Sound: %s  FPS: %0.0f", formatDuration(time.Since(h.started)), sound, ebiten.ActualFPS()),
		helpLine,
	}
	if h.lastErr != nil {
		lines = append(lines, "Error: "+h.lastErr.Error())
	}

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.HUDX, config.HUDY+i*config.HUDLineHeight)
	}
}

func (h *Host) presetIndex() int {
	for i, name := range h.presets.Names() {
		if name == h.preset {
			return i
		}
	}
	return 0
}
