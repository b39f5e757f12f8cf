package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/dot-grid/internal/audio"
	"github.com/iburimskiy/dot-grid/internal/config"
	"github.com/iburimskiy/dot-grid/internal/grid"
	"github.com/iburimskiy/dot-grid/internal/settings"
)

var backgroundColor = color.RGBA{R: 10, G: 12, B: 20, A: 255}

const volumeStep = 0.1

// Host runs a grid engine inside an ebiten window.
type Host struct {
	presets  *config.Presets
	settings *settings.Manager
	player   *audio.Player

	engine       *grid.Engine
	preset       string
	engineFailed bool

	surface *surface
	events  *events
	frames  *frameQueue
	input   pointerInput

	// written by Layout, read by Update
	layoutW float64
	layoutH float64
	scale   float64

	started  time.Time
	lastTick time.Time
	showHUD  bool
	lastErr  error
}

// NewHost prepares a host for preset. The engine is created on the first
// Update, once the window size is known.
func NewHost(presets *config.Presets, sm *settings.Manager, player *audio.Player, preset string) *Host {
	if !presets.Has(preset) {
		log.Printf("[Host] unknown preset %q, using %q", preset, config.DefaultPreset)
		preset = config.DefaultPreset
	}
	return &Host{
		presets:  presets,
		settings: sm,
		player:   player,
		preset:   preset,
		surface:  &surface{canvas: &canvas{}},
		events:   &events{},
		frames:   newFrameQueue(),
		showHUD:  sm.Get().ShowHUD,
	}
}

func (h *Host) Update() error {
	now := time.Now()
	if h.started.IsZero() {
		h.started = now
		h.lastTick = now
	}
	dt := now.Sub(h.lastTick).Seconds()
	h.lastTick = now

	h.syncGeometry()

	if err := h.handleKeys(); err != nil {
		return err
	}

	if h.engine == nil && !h.engineFailed && h.surface.scale > 0 {
		if err := h.mount(h.preset); err != nil {
			h.lastErr = err
			h.engineFailed = true
		}
	}

	// input first so this frame's step sees every impulse
	h.input.poll(h.surface.bounds, h.surface.scale, h.events)
	h.frames.pump(dt)
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if img := h.surface.canvas.image; img != nil {
		screen.DrawImage(img, &ebiten.DrawImageOptions{})
	}
	if h.showHUD {
		h.drawHUD(screen)
	}
}

// Layout reports a screen in physical pixels so the grid stays sharp on high
// density displays.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			scale = s
		}
	}
	h.layoutW, h.layoutH, h.scale = float64(outsideWidth), float64(outsideHeight), scale
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// Close tears the engine down and saves preferences.
func (h *Host) Close() {
	if h.engine != nil {
		h.engine.Unmount()
		h.engine = nil
	}
	h.player.Close()
	if err := h.settings.Save(); err != nil {
		log.Printf("[Host] %v", err)
	}
}

func (h *Host) syncGeometry() {
	if h.scale == 0 {
		return
	}
	if h.surface.setGeometry(h.layoutW, h.layoutH, h.scale) && h.engine != nil {
		h.events.resized()
	}
}

// mount replaces the running engine with one built from preset.
func (h *Host) mount(preset string) error {
	params, err := h.presets.Params(preset)
	if err != nil {
		return err
	}
	if h.engine != nil {
		h.engine.Unmount()
		h.engine = nil
	}
	e, err := grid.New(h.surface, h.events, h.frames, params)
	if err != nil {
		if errors.Is(err, grid.ErrUnavailableContext) {
			// no retry until the viewer picks a preset again
			h.engineFailed = true
		}
		log.Printf("[Host] %v", err)
		return err
	}
	e.OnShockwave(h.player.Shockwave)
	e.Mount()

	h.engine = e
	h.engineFailed = false
	h.preset = preset
	h.settings.SetPreset(preset)
	log.Printf("[Host] preset %q mounted", preset)
	return nil
}

func (h *Host) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.lastErr = nil
		h.engineFailed = false
		if err := h.mount(h.presets.Next(h.preset)); err != nil {
			h.lastErr = err
		}
		h.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := h.openPresetFile(); err != nil {
			h.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !h.player.Enabled()
		h.player.SetEnabled(enabled)
		h.settings.SetSoundEnabled(enabled)
		h.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		h.adjustVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		h.adjustVolume(-volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		h.settings.SetFullscreen(fullscreen)
		h.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.showHUD = !h.showHUD
		h.settings.SetShowHUD(h.showHUD)
		h.save()
	}
	return nil
}

// openPresetFile asks for a YAML preset file, merges it and switches to the
// first preset it defines.
func (h *Host) openPresetFile() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Grid Presets"),
		zenity.FileFilters{{
			Name:     "Presets",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select preset file: %w", err)
	}

	names, err := h.presets.LoadPresetFile(filename)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	h.engineFailed = false
	if err := h.mount(names[0]); err != nil {
		return err
	}
	h.save()
	return nil
}

// adjustVolume changes the shockwave volume by delta and saves it.
func (h *Host) adjustVolume(delta float64) {
	h.player.SetVolume(h.player.Volume() + delta)
	h.settings.SetVolume(h.player.Volume())
	h.save()
}

func (h *Host) save() {
	if err := h.settings.Save(); err != nil {
		log.Printf("[Host] %v", err)
		h.lastErr = err
	}
}
