// Package settings persists viewer preferences between runs.
//
// Only choices made by the viewer are stored (selected preset, sound, window
// mode). Grid motion is never saved.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// Settings are the viewer preferences.
type Settings struct {
	Preset       string  `yaml:"preset"`
	SoundEnabled bool    `yaml:"soundEnabled"`
	Volume       float64 `yaml:"volume"` // 0.0 ~ 1.0
	Fullscreen   bool    `yaml:"fullscreen"`
	ShowHUD      bool    `yaml:"showHUD"`
}

// Default returns the settings used on first launch.
func Default() Settings {
	return Settings{
		Preset:       "default",
		SoundEnabled: true,
		Volume:       0.6,
		Fullscreen:   false,
		ShowHUD:      true,
	}
}

// Manager loads and saves Settings. A nil gdata manager keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
}

// Open opens the per-user store for appName. If the store cannot be opened the
// returned manager works in memory and the error is returned alongside it.
func Open(appName string) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewManager(nil), fmt.Errorf("open settings store: %w", err)
	}
	return NewManager(store), nil
}

// NewManager wraps store and loads any saved settings. Load failures fall back to defaults.
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, settings: Default()}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
	}
	return m
}

// Load reads saved settings, leaving defaults in place when nothing is stored.
func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	m.settings = loaded
	log.Printf("[Settings] loaded: preset=%s sound=%v", loaded.Preset, loaded.SoundEnabled)
	return nil
}

// Save writes the current settings. It is a no-op without a store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

func (m *Manager) SetPreset(name string) {
	m.settings.Preset = name
}

func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = enabled
}

// SetVolume stores volume clamped to [0, 1].
func (m *Manager) SetVolume(volume float64) {
	m.settings.Volume = clampVolume(volume)
}

func (m *Manager) SetFullscreen(enabled bool) {
	m.settings.Fullscreen = enabled
}

func (m *Manager) SetShowHUD(show bool) {
	m.settings.ShowHUD = show
}

func clampVolume(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
