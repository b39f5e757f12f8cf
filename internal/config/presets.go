package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/iburimskiy/dot-grid/internal/grid"
	"gopkg.in/yaml.v3"
)

// DefaultPreset is the variant every other preset inherits from.
const DefaultPreset = "default"

// ErrUnknownPreset is returned when a variant name is not in the table.
var ErrUnknownPreset = errors.New("unknown preset")

//go:embed presets.yaml
var builtinPresets []byte

// Preset is one variant as written in YAML. Nil fields inherit from the default preset.
type Preset struct {
	ParticleDiameter   *float64 `yaml:"particleDiameter,omitempty"`
	Gap                *float64 `yaml:"gap,omitempty"`
	RestColor          *string  `yaml:"restColor,omitempty"`
	ActiveColor        *string  `yaml:"activeColor,omitempty"`
	ProximityRadius    *float64 `yaml:"proximityRadius,omitempty"`
	SpeedThreshold     *float64 `yaml:"speedThreshold,omitempty"`
	ShockRadius        *float64 `yaml:"shockRadius,omitempty"`
	ShockStrength      *float64 `yaml:"shockStrength,omitempty"`
	MaxSpeedNormalizer *float64 `yaml:"maxSpeedNormalizer,omitempty"`
	Resistance         *float64 `yaml:"resistance,omitempty"`
	ReturnDuration     *float64 `yaml:"returnDuration,omitempty"`
}

// over returns p with unset fields taken from base.
func (p Preset) over(base Preset) Preset {
	pick := func(a, b *float64) *float64 {
		if a != nil {
			return a
		}
		return b
	}
	pickString := func(a, b *string) *string {
		if a != nil {
			return a
		}
		return b
	}
	return Preset{
		ParticleDiameter:   pick(p.ParticleDiameter, base.ParticleDiameter),
		Gap:                pick(p.Gap, base.Gap),
		RestColor:          pickString(p.RestColor, base.RestColor),
		ActiveColor:        pickString(p.ActiveColor, base.ActiveColor),
		ProximityRadius:    pick(p.ProximityRadius, base.ProximityRadius),
		SpeedThreshold:     pick(p.SpeedThreshold, base.SpeedThreshold),
		ShockRadius:        pick(p.ShockRadius, base.ShockRadius),
		ShockStrength:      pick(p.ShockStrength, base.ShockStrength),
		MaxSpeedNormalizer: pick(p.MaxSpeedNormalizer, base.MaxSpeedNormalizer),
		Resistance:         pick(p.Resistance, base.Resistance),
		ReturnDuration:     pick(p.ReturnDuration, base.ReturnDuration),
	}
}

// params converts a fully merged preset. Unset fields fall back to grid.DefaultParams.
func (p Preset) params() (grid.Params, error) {
	out := grid.DefaultParams()
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.ParticleDiameter, p.ParticleDiameter)
	set(&out.Gap, p.Gap)
	set(&out.ProximityRadius, p.ProximityRadius)
	set(&out.SpeedThreshold, p.SpeedThreshold)
	set(&out.ShockRadius, p.ShockRadius)
	set(&out.ShockStrength, p.ShockStrength)
	set(&out.MaxSpeedNormalizer, p.MaxSpeedNormalizer)
	set(&out.Resistance, p.Resistance)
	set(&out.ReturnDuration, p.ReturnDuration)

	if p.RestColor != nil {
		c, err := ParseColor(*p.RestColor)
		if err != nil {
			return grid.Params{}, fmt.Errorf("restColor: %w", err)
		}
		out.RestColor = c
	}
	if p.ActiveColor != nil {
		c, err := ParseColor(*p.ActiveColor)
		if err != nil {
			return grid.Params{}, fmt.Errorf("activeColor: %w", err)
		}
		out.ActiveColor = c
	}
	return out, nil
}

// Presets is the variant table, kept in file order.
type Presets struct {
	names  []string
	byName map[string]Preset
}

// BuiltinPresets returns the embedded variant table.
func BuiltinPresets() *Presets {
	ps, err := ParsePresets(builtinPresets)
	if err != nil {
		// embedded file is covered by tests
		panic(fmt.Sprintf("builtin presets: %v", err))
	}
	return ps
}

// ParsePresets decodes a YAML mapping of variant name to preset.
func ParsePresets(data []byte) (*Presets, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	ps := &Presets{byName: map[string]Preset{}}
	if len(doc.Content) == 0 {
		return ps, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode presets: line %d: want a mapping of preset names", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var p Preset
		if err := value.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode preset %q: %w", key.Value, err)
		}
		ps.put(key.Value, p)
	}
	return ps, nil
}

// LoadPresetFile merges the presets in path over ps and returns the names it defined.
func (ps *Presets) LoadPresetFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	extra, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// validate before touching ps so a bad file leaves the table intact
	merged := ps.clone()
	for _, name := range extra.names {
		merged.put(name, extra.byName[name].over(merged.byName[name]))
	}
	for _, name := range extra.names {
		if _, err := merged.Params(name); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	*ps = *merged
	log.Printf("[Config] loaded %d presets from %s", len(extra.names), path)
	return extra.Names(), nil
}

// Names returns the variant names in table order.
func (ps *Presets) Names() []string {
	out := make([]string, len(ps.names))
	copy(out, ps.names)
	return out
}

// Has reports whether name is in the table.
func (ps *Presets) Has(name string) bool {
	_, ok := ps.byName[name]
	return ok
}

// Params resolves a variant into engine parameters.
func (ps *Presets) Params(name string) (grid.Params, error) {
	p, ok := ps.byName[name]
	if !ok {
		return grid.Params{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if name != DefaultPreset {
		p = p.over(ps.byName[DefaultPreset])
	}
	params, err := p.params()
	if err != nil {
		return grid.Params{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return params, nil
}

// Next returns the variant after name, wrapping around. Unknown names start over.
func (ps *Presets) Next(name string) string {
	if len(ps.names) == 0 {
		return name
	}
	for i, n := range ps.names {
		if n == name {
			return ps.names[(i+1)%len(ps.names)]
		}
	}
	return ps.names[0]
}

func (ps *Presets) put(name string, p Preset) {
	if _, ok := ps.byName[name]; !ok {
		ps.names = append(ps.names, name)
	}
	ps.byName[name] = p
}

func (ps *Presets) clone() *Presets {
	out := &Presets{names: ps.Names(), byName: make(map[string]Preset, len(ps.byName))}
	for k, v := range ps.byName {
		out.byName[k] = v
	}
	return out
}
