package grid

import (
	"image/color"
	"math"
)

const (
	// settleEpsilon is the per-axis speed below which an excited particle starts settling.
	settleEpsilon = 0.01

	minReturnDuration = 0.05
)

// Params holds the engine configuration. It is fixed for the lifetime of an Engine.
type Params struct {
	ParticleDiameter   float64
	Gap                float64
	RestColor          color.Color
	ActiveColor        color.Color
	ProximityRadius    float64
	SpeedThreshold     float64
	ShockRadius        float64
	ShockStrength      float64
	MaxSpeedNormalizer float64
	Resistance         float64
	ReturnDuration     float64 // seconds
}

// DefaultColor is the violet used for both resting and active particles by default.
var DefaultColor = color.NRGBA{R: 0x52, G: 0x27, B: 0xFF, A: 0xFF}

func DefaultParams() Params {
	return Params{
		ParticleDiameter:   16,
		Gap:                32,
		RestColor:          DefaultColor,
		ActiveColor:        DefaultColor,
		ProximityRadius:    150,
		SpeedThreshold:     100,
		ShockRadius:        250,
		ShockStrength:      5,
		MaxSpeedNormalizer: 5000,
		Resistance:         750,
		ReturnDuration:     1.5,
	}
}

// Sanitize returns a copy with values that would break the simulation replaced
// by harmless ones. NaN and negative radii disable the matching effect; an
// infinite speed threshold disables inertia.
func (p Params) Sanitize() Params {
	if p.RestColor == nil {
		p.RestColor = DefaultColor
	}
	if p.ActiveColor == nil {
		p.ActiveColor = p.RestColor
	}
	p.ParticleDiameter = nonNegative(p.ParticleDiameter)
	p.Gap = nonNegative(p.Gap)
	p.ProximityRadius = nonNegative(p.ProximityRadius)
	p.ShockRadius = nonNegative(p.ShockRadius)
	p.ShockStrength = finite(p.ShockStrength)
	p.MaxSpeedNormalizer = nonNegative(p.MaxSpeedNormalizer)
	p.Resistance = finite(p.Resistance)
	if !(p.ReturnDuration >= minReturnDuration) || math.IsInf(p.ReturnDuration, 0) {
		p.ReturnDuration = minReturnDuration
	}
	return p
}

// retention is the fraction of velocity kept each frame.
func (p Params) retention() float64 {
	return clamp01(1 - p.Resistance/10000)
}

// springRate is the per-frame pull toward the rest position.
func (p Params) springRate() float64 {
	return (1 / p.ReturnDuration) * 0.1
}

// speedFactor normalizes pointer speed into [0,1].
func (p Params) speedFactor(speed float64) float64 {
	if p.MaxSpeedNormalizer <= 0 {
		return 1
	}
	return math.Min(speed/p.MaxSpeedNormalizer, 1)
}

func nonNegative(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
