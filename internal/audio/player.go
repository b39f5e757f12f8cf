// Package audio plays feedback sounds for grid interactions.
package audio

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// Player owns the speaker and turns shockwaves into sounds.
type Player struct {
	sampleRate beep.SampleRate
	enabled    bool
	volume     float64
	initDone   bool
}

func NewPlayer(enabled bool, volume float64) *Player {
	return &Player{
		sampleRate: SampleRate,
		enabled:    enabled,
		volume:     clamp01(volume),
	}
}

// Init opens the speaker. Without it the player stays silent.
func (p *Player) Init() error {
	if p.initDone {
		return nil
	}
	bufferSize := p.sampleRate.N(time.Second / 20)
	if err := speaker.Init(p.sampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initDone = true
	log.Printf("[Audio] speaker ready at %d Hz", p.sampleRate)
	return nil
}

// Close stops anything still playing.
func (p *Player) Close() {
	if !p.initDone {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

func (p *Player) Enabled() bool { return p.enabled }

func (p *Player) SetEnabled(enabled bool) {
	p.enabled = enabled
	if !enabled {
		p.Close()
	}
}

func (p *Player) Volume() float64 { return p.volume }

func (p *Player) SetVolume(volume float64) {
	p.volume = clamp01(volume)
}

// Shockwave plays a thump sized by how much of the grid the shockwave excited.
func (p *Player) Shockwave(excited, total int) {
	if !p.initDone {
		return
	}
	if s := p.voice(excited, total); s != nil {
		speaker.Play(s)
	}
}

// voice builds the stream for a shockwave, or nil when nothing should play.
func (p *Player) voice(excited, total int) beep.Streamer {
	if !p.enabled || excited <= 0 || total <= 0 {
		return nil
	}
	gain := p.volume * strength(excited, total)
	if gain <= 0 {
		return nil
	}
	return &effects.Volume{
		Streamer: newThump(p.sampleRate, 0.8),
		Base:     2,
		Volume:   math.Log2(gain),
	}
}

// strength maps the excited share of the grid onto [0.25, 1].
func strength(excited, total int) float64 {
	share := float64(excited) / float64(total)
	return 0.25 + 0.75*math.Sqrt(clamp01(share*4))
}

func clamp01(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
