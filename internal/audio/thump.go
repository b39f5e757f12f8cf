package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	thumpLength    = 280 * time.Millisecond
	thumpStartFreq = 110.0
	thumpEndFreq   = 42.0
	thumpDecay     = 14.0 // envelope falloff per second
)

// thump is a short low sine with a falling pitch and exponential decay.
type thump struct {
	sampleRate beep.SampleRate
	amplitude  float64
	total      int
	pos        int
	phase      float64
}

func newThump(sr beep.SampleRate, amplitude float64) *thump {
	return &thump{
		sampleRate: sr,
		amplitude:  amplitude,
		total:      sr.N(thumpLength),
	}
}

func (t *thump) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	rate := float64(t.sampleRate)
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		progress := float64(t.pos) / float64(t.total)
		freq := thumpStartFreq + (thumpEndFreq-thumpStartFreq)*progress
		env := math.Exp(-thumpDecay * float64(t.pos) / rate)

		v := t.amplitude * env * math.Sin(t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += 2 * math.Pi * freq / rate
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
		t.pos++
		n++
	}
	return n, true
}

func (t *thump) Err() error { return nil }
