package grid

import (
	"math"
	"testing"
)

const frameDT = 1.0 / 60

func TestStepSkipsRestingParticles(t *testing.T) {
	ps := Generate(100, 100, 50)
	Step(ps, DefaultParams(), frameDT)
	for i := range ps {
		if !ps[i].AtRest() || ps[i].Excited() {
			t.Fatalf("resting particle %d moved: %+v", i, ps[i])
		}
	}
}

func TestStepIntegratesOneFrame(t *testing.T) {
	p := DefaultParams()
	ps := single(0, 0)
	ps[0].push(1, 0)

	Step(ps, p, frameDT)

	retention := 1 - p.Resistance/10000
	wantX := retention
	wantVX := retention + (0-wantX)*(1/p.ReturnDuration)*0.1
	if math.Abs(ps[0].X-wantX) > 1e-12 {
		t.Errorf("X = %v, want %v", ps[0].X, wantX)
	}
	if math.Abs(ps[0].VX-wantVX) > 1e-12 {
		t.Errorf("VX = %v, want %v", ps[0].VX, wantVX)
	}
	if ps[0].State != Excited {
		t.Errorf("state = %v, want excited", ps[0].State)
	}
}

func TestStepEntersSettlingBelowEpsilon(t *testing.T) {
	ps := single(0, 0)
	ps[0].push(0.001, -0.001)

	Step(ps, DefaultParams(), frameDT)

	if ps[0].State != Settling {
		t.Fatalf("state = %v, want settling", ps[0].State)
	}
	if ps[0].VX != 0 || ps[0].VY != 0 {
		t.Errorf("velocity = (%v, %v), want zero", ps[0].VX, ps[0].VY)
	}
	if !ps[0].Excited() {
		t.Errorf("settling particle must still count as excited")
	}
}

func TestSettleTween(t *testing.T) {
	p := DefaultParams()
	ps := single(0, 0)
	ps[0].X, ps[0].fromX = 10, 10
	ps[0].State = Settling

	Step(ps, p, p.ReturnDuration/2)
	want := 10 - 10*easeOutCubic(0.5)
	if math.Abs(ps[0].X-want) > 1e-9 {
		t.Errorf("X half way = %v, want %v", ps[0].X, want)
	}
	if ps[0].State != Settling {
		t.Fatalf("state = %v, want settling", ps[0].State)
	}

	Step(ps, p, p.ReturnDuration/2)
	if ps[0].State != Resting || !ps[0].AtRest() {
		t.Errorf("particle after full tween = %+v, want resting on rest point", ps[0])
	}
}

func TestImpulseInterruptsSettling(t *testing.T) {
	p := DefaultParams()
	ps := single(0, 0)
	ps[0].X, ps[0].fromX = 4, 4
	ps[0].State = Settling
	ps[0].elapsed = 1

	ApplyShockwave(ps, -10, 0, p)

	if ps[0].State != Excited {
		t.Errorf("state = %v, want excited", ps[0].State)
	}
	if ps[0].elapsed != 0 {
		t.Errorf("tween clock not reset: %v", ps[0].elapsed)
	}
}

func TestStepConverges(t *testing.T) {
	p := DefaultParams()
	p.Gap = 30
	ps := Generate(300, 300, p.Gap)

	ApplyShockwave(ps, 150, 150, p)
	ApplyInertia(ps, 90, 60, 3000, p)
	if CountExcited(ps) == 0 {
		t.Fatal("nothing excited")
	}

	for frame := 0; frame < 3000 && CountExcited(ps) > 0; frame++ {
		Step(ps, p, frameDT)
	}

	for i := range ps {
		if ps[i].Excited() {
			t.Fatalf("particle %d still %v after 3000 frames: %+v", i, ps[i].State, ps[i])
		}
		if !ps[i].AtRest() {
			t.Fatalf("resting particle %d off its rest point: %+v", i, ps[i])
		}
	}
}

func TestStepExtremeParams(t *testing.T) {
	tests := []struct {
		name string
		edit func(p *Params)
	}{
		{"resistance above 10000", func(p *Params) { p.Resistance = 20000 }},
		{"negative resistance", func(p *Params) { p.Resistance = -500 }},
		{"zero return duration", func(p *Params) { p.ReturnDuration = 0 }},
		{"nan return duration", func(p *Params) { p.ReturnDuration = math.NaN() }},
		{"zero max speed", func(p *Params) { p.MaxSpeedNormalizer = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			p = p.Sanitize()

			ps := Generate(200, 200, 20)
			ApplyShockwave(ps, 100, 100, p)
			ApplyInertia(ps, 100, 100, 500, p)
			for i := 0; i < 200; i++ {
				Step(ps, p, frameDT)
			}
			for i := range ps {
				for _, v := range []float64{ps[i].X, ps[i].Y, ps[i].VX, ps[i].VY} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("particle %d not finite: %+v", i, ps[i])
					}
				}
			}
		})
	}
}

func TestStepIgnoresBadDT(t *testing.T) {
	p := DefaultParams()
	ps := single(0, 0)
	ps[0].X, ps[0].fromX = 3, 3
	ps[0].State = Settling

	Step(ps, p, math.NaN())
	Step(ps, p, -1)

	if ps[0].X != 3 || ps[0].State != Settling {
		t.Errorf("particle moved on invalid dt: %+v", ps[0])
	}
}
