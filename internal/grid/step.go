package grid

import "math"

// Step advances every non-resting particle by one frame. dt is the frame time
// in seconds and only drives the settle tween; the spring and damping terms are
// applied per frame.
func Step(ps []Particle, p Params, dt float64) {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	retention := p.retention()
	rate := p.springRate()

	for i := range ps {
		pt := &ps[i]
		switch pt.State {
		case Excited:
			pt.VX *= retention
			pt.VY *= retention

			pt.X += pt.VX
			pt.Y += pt.VY

			pt.VX += (pt.RestX - pt.X) * rate
			pt.VY += (pt.RestY - pt.Y) * rate

			if math.Abs(pt.VX) < settleEpsilon && math.Abs(pt.VY) < settleEpsilon {
				pt.VX, pt.VY = 0, 0
				pt.State = Settling
				pt.fromX, pt.fromY = pt.X, pt.Y
				pt.elapsed = 0
			}
		case Settling:
			pt.elapsed += dt
			t := pt.elapsed / p.ReturnDuration
			if t >= 1 {
				pt.settle()
				continue
			}
			k := easeOutCubic(t)
			pt.X = pt.fromX + (pt.RestX-pt.fromX)*k
			pt.Y = pt.fromY + (pt.RestY-pt.fromY)*k
		}
	}
}

// settle snaps the particle onto its rest coordinate.
func (p *Particle) settle() {
	p.X, p.Y = p.RestX, p.RestY
	p.VX, p.VY = 0, 0
	p.State = Resting
	p.elapsed = 0
}

// easeOutCubic decelerates toward t = 1.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
