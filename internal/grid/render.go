package grid

import "image/color"

// Context is an immediate-mode 2D drawing target. Coordinates are in
// device-independent pixels; the context applies the device scale itself.
type Context interface {
	// Resize sets the backing store to width x height DIP at the given pixel density.
	Resize(width, height, scale float64)
	Clear()
	FillCircle(x, y, radius float64, c color.Color)
}

// Render clears ctx and draws every particle. Particles that are excited, or
// within the proximity radius of the pointer, use the active color.
func Render(ctx Context, ps []Particle, ptr Pointer, p Params) {
	ctx.Clear()
	radius := p.ParticleDiameter / 2
	for i := range ps {
		pt := &ps[i]
		c := p.RestColor
		if pt.Excited() || pt.distanceTo(ptr.X, ptr.Y) < p.ProximityRadius {
			c = p.ActiveColor
		}
		ctx.FillCircle(pt.X, pt.Y, radius, c)
	}
}
