package grid

import "math"

// OffCanvas is the coordinate used for a pointer that is not over the surface.
const OffCanvas = -1000

// Pointer tracks the last two pointer samples and the distance between them.
type Pointer struct {
	X, Y         float64
	PrevX, PrevY float64
	Speed        float64
}

// ResetPointer returns a pointer parked off canvas.
func ResetPointer() Pointer {
	return Pointer{X: OffCanvas, Y: OffCanvas, PrevX: OffCanvas, PrevY: OffCanvas}
}

// Move records a new sample and returns the speed derived from it.
func (p *Pointer) Move(x, y float64) float64 {
	p.PrevX, p.PrevY = p.X, p.Y
	p.X, p.Y = x, y
	p.Speed = math.Hypot(x-p.PrevX, y-p.PrevY)
	return p.Speed
}
