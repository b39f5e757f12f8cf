package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dot-grid/internal/grid"
)

// canvas is an offscreen image the engine draws into. It is sized in physical
// pixels and takes device-independent coordinates.
type canvas struct {
	image *ebiten.Image
	scale float64
}

var _ grid.Context = (*canvas)(nil)

func (c *canvas) Resize(width, height, scale float64) {
	c.scale = scale
	pw := int(math.Ceil(width * scale))
	ph := int(math.Ceil(height * scale))
	if pw <= 0 || ph <= 0 {
		c.release()
		return
	}
	if c.image != nil {
		b := c.image.Bounds()
		if b.Dx() == pw && b.Dy() == ph {
			return
		}
		c.release()
	}
	c.image = ebiten.NewImage(pw, ph)
}

func (c *canvas) Clear() {
	if c.image != nil {
		c.image.Clear()
	}
}

func (c *canvas) FillCircle(x, y, radius float64, clr color.Color) {
	if c.image == nil {
		return
	}
	s := c.scale
	vector.DrawFilledCircle(c.image, float32(x*s), float32(y*s), float32(radius*s), clr, true)
}

func (c *canvas) release() {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
}

// surface is the window content box.
type surface struct {
	bounds grid.Rect
	scale  float64
	canvas *canvas
}

var _ grid.Surface = (*surface)(nil)

func (s *surface) Bounds() grid.Rect    { return s.bounds }
func (s *surface) DeviceScale() float64 { return s.scale }

func (s *surface) Context() grid.Context {
	if s.canvas == nil {
		return nil
	}
	return s.canvas
}

// setGeometry reports whether the content box or pixel density changed.
func (s *surface) setGeometry(width, height, scale float64) bool {
	if s.bounds.W == width && s.bounds.H == height && s.scale == scale {
		return false
	}
	s.bounds = grid.Rect{W: width, H: height}
	s.scale = scale
	return true
}
