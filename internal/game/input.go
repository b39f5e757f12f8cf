package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/dot-grid/internal/grid"
)

// pointerInput turns polled ebiten input into pointer events. Only the first
// active touch is followed.
type pointerInput struct {
	mouseX, mouseY float64
	mouseInside    bool

	touchX, touchY float64
	touching       bool

	touchIDs []ebiten.TouchID
}

func (in *pointerInput) poll(bounds grid.Rect, scale float64, ev *events) {
	if !(scale > 0) {
		scale = 1
	}

	// a new touch is a tap
	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		x, y := ebiten.TouchPosition(id)
		ev.clickAt(float64(x)/scale, float64(y)/scale)
	}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(in.touchIDs[0])
		x, y := float64(tx)/scale, float64(ty)/scale
		if !in.touching || x != in.touchX || y != in.touchY {
			in.touchX, in.touchY = x, y
			in.touching = true
			ev.pointerMove(x, y)
		}
		return
	}
	if in.touching {
		in.touching = false
		ev.pointerLeave()
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/scale, float64(cy)/scale
	inside := contains(bounds, x, y)
	switch {
	case inside && (!in.mouseInside || x != in.mouseX || y != in.mouseY):
		in.mouseX, in.mouseY = x, y
		in.mouseInside = true
		ev.pointerMove(x, y)
	case !inside && in.mouseInside:
		in.mouseInside = false
		ev.pointerLeave()
	}

	if inside && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ev.clickAt(x, y)
	}
}

func contains(r grid.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
