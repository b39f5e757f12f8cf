package grid

import "image/color"

type circle struct {
	x, y, r float64
	c       color.Color
}

type fakeContext struct {
	width, height, scale float64
	resizes              int
	clears               int
	circles              []circle
}

func (c *fakeContext) Resize(width, height, scale float64) {
	c.width, c.height, c.scale = width, height, scale
	c.resizes++
}

func (c *fakeContext) Clear() {
	c.clears++
	c.circles = c.circles[:0]
}

func (c *fakeContext) FillCircle(x, y, radius float64, col color.Color) {
	c.circles = append(c.circles, circle{x, y, radius, col})
}

type fakeSurface struct {
	bounds Rect
	scale  float64
	ctx    *fakeContext
}

func (s *fakeSurface) Bounds() Rect         { return s.bounds }
func (s *fakeSurface) DeviceScale() float64 { return s.scale }
func (s *fakeSurface) Context() Context {
	if s.ctx == nil {
		return nil
	}
	return s.ctx
}

type fakeEvents struct {
	next   int
	move   map[int]func(x, y float64)
	leave  map[int]func()
	click  map[int]func(x, y float64)
	resize map[int]func()
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{
		move:   map[int]func(x, y float64){},
		leave:  map[int]func(){},
		click:  map[int]func(x, y float64){},
		resize: map[int]func(){},
	}
}

func (ev *fakeEvents) OnPointerMove(fn func(x, y float64)) func() {
	ev.next++
	id := ev.next
	ev.move[id] = fn
	return func() { delete(ev.move, id) }
}

func (ev *fakeEvents) OnPointerLeave(fn func()) func() {
	ev.next++
	id := ev.next
	ev.leave[id] = fn
	return func() { delete(ev.leave, id) }
}

func (ev *fakeEvents) OnClick(fn func(x, y float64)) func() {
	ev.next++
	id := ev.next
	ev.click[id] = fn
	return func() { delete(ev.click, id) }
}

func (ev *fakeEvents) OnResize(fn func()) func() {
	ev.next++
	id := ev.next
	ev.resize[id] = fn
	return func() { delete(ev.resize, id) }
}

func (ev *fakeEvents) listeners() int {
	return len(ev.move) + len(ev.leave) + len(ev.click) + len(ev.resize)
}

func (ev *fakeEvents) emitMove(x, y float64) {
	for _, fn := range ev.move {
		fn(x, y)
	}
}

func (ev *fakeEvents) emitClick(x, y float64) {
	for _, fn := range ev.click {
		fn(x, y)
	}
}

func (ev *fakeEvents) emitLeave() {
	for _, fn := range ev.leave {
		fn()
	}
}

func (ev *fakeEvents) emitResize() {
	for _, fn := range ev.resize {
		fn()
	}
}

type fakeScheduler struct {
	next     FrameID
	pending  map[FrameID]func(dt float64)
	requests int
	cancels  int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: map[FrameID]func(dt float64){}}
}

func (s *fakeScheduler) RequestFrame(fn func(dt float64)) FrameID {
	s.next++
	s.requests++
	s.pending[s.next] = fn
	return s.next
}

func (s *fakeScheduler) CancelFrame(id FrameID) {
	s.cancels++
	delete(s.pending, id)
}

// frame runs every callback that was pending when it was called.
func (s *fakeScheduler) frame(dt float64) int {
	due := s.pending
	s.pending = map[FrameID]func(dt float64){}
	for _, fn := range due {
		fn(dt)
	}
	return len(due)
}

func (s *fakeScheduler) frames(n int, dt float64) {
	for i := 0; i < n; i++ {
		s.frame(dt)
	}
}
