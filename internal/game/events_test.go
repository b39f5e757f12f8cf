package game

import (
	"image/color"
	"testing"
	"time"

	"github.com/iburimskiy/dot-grid/internal/grid"
)

func TestRegistryOrderAndRemove(t *testing.T) {
	var r registry[func() string]
	r.add(func() string { return "a" })
	removeB := r.add(func() string { return "b" })
	r.add(func() string { return "c" })

	removeB()
	removeB()

	var got string
	for _, fn := range r.snapshot() {
		got += fn()
	}
	if got != "ac" {
		t.Errorf("listeners ran as %q, want %q", got, "ac")
	}
}

func TestEventsListenerCanRemoveItself(t *testing.T) {
	ev := &events{}
	calls := 0
	var remove func()
	remove = ev.OnClick(func(x, y float64) {
		calls++
		remove()
	})
	ev.OnClick(func(x, y float64) { calls++ })

	ev.clickAt(1, 2)
	ev.clickAt(1, 2)

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if ev.listeners() != 1 {
		t.Errorf("listeners = %d, want 1", ev.listeners())
	}
}

func TestFrameQueuePump(t *testing.T) {
	q := newFrameQueue()
	var order []int

	q.RequestFrame(func(dt float64) { order = append(order, 1) })
	cancelled := q.RequestFrame(func(dt float64) { order = append(order, 2) })
	q.RequestFrame(func(dt float64) {
		order = append(order, 3)
		q.RequestFrame(func(dt float64) { order = append(order, 4) })
	})
	q.CancelFrame(cancelled)

	if n := q.pump(0.016); n != 2 {
		t.Errorf("first pump ran %d callbacks, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", order)
	}
	if q.len() != 1 {
		t.Errorf("pending = %d, want 1", q.len())
	}

	q.pump(0.016)
	if len(order) != 3 || order[2] != 4 {
		t.Errorf("order = %v, want [1 3 4]", order)
	}
	if n := q.pump(0.016); n != 0 {
		t.Errorf("empty pump ran %d callbacks", n)
	}
}

func TestFrameQueueCancelDuringPump(t *testing.T) {
	q := newFrameQueue()
	ran := false
	var second grid.FrameID
	q.RequestFrame(func(dt float64) { q.CancelFrame(second) })
	second = q.RequestFrame(func(dt float64) { ran = true })

	q.pump(0.016)
	if ran {
		t.Error("callback cancelled earlier in the same pump still ran")
	}
}

type recordingContext struct {
	clears  int
	circles int
}

func (c *recordingContext) Resize(width, height, scale float64) {}

func (c *recordingContext) Clear() {
	c.clears++
	c.circles = 0
}

func (c *recordingContext) FillCircle(x, y, r float64, col color.Color) {
	c.circles++
}

type testSurface struct {
	surface
	ctx *recordingContext
}

func (s *testSurface) Context() grid.Context { return s.ctx }

func TestEngineOverHostPlumbing(t *testing.T) {
	s := &testSurface{ctx: &recordingContext{}}
	s.setGeometry(300, 300, 2)
	ev := &events{}
	q := newFrameQueue()

	p := grid.DefaultParams()
	p.Gap = 30
	p.ShockRadius = 50
	e, err := grid.New(s, ev, q, p)
	if err != nil {
		t.Fatalf("grid.New() error: %v", err)
	}
	e.Mount()

	ev.clickAt(150, 150)
	if e.Excited() != 9 {
		t.Errorf("excited = %d, want 9", e.Excited())
	}
	q.pump(1.0 / 60)
	if s.ctx.clears != 1 || s.ctx.circles != 121 {
		t.Errorf("frame drew clears=%d circles=%d, want 1 and 121", s.ctx.clears, s.ctx.circles)
	}

	s.setGeometry(600, 300, 2)
	ev.resized()
	if n := len(e.Particles()); n != 231 {
		t.Errorf("particles after resize = %d, want 231", n)
	}

	e.Unmount()
	if ev.listeners() != 0 {
		t.Errorf("listeners after unmount = %d", ev.listeners())
	}
	if q.len() != 0 {
		t.Errorf("frames pending after unmount = %d", q.len())
	}
}

func TestSurfaceSetGeometry(t *testing.T) {
	s := &surface{}
	if !s.setGeometry(800, 600, 2) {
		t.Error("first geometry not reported as a change")
	}
	if s.setGeometry(800, 600, 2) {
		t.Error("identical geometry reported as a change")
	}
	if !s.setGeometry(800, 600, 1) {
		t.Error("scale change not reported")
	}
	if b := s.Bounds(); b.W != 800 || b.H != 600 || b.X != 0 || b.Y != 0 {
		t.Errorf("Bounds() = %+v", b)
	}
	if s.Context() != nil {
		t.Error("surface without a canvas returned a context")
	}
}

func TestContains(t *testing.T) {
	r := grid.Rect{W: 100, H: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{99.5, 49.5, true},
		{100, 10, false},
		{10, -1, false},
		{-0.5, 10, false},
	}
	for _, tt := range tests {
		if got := contains(r, tt.x, tt.y); got != tt.want {
			t.Errorf("contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{83 * time.Second, "01:23"},
		{61*time.Minute + 5*time.Second, "61:05"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
