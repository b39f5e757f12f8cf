package grid

import (
	"errors"
	"fmt"
	"log"
)

// ErrUnavailableContext is returned when the surface cannot provide a drawing context.
var ErrUnavailableContext = errors.New("grid: drawing context unavailable")

// Rect is a content box in device-independent pixels.
type Rect struct {
	X, Y, W, H float64
}

// Surface is the host element the grid is drawn into.
type Surface interface {
	// Bounds returns the content box relative to the client origin.
	Bounds() Rect
	// DeviceScale returns the physical pixels per device-independent pixel.
	DeviceScale() float64
	// Context returns the 2D drawing context, or nil if none is available.
	Context() Context
}

// Events delivers input and geometry notifications. Every On* call returns a
// function that removes the listener. Coordinates are client coordinates.
type Events interface {
	OnPointerMove(fn func(x, y float64)) (remove func())
	OnPointerLeave(fn func()) (remove func())
	OnClick(fn func(x, y float64)) (remove func())
	OnResize(fn func()) (remove func())
}

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler runs a callback on the host's next frame.
type Scheduler interface {
	RequestFrame(fn func(dt float64)) FrameID
	CancelFrame(id FrameID)
}

// Engine owns a particle grid and drives it from host events and frames.
// All methods must be called from the host's single event goroutine.
type Engine struct {
	surface Surface
	ctx     Context
	events  Events
	sched   Scheduler
	params  Params

	particles     []Particle
	pointer       Pointer
	width, height float64

	frame        FrameID
	framePending bool
	generation   uint64
	mounted      bool
	disposed     bool
	removers     []func()

	onShockwave func(excited, total int)
}

// New sizes the surface, builds the initial grid and parks the pointer off canvas.
func New(surface Surface, events Events, sched Scheduler, params Params) (*Engine, error) {
	if sched == nil {
		return nil, errors.New("new engine: nil scheduler")
	}
	if surface == nil {
		return nil, fmt.Errorf("new engine: %w", ErrUnavailableContext)
	}
	ctx := surface.Context()
	if ctx == nil {
		return nil, fmt.Errorf("new engine: %w", ErrUnavailableContext)
	}
	e := &Engine{
		surface: surface,
		ctx:     ctx,
		events:  events,
		sched:   sched,
		params:  params.Sanitize(),
		pointer: ResetPointer(),
	}
	e.measure()
	return e, nil
}

// OnShockwave registers fn to be called after every shockwave with the number
// of particles it excited and the grid size.
func (e *Engine) OnShockwave(fn func(excited, total int)) {
	e.onShockwave = fn
}

// Mount attaches the listeners and starts the frame loop.
func (e *Engine) Mount() {
	if e.mounted || e.disposed {
		return
	}
	e.mounted = true
	if e.events != nil {
		e.removers = append(e.removers,
			e.events.OnPointerMove(e.PointerMove),
			e.events.OnPointerLeave(e.PointerLeave),
			e.events.OnClick(e.Shockwave),
			e.events.OnResize(e.Resize),
		)
	}
	e.requestFrame()
	log.Printf("[Engine] mounted: %.0fx%.0f, %d particles", e.width, e.height, len(e.particles))
}

// Unmount cancels the pending frame, removes the listeners and invalidates any
// callback still held by the host. The engine cannot be mounted again.
func (e *Engine) Unmount() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.mounted = false
	e.generation++
	if e.framePending {
		e.sched.CancelFrame(e.frame)
		e.framePending = false
	}
	for _, remove := range e.removers {
		if remove != nil {
			remove()
		}
	}
	e.removers = nil
	log.Printf("[Engine] unmounted")
}

// Resize re-measures the surface and rebuilds the grid. Prior motion is discarded.
func (e *Engine) Resize() {
	if e.disposed {
		return
	}
	e.measure()
	log.Printf("[Engine] resized: %.0fx%.0f, %d particles", e.width, e.height, len(e.particles))
}

// PointerMove records a pointer sample at client coordinates (x, y). Fast
// movement pushes nearby particles immediately.
func (e *Engine) PointerMove(x, y float64) {
	if e.disposed {
		return
	}
	b := e.surface.Bounds()
	lx, ly := x-b.X, y-b.Y
	speed := e.pointer.Move(lx, ly)
	if speed > e.params.SpeedThreshold {
		ApplyInertia(e.particles, lx, ly, speed, e.params)
	}
}

// PointerLeave parks the pointer off canvas.
func (e *Engine) PointerLeave() {
	if e.disposed {
		return
	}
	e.pointer = ResetPointer()
}

// Shockwave fires a one-shot impulse at client coordinates (x, y).
func (e *Engine) Shockwave(x, y float64) {
	if e.disposed {
		return
	}
	b := e.surface.Bounds()
	n := ApplyShockwave(e.particles, x-b.X, y-b.Y, e.params)
	if e.onShockwave != nil {
		e.onShockwave(n, len(e.particles))
	}
}

// Particles returns a copy of the current grid.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Pointer returns the current pointer state in surface coordinates.
func (e *Engine) Pointer() Pointer { return e.pointer }

// Size returns the measured content size in device-independent pixels.
func (e *Engine) Size() (float64, float64) { return e.width, e.height }

// Generation changes when the engine is torn down; frame callbacks from an
// older generation are ignored.
func (e *Engine) Generation() uint64 { return e.generation }

// Params returns the sanitized configuration.
func (e *Engine) Params() Params { return e.params }

// Len returns the number of particles in the grid.
func (e *Engine) Len() int { return len(e.particles) }

// Excited returns the number of particles currently in motion.
func (e *Engine) Excited() int { return CountExcited(e.particles) }

func (e *Engine) measure() {
	b := e.surface.Bounds()
	scale := e.surface.DeviceScale()
	if !(scale > 0) {
		scale = 1
	}
	w, h := b.W, b.H
	if !(w > 0) || !(h > 0) {
		w, h = 0, 0
	}
	e.width, e.height = w, h
	e.ctx.Resize(w, h, scale)
	e.particles = Generate(w, h, e.params.Gap)
}

func (e *Engine) degenerate() bool {
	return e.width <= 0 || e.height <= 0
}

func (e *Engine) requestFrame() {
	gen := e.generation
	e.frame = e.sched.RequestFrame(func(dt float64) { e.tick(gen, dt) })
	e.framePending = true
}

// tick runs one frame. Callbacks requested under an older generation are dropped.
func (e *Engine) tick(gen uint64, dt float64) {
	if gen != e.generation || !e.mounted {
		return
	}
	e.framePending = false
	if !e.degenerate() {
		Step(e.particles, e.params, dt)
		Render(e.ctx, e.particles, e.pointer, e.params)
	}
	e.requestFrame()
}
