package game

import "github.com/iburimskiy/dot-grid/internal/grid"

type entry[T any] struct {
	id int
	fn T
}

// registry keeps listeners in registration order.
type registry[T any] struct {
	next    int
	entries []entry[T]
}

func (r *registry[T]) add(fn T) func() {
	r.next++
	id := r.next
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
	return func() { r.remove(id) }
}

func (r *registry[T]) remove(id int) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// snapshot lets a listener remove itself while being called.
func (r *registry[T]) snapshot() []T {
	out := make([]T, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.fn
	}
	return out
}

func (r *registry[T]) len() int { return len(r.entries) }

// events fans host input out to whoever subscribed through grid.Events.
type events struct {
	move   registry[func(x, y float64)]
	leave  registry[func()]
	click  registry[func(x, y float64)]
	resize registry[func()]
}

var _ grid.Events = (*events)(nil)

func (ev *events) OnPointerMove(fn func(x, y float64)) func() { return ev.move.add(fn) }
func (ev *events) OnPointerLeave(fn func()) func()            { return ev.leave.add(fn) }
func (ev *events) OnClick(fn func(x, y float64)) func()       { return ev.click.add(fn) }
func (ev *events) OnResize(fn func()) func()                  { return ev.resize.add(fn) }

func (ev *events) listeners() int {
	return ev.move.len() + ev.leave.len() + ev.click.len() + ev.resize.len()
}

func (ev *events) pointerMove(x, y float64) {
	for _, fn := range ev.move.snapshot() {
		fn(x, y)
	}
}

func (ev *events) pointerLeave() {
	for _, fn := range ev.leave.snapshot() {
		fn()
	}
}

func (ev *events) clickAt(x, y float64) {
	for _, fn := range ev.click.snapshot() {
		fn(x, y)
	}
}

func (ev *events) resized() {
	for _, fn := range ev.resize.snapshot() {
		fn()
	}
}
