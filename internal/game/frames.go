package game

import (
	"sort"

	"github.com/iburimskiy/dot-grid/internal/grid"
)

// frameQueue runs requested callbacks once per host frame.
type frameQueue struct {
	next    grid.FrameID
	pending map[grid.FrameID]func(dt float64)
}

var _ grid.Scheduler = (*frameQueue)(nil)

func newFrameQueue() *frameQueue {
	return &frameQueue{pending: map[grid.FrameID]func(dt float64){}}
}

func (q *frameQueue) RequestFrame(fn func(dt float64)) grid.FrameID {
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *frameQueue) CancelFrame(id grid.FrameID) {
	delete(q.pending, id)
}

// pump runs the callbacks that were pending when it started, oldest first.
// Callbacks requested during the pump wait for the next frame.
func (q *frameQueue) pump(dt float64) int {
	if len(q.pending) == 0 {
		return 0
	}
	ids := make([]grid.FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn(dt)
		ran++
	}
	return ran
}

func (q *frameQueue) len() int { return len(q.pending) }
