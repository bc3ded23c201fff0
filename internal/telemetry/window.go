package telemetry

import "github.com/gammazero/deque"

// Window is a fixed-capacity FIFO of samples. It is not safe for concurrent
// use; the render loop owns it.
type Window struct {
	buf      deque.Deque[Sample]
	capacity int
}

// NewWindow returns an empty window. A non-positive capacity is treated as 1.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}

	return &Window{capacity: capacity}
}

// Push appends s and evicts from the head until Len() <= Cap().
func (w *Window) Push(s Sample) {
	w.buf.PushBack(s)
	for w.buf.Len() > w.capacity {
		w.buf.PopFront()
	}
}

func (w *Window) Len() int {
	return w.buf.Len()
}

func (w *Window) Cap() int {
	return w.capacity
}

// Latest returns the newest sample, or false if the window is empty.
func (w *Window) Latest() (Sample, bool) {
	if w.buf.Len() == 0 {
		return Sample{}, false
	}

	return w.buf.Back(), true
}

// Snapshot returns a copy of the contents, oldest first.
func (w *Window) Snapshot() []Sample {
	out := make([]Sample, w.buf.Len())
	for i := range out {
		out[i] = w.buf.At(i)
	}

	return out
}

// Values returns a copy of the value column, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, w.buf.Len())
	for i := range out {
		out[i] = w.buf.At(i).Value
	}

	return out
}
