// Package telemetry implements the live display pipeline: samples handed
// over from the broker callback through a Channel are folded into a
// bounded Window by a periodic Ticker, which recomputes Stats and asks a
// Renderer to redraw.
package telemetry

import (
	"context"
	"time"
)

// Sample is one telemetry reading. It is a value type; copies are independent.
type Sample struct {
	Time  time.Time
	Value float64
}

func NewSample(t time.Time, value float64) Sample {
	return Sample{Time: t, Value: value}
}

// Frame is everything a renderer needs for one redraw. Samples is a copy
// owned by the renderer.
type Frame struct {
	Samples []Sample
	Stats   Stats
	Latest  Sample
	Drained int
	Dropped uint64
}

// Renderer draws a frame. Implementations live in internal/render.
type Renderer interface {
	Draw(ctx context.Context, frame Frame) error
}

// RendererFunc adapts a plain function to Renderer
type RendererFunc func(ctx context.Context, frame Frame) error

func (f RendererFunc) Draw(ctx context.Context, frame Frame) error {
	return f(ctx, frame)
}

// State is the phase of a render tick
type State int32

const (
	StateIdle State = iota
	StateDraining
	StateUpdating
	StateRedrawing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraining:
		return "draining"
	case StateUpdating:
		return "updating"
	case StateRedrawing:
		return "redrawing"
	default:
		return "unknown"
	}
}
