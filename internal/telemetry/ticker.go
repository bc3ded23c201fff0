package telemetry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
)

// Ticker runs the drain, fold, recompute and redraw cycle. Tick must only
// be called from one goroutine at a time; Start arranges that.
type Ticker struct {
	cfg      Config
	input    *Channel[Sample]
	window   *Window
	renderer Renderer
	logger   logger.Logger

	state   atomic.Int32
	stats   Stats
	ticks   atomic.Uint64
	redraws atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTicker(cfg Config, input *Channel[Sample], renderer Renderer, log logger.Logger) (*Ticker, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	if input == nil || renderer == nil {
		return nil, errFactory.WithMessage(ErrInvalidConfig, "ticker needs an input channel and a renderer")
	}

	return &Ticker{
		cfg:      cfg,
		input:    input,
		window:   NewWindow(cfg.WindowSize),
		renderer: renderer,
		logger:   log,
	}, nil
}

// Tick performs one cycle and reports whether a redraw was issued. A tick
// with nothing queued leaves the window and stats untouched.
func (t *Ticker) Tick(ctx context.Context) bool {
	defer t.state.Store(int32(StateIdle))
	t.ticks.Add(1)

	t.state.Store(int32(StateDraining))
	items := t.input.DrainAll()
	if len(items) == 0 {
		return false
	}

	t.state.Store(int32(StateUpdating))
	if t.cfg.FoldAll {
		for _, s := range items {
			t.window.Push(s)
		}
	} else {
		t.window.Push(items[len(items)-1])
	}

	return t.redraw(ctx, len(items))
}

// Redraw draws the current window without draining the input. Run calls
// it once before the first tick so renderers show their no-data state
// instead of nothing.
func (t *Ticker) Redraw(ctx context.Context) bool {
	defer t.state.Store(int32(StateIdle))

	return t.redraw(ctx, 0)
}

func (t *Ticker) redraw(ctx context.Context, drained int) bool {
	t.state.Store(int32(StateRedrawing))

	snapshot := t.window.Snapshot()
	t.stats = ComputeStats(snapshot)

	frame := Frame{
		Samples: snapshot,
		Stats:   t.stats,
		Drained: drained,
		Dropped: t.input.Dropped(),
	}
	if len(snapshot) > 0 {
		frame.Latest = snapshot[len(snapshot)-1]
	}

	if err := t.draw(ctx, frame); err != nil {
		var coded errors.Error
		if errors.As(err, &coded) {
			t.logger.ErrorWithCode(coded).Msg("Redraw failed, skipping tick")
		}
		return false
	}
	t.redraws.Add(1)

	t.logger.Debug().
		Int("drained", drained).
		Int("window", len(snapshot)).
		Float64("latest", frame.Latest.Value).
		Msg("Redrawn")

	return true
}

func (t *Ticker) draw(ctx context.Context, frame Frame) (err error) {
	errFactory := errors.New()

	defer func() {
		if r := recover(); r != nil {
			err = errFactory.WithData(ErrDrawPanic, fmt.Sprint(r))
		}
	}()

	if err := t.renderer.Draw(ctx, frame); err != nil {
		return errFactory.Wrap(ErrDrawFailed, err)
	}

	return nil
}

// Run draws the current window once, then ticks every Refresh until ctx
// is cancelled.
func (t *Ticker) Run(ctx context.Context) {
	t.Redraw(ctx)

	ticker := time.NewTicker(t.cfg.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick(ctx)
		}
	}
}

// Start runs the loop in its own goroutine until Stop or ctx cancellation.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		return errors.New().New(ErrAlreadyRunning)
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		t.Run(ctx)
	}(t.done)

	t.logger.Debug().Dur("refresh", t.cfg.Refresh).Msg("Render loop started")

	return nil
}

// Stop cancels the loop and waits for the in-flight tick to finish, so no
// tick fires after Stop returns. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	t.logger.Debug().Uint64("ticks", t.ticks.Load()).Uint64("redraws", t.redraws.Load()).Msg("Render loop stopped")
}

// State reports the current phase
func (t *Ticker) State() State {
	return State(t.state.Load())
}

// Window exposes the rolling window; only read it from the ticking goroutine
// or after Stop.
func (t *Ticker) Window() *Window {
	return t.window
}

// Stats returns the stats computed by the last tick that had data
func (t *Ticker) Stats() Stats {
	return t.stats
}

// Redraws reports how many redraws succeeded
func (t *Ticker) Redraws() uint64 {
	return t.redraws.Load()
}
